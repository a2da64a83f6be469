package iwb

import (
	"encoding/base64"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// compressedMarker is inserted after the images/ prefix when probing for a
// repaired alternate entry name.
const compressedMarker = "compressed_"

// mimeByExtension sniffs a MIME type from the file extension of an archive
// path. Unrecognized extensions map to application/octet-stream; no content
// inspection or transcoding is performed.
func mimeByExtension(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// imageHref returns the cross-namespace href attribute of an image element
// (xlink:href in practice, but any prefix and the unprefixed form are
// accepted). The second return is false when no href attribute exists.
func imageHref(e *etree.Element) (string, bool) {
	for _, at := range e.Attr {
		if at.Key == "href" {
			return at.Value, true
		}
	}
	return "", false
}

// setImageHref overwrites the value of the element's href attribute in place,
// preserving the attribute's prefix and position.
func setImageHref(e *etree.Element, value string) {
	for i := range e.Attr {
		if e.Attr[i].Key == "href" {
			e.Attr[i].Value = value
			return
		}
	}
}

// isImageElement reports whether e is an SVG image element by local tag.
func isImageElement(e *etree.Element) bool {
	return e.Tag == "image"
}

// repairImageRefs probes a "compressed_" alternate entry name for every
// lossless-raster image href whose literal path is absent from the archive,
// rewriting the href when the alternate exists. Hrefs that stay unresolved
// are left untouched: downstream rendering may simply skip them.
func repairImageRefs(root *etree.Element, a *Archive, log *zap.Logger) {
	for _, img := range collectElements(root, isImageElement) {
		href, ok := imageHref(img)
		if !ok || !strings.HasPrefix(href, imagePrefix) {
			continue
		}
		if strings.ToLower(path.Ext(href)) != ".png" {
			continue
		}
		if a.HasEntry(href) {
			continue
		}
		candidate := imagePrefix + compressedMarker + strings.TrimPrefix(href, imagePrefix)
		if a.HasEntry(candidate) {
			setImageHref(img, candidate)
			log.Debug("repaired image reference",
				zap.String("href", href),
				zap.String("candidate", candidate))
		} else {
			log.Warn("image reference unresolved after repair attempt",
				zap.String("href", href))
		}
	}
}

// inlineImages rewrites every images/-prefixed href to a base64 data URI
// built from the referenced archive entry. A missing entry is a warning, not
// an error; the href is left unchanged.
func inlineImages(root *etree.Element, a *Archive, log *zap.Logger) {
	for _, img := range collectElements(root, isImageElement) {
		href, ok := imageHref(img)
		if !ok || !strings.HasPrefix(href, imagePrefix) {
			continue
		}
		data, err := a.ReadEntry(href)
		if err != nil {
			log.Warn("image entry not found in archive",
				zap.String("href", href),
				zap.Error(err))
			continue
		}
		uri := "data:" + mimeByExtension(href) + ";base64," + base64.StdEncoding.EncodeToString(data)
		setImageHref(img, uri)
	}
}

// copyImageDir extracts every archive entry under images/ into a mirrored
// relative path below outputDir. Entries with unsafe paths are skipped with
// a warning rather than failing the extraction.
func copyImageDir(a *Archive, outputDir string, log *zap.Logger) error {
	for _, name := range a.ImageEntries() {
		if !isSafePath(name) {
			log.Warn("skipping unsafe image entry path", zap.String("entry", name))
			continue
		}
		data, err := a.ReadEntry(name)
		if err != nil {
			log.Warn("cannot read image entry", zap.String("entry", name), zap.Error(err))
			continue
		}
		target := filepath.Join(outputDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// deleteBackgroundImages removes image elements whose id attribute starts
// with "backgroundImage".
func deleteBackgroundImages(root *etree.Element) {
	for _, img := range collectElements(root, isImageElement) {
		if !strings.HasPrefix(img.SelectAttrValue("id", ""), "backgroundImage") {
			continue
		}
		parent := img.Parent()
		if parent == nil {
			parent = findParent(root, img)
		}
		if parent != nil {
			parent.RemoveChild(img)
		}
	}
}

// findParent locates the true parent of target by a full-tree search under
// root. Returns nil when target is not in the tree.
func findParent(root, target *etree.Element) *etree.Element {
	var found *etree.Element
	walkElements(root, func(e *etree.Element) {
		if found != nil {
			return
		}
		for _, c := range e.ChildElements() {
			if c == target {
				found = e
				return
			}
		}
	})
	return found
}
