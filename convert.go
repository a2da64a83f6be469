package iwb

import (
	"fmt"
	"os"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// ExtractSVG opens the IWB file at iwbPath and writes one standalone SVG per
// page into outputDir, creating the directory if needed. It returns the paths
// written, in page order.
func ExtractSVG(iwbPath, outputDir string, opts Options) ([]string, error) {
	a, err := Open(iwbPath)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	return ExtractSVGFromArchive(a, outputDir, opts)
}

// ExtractSVGFromArchive runs the page pipeline over an already-open Archive.
// Pages are processed strictly sequentially in document order; a recoverable
// failure inside one page never affects its siblings.
func ExtractSVGFromArchive(a *Archive, outputDir string, opts Options) ([]string, error) {
	log := opts.logger()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("iwb: create output directory %s: %w", outputDir, err)
	}

	// Copy mode mirrors the whole images/ tree before any page is
	// processed, so emitted hrefs resolve as sibling files.
	if opts.ImagesMode == ImagesCopyDir {
		if err := copyImageDir(a, outputDir, log); err != nil {
			return nil, fmt.Errorf("iwb: copy image directory: %w", err)
		}
	}

	written := make([]string, 0, len(a.pages))
	for i, page := range a.pages {
		doc := processPage(a, page, opts, log)
		outPath, err := writePage(doc, outputDir, i)
		if err != nil {
			return written, err
		}
		log.Info("saved page", zap.Int("page", i), zap.String("path", outPath))
		written = append(written, outPath)
	}
	return written, nil
}

// processPage builds an independently owned SVG document from one page and
// runs the normalization pipeline over it: image resolution, textarea
// flattening, fill stripping, extent computation, canvas resizing.
func processPage(a *Archive, page *etree.Element, opts Options, log *zap.Logger) *etree.Document {
	doc := buildPageDocument(page, defaultNamespaces())
	root := doc.Root()

	if opts.FixImageRefs {
		repairImageRefs(root, a, log)
	}
	if opts.ImagesMode == ImagesInline {
		inlineImages(root, a, log)
	}
	if opts.DeleteBackgroundImages {
		deleteBackgroundImages(root)
	}

	flattenTextAreas(root)

	if opts.FixFills {
		removeFills(root)
	}

	if opts.FixSize {
		fitCanvas(root, contentExtent(root), opts.ResizeMargin, log)
	}

	return doc
}
