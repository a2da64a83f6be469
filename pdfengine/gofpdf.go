package pdfengine

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// Fallback page size (US Letter in points) for pages whose dimensions cannot
// be determined.
const (
	fallbackPageWidth  = 612.0
	fallbackPageHeight = 792.0
)

// Gofpdf is the built-in engine. It needs no external tooling: page sizes
// come from the SVG documents, embedded data-URI raster images are placed
// directly, and basic vector content (paths, lines, rects) is drawn through
// gofpdf's SVG support. Gradients, text, and filters are not rendered; for
// faithful output install Inkscape.
type Gofpdf struct{}

// NewGofpdf returns the built-in engine.
func NewGofpdf() *Gofpdf {
	return &Gofpdf{}
}

// Name implements Engine.
func (e *Gofpdf) Name() string { return "gofpdf" }

// Available implements Engine. The built-in engine is always available.
func (e *Gofpdf) Available() bool { return true }

// svgPage is the drawable content recovered from one SVG file.
type svgPage struct {
	width  float64
	height float64
	images []rasterImage
	vector *gofpdf.SVGBasicType
}

// rasterImage is an embedded data-URI image placed on a page.
type rasterImage struct {
	imageType  string // gofpdf image type: PNG, JPG, GIF
	data       []byte
	x, y, w, h float64
}

// Combine implements Engine. Per-page load failures degrade to an empty
// page of fallback size with a warning; the page count of the PDF always
// matches the page count of the input.
func (e *Gofpdf) Combine(ctx context.Context, svgPaths []string, outputPDF string, opts Options) error {
	log := opts.logger()

	if len(svgPaths) == 0 {
		return errors.New("pdfengine: no SVG pages to combine")
	}

	pages := make([]svgPage, 0, len(svgPaths))
	for _, svgPath := range svgPaths {
		page, err := loadSVGPage(svgPath)
		if err != nil {
			log.Warn("cannot load page content, emitting empty page",
				zap.String("svg", filepath.Base(svgPath)),
				zap.Error(err))
			page = svgPage{width: fallbackPageWidth, height: fallbackPageHeight}
		}
		pages = append(pages, page)
	}

	padding := opts.padding()

	// Uniform mode sizes every page to the largest content extent.
	var uniformW, uniformH float64
	if opts.UniformSize {
		for _, p := range pages {
			uniformW = max(uniformW, p.width)
			uniformH = max(uniformH, p.height)
		}
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}

		contentW, contentH := page.width, page.height
		pageW, pageH := contentW+2*padding, contentH+2*padding
		offX, offY := padding, padding
		if opts.UniformSize {
			pageW, pageH = uniformW+2*padding, uniformH+2*padding
			offX = (pageW - contentW) / 2
			offY = (pageH - contentH) / 2
		}

		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pageW, Ht: pageH})
		e.drawPage(pdf, page, i, offX, offY)

		log.Debug("added page to PDF",
			zap.String("svg", filepath.Base(svgPaths[i])),
			zap.Float64("width", pageW),
			zap.Float64("height", pageH))
	}

	if err := pdf.OutputFileAndClose(outputPDF); err != nil {
		return fmt.Errorf("pdfengine: write %s: %w", outputPDF, err)
	}
	log.Info("saved PDF", zap.String("path", outputPDF), zap.Int("pages", len(pages)))
	return nil
}

// drawPage places the page's raster images and vector segments at the given
// content offset.
func (e *Gofpdf) drawPage(pdf *gofpdf.Fpdf, page svgPage, index int, offX, offY float64) {
	for j, img := range page.images {
		name := fmt.Sprintf("page%d-img%d", index, j)
		imgOpts := gofpdf.ImageOptions{ImageType: img.imageType}
		pdf.RegisterImageOptionsReader(name, imgOpts, bytes.NewReader(img.data))
		pdf.ImageOptions(name, offX+img.x, offY+img.y, img.w, img.h, false, imgOpts, 0, "")
	}

	if page.vector != nil && len(page.vector.Segments) > 0 {
		pdf.SetLineWidth(1)
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetXY(offX, offY)
		pdf.SVGBasicWrite(page.vector, 1.0)
	}
}

// loadSVGPage reads an SVG file and recovers its declared size, embedded
// raster images, and basic vector content.
func loadSVGPage(path string) (svgPage, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return svgPage{}, err
	}
	root := doc.Root()
	if root == nil {
		return svgPage{}, errors.New("empty SVG document")
	}

	page := svgPage{
		width:  dimensionValue(root.SelectAttrValue("width", ""), 0),
		height: dimensionValue(root.SelectAttrValue("height", ""), 0),
	}
	collectRasterImages(root, &page, 0, 0)

	// Basic vector content is best-effort: whiteboard strokes are paths
	// and polylines, which gofpdf's SVG support covers. A parse failure
	// leaves the raster content intact.
	if sig, err := gofpdf.SVGBasicFileParse(path); err == nil {
		page.vector = &sig
		if page.width <= 0 && sig.Wd > 0 {
			page.width = sig.Wd
		}
		if page.height <= 0 && sig.Ht > 0 {
			page.height = sig.Ht
		}
	}

	if page.width <= 0 {
		page.width = fallbackPageWidth
	}
	if page.height <= 0 {
		page.height = fallbackPageHeight
	}
	return page, nil
}

// collectRasterImages walks the tree accumulating data-URI image elements,
// carrying translate offsets down the tree.
func collectRasterImages(e *etree.Element, page *svgPage, tx, ty float64) {
	dx, dy := translationOf(e)
	tx += dx
	ty += dy

	if e.Tag == "image" {
		if img, ok := rasterFromElement(e, tx, ty); ok {
			page.images = append(page.images, img)
		}
	}
	for _, c := range e.ChildElements() {
		collectRasterImages(c, page, tx, ty)
	}
}

// rasterFromElement decodes an image element with a base64 data URI into a
// placeable raster image. SVG payloads and malformed URIs are skipped.
func rasterFromElement(e *etree.Element, tx, ty float64) (rasterImage, bool) {
	var href string
	for _, at := range e.Attr {
		if at.Key == "href" {
			href = at.Value
			break
		}
	}
	if !strings.HasPrefix(href, "data:image/") {
		return rasterImage{}, false
	}
	meta, payload, ok := strings.Cut(href, ";base64,")
	if !ok {
		return rasterImage{}, false
	}

	var imageType string
	switch strings.TrimPrefix(meta, "data:") {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg":
		imageType = "JPG"
	case "image/gif":
		imageType = "GIF"
	default:
		return rasterImage{}, false
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return rasterImage{}, false
	}

	return rasterImage{
		imageType: imageType,
		data:      data,
		x:         dimensionValue(e.SelectAttrValue("x", "0"), 0) + tx,
		y:         dimensionValue(e.SelectAttrValue("y", "0"), 0) + ty,
		w:         dimensionValue(e.SelectAttrValue("width", ""), 0),
		h:         dimensionValue(e.SelectAttrValue("height", ""), 0),
	}, true
}

var translateExpr = regexp.MustCompile(`translate\(\s*([-+]?[0-9]*\.?[0-9]+)[\s,]+([-+]?[0-9]*\.?[0-9]+)\s*\)`)

// translationOf extracts a translate(x, y) offset from the element's
// transform attribute, if any.
func translationOf(e *etree.Element) (float64, float64) {
	m := translateExpr.FindStringSubmatch(e.SelectAttrValue("transform", ""))
	if m == nil {
		return 0, 0
	}
	x, errX := strconv.ParseFloat(m[1], 64)
	y, errY := strconv.ParseFloat(m[2], 64)
	if errX != nil || errY != nil {
		return 0, 0
	}
	return x, y
}

// dimensionValue parses a dimension attribute, tolerating px/pt unit
// suffixes. Percentages and garbage yield the fallback.
func dimensionValue(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSuffix(s, "pt")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
