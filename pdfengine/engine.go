// Package pdfengine combines extracted SVG pages into a single PDF document.
//
// Two engines are provided: an Inkscape engine that shells out to a local
// Inkscape installation for faithful vector rasterization, and a built-in
// engine based on gofpdf that needs no external tooling but renders only
// basic vector content and embedded raster images. Auto picks Inkscape when
// it is installed and falls back to the built-in engine otherwise.
package pdfengine

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Default sizing and process-control values.
const (
	// DefaultPadding is the space, in points, added around each page's
	// content.
	DefaultPadding = 10.0

	// DefaultTimeout bounds each external conversion process.
	DefaultTimeout = 60 * time.Second
)

// Options configures PDF assembly.
type Options struct {
	// UniformSize gives every PDF page the size of the largest SVG page
	// (plus padding), centering content. When false each page is sized
	// independently from its own content.
	UniformSize bool

	// Padding is the space added around page content, in points.
	// Zero means DefaultPadding.
	Padding float64

	// Timeout bounds each per-page external process invocation.
	// Zero means DefaultTimeout. Ignored by the built-in engine.
	Timeout time.Duration

	// Logger receives progress and warnings. Nil is treated as a no-op
	// logger.
	Logger *zap.Logger
}

func (o Options) padding() float64 {
	if o.Padding <= 0 {
		return DefaultPadding
	}
	return o.Padding
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Engine converts a sequence of SVG page files into one PDF document.
type Engine interface {
	// Name identifies the engine in logs and CLI flags.
	Name() string

	// Available reports whether the engine can run on this system.
	Available() bool

	// Combine renders svgPaths, in order, into a single PDF at outputPDF.
	Combine(ctx context.Context, svgPaths []string, outputPDF string, opts Options) error
}

// Auto returns the preferred available engine: Inkscape when installed,
// otherwise the built-in gofpdf engine, which is always available.
func Auto(log *zap.Logger) Engine {
	if log == nil {
		log = zap.NewNop()
	}
	ink := NewInkscape()
	if ink.Available() {
		log.Info("using Inkscape for SVG to PDF conversion", zap.String("path", ink.binary()))
		return ink
	}
	log.Info("Inkscape not found, using built-in PDF engine")
	return NewGofpdf()
}

// ListPages returns the page_<N>.svg files in dir sorted by page index.
// Lexical sorting would misorder page_10 before page_9.
func ListPages(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "page_*.svg"))
	if err != nil {
		return nil, fmt.Errorf("pdfengine: list pages in %s: %w", dir, err)
	}
	type indexed struct {
		path  string
		index int
	}
	pages := make([]indexed, 0, len(matches))
	for _, m := range matches {
		n, ok := pageIndex(m)
		if !ok {
			continue
		}
		pages = append(pages, indexed{path: m, index: n})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].index < pages[j].index })

	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.path
	}
	return out, nil
}

// pageIndex extracts N from a page_<N>.svg file path.
func pageIndex(path string) (int, bool) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".svg")
	base = strings.TrimPrefix(base, "page_")
	n, err := strconv.Atoi(base)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
