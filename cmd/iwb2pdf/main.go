// Command iwb2pdf converts a Newline IWB file into a single PDF document,
// one PDF page per whiteboard page.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	iwb "github.com/MatteoGheza/newline-iwb-converter"
	"github.com/MatteoGheza/newline-iwb-converter/pdfengine"
)

const (
	exitFailure          = 1
	exitMalformedArchive = 2
	exitNoDocument       = 3
	exitNoPages          = 4
)

func main() {
	var (
		output           = flag.String("o", "output.pdf", "output PDF file")
		fixFills         = flag.Bool("fix-fills", true, "remove fill from shapes")
		fixSize          = flag.Bool("fix-size", true, "enlarge the canvas when content extends beyond the declared size")
		fixImageLinks    = flag.Bool("fix-image-links", true, "repair image references via compressed_ alternate entries")
		deleteBackground = flag.Bool("delete-background", false, "remove background image elements (id starting with backgroundImage)")
		margin           = flag.Float64("margin", 100, "safety margin added when resizing the canvas")
		uniformSize      = flag.Bool("uniform-size", false, "make all PDF pages the size of the largest page, centering content")
		engineName       = flag.String("engine", "auto", "PDF engine: auto, inkscape, or gofpdf")
		timeout          = flag.Duration("timeout", pdfengine.DefaultTimeout, "per-page timeout for external conversion processes")
		verbose          = flag.Bool("v", false, "verbose logging")
		showVersion      = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("iwb2pdf " + iwb.Version)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: iwb2pdf [flags] <file.iwb>")
		flag.PrintDefaults()
		os.Exit(exitFailure)
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	opts := iwb.DefaultOptions()
	opts.FixFills = *fixFills
	opts.FixSize = *fixSize
	opts.FixImageRefs = *fixImageLinks
	opts.DeleteBackgroundImages = *deleteBackground
	opts.ResizeMargin = *margin
	opts.Logger = logger

	eng, err := selectEngine(*engineName, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "iwb2pdf:", err)
		os.Exit(exitFailure)
	}

	engOpts := pdfengine.Options{
		UniformSize: *uniformSize,
		Timeout:     *timeout,
		Logger:      logger,
	}

	if err := iwb.ExtractPDF(context.Background(), flag.Arg(0), *output, opts, eng, engOpts); err != nil {
		fmt.Fprintln(os.Stderr, "iwb2pdf:", err)
		os.Exit(exitCode(err))
	}
	fmt.Println("Saved:", *output)
}

// selectEngine resolves the -engine flag. Requesting inkscape when it is not
// installed falls back to the built-in engine with a warning, matching the
// auto behavior users expect from the converter.
func selectEngine(name string, logger *zap.Logger) (pdfengine.Engine, error) {
	switch name {
	case "auto":
		return pdfengine.Auto(logger), nil
	case "inkscape":
		ink := pdfengine.NewInkscape()
		if !ink.Available() {
			logger.Warn("inkscape requested but not found, falling back to built-in engine")
			return pdfengine.NewGofpdf(), nil
		}
		return ink, nil
	case "gofpdf":
		return pdfengine.NewGofpdf(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, iwb.ErrNoPages):
		return exitNoPages
	case errors.Is(err, iwb.ErrNoDocument):
		return exitNoDocument
	case errors.Is(err, iwb.ErrMalformedArchive):
		return exitMalformedArchive
	default:
		return exitFailure
	}
}
