// Command iwb2svg extracts the pages of a Newline IWB file as standalone SVG
// documents.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	iwb "github.com/MatteoGheza/newline-iwb-converter"
)

// Exit codes for the fatal failure cases, one per sentinel so callers can
// diagnose without parsing output.
const (
	exitFailure          = 1
	exitMalformedArchive = 2
	exitNoDocument       = 3
	exitNoPages          = 4
)

func main() {
	var (
		output           = flag.String("o", "svg_output", "output directory for SVG files")
		fixFills         = flag.Bool("fix-fills", true, "remove fill from shapes")
		fixSize          = flag.Bool("fix-size", true, "enlarge the canvas when content extends beyond the declared size")
		fixImageLinks    = flag.Bool("fix-image-links", true, "repair image references via compressed_ alternate entries")
		imagesMode       = flag.String("images", "data-uri", "image handling: nothing (keep hrefs), copy (extract images/ next to output), data-uri (embed as base64)")
		deleteBackground = flag.Bool("delete-background", false, "remove background image elements (id starting with backgroundImage)")
		margin           = flag.Float64("margin", 100, "safety margin added when resizing the canvas")
		verbose          = flag.Bool("v", false, "verbose logging")
		showVersion      = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("iwb2svg " + iwb.Version)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: iwb2svg [flags] <file.iwb>")
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

	switch *imagesMode {
	case "data-uri":
		opts.ImagesMode = iwb.ImagesInline
	case "copy":
		opts.ImagesMode = iwb.ImagesCopyDir
	case "nothing":
		opts.ImagesMode = iwb.ImagesLeave
	default:
		fmt.Fprintf(os.Stderr, "iwb2svg: unknown images mode %q\n", *imagesMode)
		os.Exit(exitFailure)
	}

	paths, err := iwb.ExtractSVG(flag.Arg(0), *output, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "iwb2svg:", err)
		os.Exit(exitCode(err))
	}
	for _, p := range paths {
		fmt.Println("Saved:", p)
	}
}

// newLogger builds a console logger; verbose enables debug events.
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

// exitCode maps fatal sentinels to distinct process exit statuses.
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
