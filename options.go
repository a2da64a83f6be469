package iwb

import "go.uber.org/zap"

// ImagesMode selects how image references inside pages are handled.
type ImagesMode int

const (
	// ImagesInline reads each referenced entry from the archive and rewrites
	// its href to a base64 data URI. This is the default: the emitted SVG
	// pages are fully standalone.
	ImagesInline ImagesMode = iota

	// ImagesLeave keeps hrefs exactly as they appear in the document.
	ImagesLeave

	// ImagesCopyDir extracts every archive entry under images/ into a
	// mirrored path below the output directory before page processing.
	// Hrefs are left unchanged; the directory layout makes them resolvable
	// as sibling files.
	ImagesCopyDir
)

// String returns the CLI-facing name of the mode.
func (m ImagesMode) String() string {
	switch m {
	case ImagesInline:
		return "data-uri"
	case ImagesLeave:
		return "nothing"
	case ImagesCopyDir:
		return "copy"
	default:
		return "unknown"
	}
}

// Options configures the SVG extraction pipeline.
type Options struct {
	// FixFills strips fill painting from shape elements, mimicking
	// Inkscape's "Select All → Fill → None".
	FixFills bool

	// FixSize enlarges a page's declared canvas when its content extent
	// overflows the declared width/height.
	FixSize bool

	// FixImageRefs repairs image hrefs whose literal entry is absent from
	// the archive by probing a "compressed_" prefixed alternate name.
	// Applies to lossless raster (.png) references only.
	FixImageRefs bool

	// ImagesMode selects href handling; see the ImagesMode constants.
	ImagesMode ImagesMode

	// DeleteBackgroundImages removes image elements whose id starts with
	// "backgroundImage".
	DeleteBackgroundImages bool

	// ResizeMargin is the safety margin, in page units, added beyond the
	// content extent when FixSize enlarges a canvas.
	ResizeMargin float64

	// Logger receives warnings for all recoverable conditions. Nil is
	// treated as a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions returns the options used by the command-line tools when no
// flags are given: fills stripped, canvas resizing on, image repair on,
// images inlined as data URIs, 100-unit resize margin.
func DefaultOptions() Options {
	return Options{
		FixFills:     true,
		FixSize:      true,
		FixImageRefs: true,
		ImagesMode:   ImagesInline,
		ResizeMargin: 100,
	}
}

// logger returns the configured logger, or a no-op logger when unset.
func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
