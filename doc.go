// Package iwb converts Newline interactive-whiteboard archives (IWB files)
// into standalone SVG pages and, via the pdfengine subpackage, merged PDF
// documents.
//
// An IWB file is a ZIP container holding a single XML document plus raster
// and vector images under an images/ prefix. Each <page> element in the
// document becomes one SVG file. Before serialization every page runs
// through a normalization pipeline: image-reference repair and resolution,
// vendor textarea flattening, fill stripping, transform-aware content-extent
// computation, and canvas resizing.
//
// # Opening an archive
//
// Use [Open] to open a file by path, or [NewReader] to read from an
// [io.ReaderAt]:
//
//	a, err := iwb.Open("lesson.iwb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
// # Extracting SVG pages
//
//	paths, err := iwb.ExtractSVG("lesson.iwb", "svg_output", iwb.DefaultOptions())
//
// Each page is written as page_<N>.svg, N being the zero-based page index in
// document order.
//
// # Producing a PDF
//
//	eng := pdfengine.Auto(logger)
//	err := iwb.ExtractPDF(ctx, "lesson.iwb", "lesson.pdf", iwb.DefaultOptions(), eng, pdfengine.Options{})
//
// # Error Handling
//
// The package defines sentinel errors for the fatal failure cases:
//   - [ErrMalformedArchive] – the container cannot be opened or its document parsed
//   - [ErrNoDocument] – no .xml entry exists in the archive
//   - [ErrNoPages] – the document contains no page elements
//   - [ErrEntryNotFound] – a requested entry is not in the archive
//
// Everything else (a missing image, an unparsable transform, an href that
// cannot be repaired) degrades to a warning on the configured logger and
// leaves the affected data unchanged; a failure on one element never aborts
// its page, and a failure on one page never aborts its siblings.
package iwb
