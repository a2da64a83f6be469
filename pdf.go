package iwb

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/MatteoGheza/newline-iwb-converter/pdfengine"
)

// ExtractPDF converts an IWB file straight to a single PDF: pages are
// extracted into a temporary directory with images inlined, then combined by
// the given engine. The temporary directory is removed on every exit path.
// A nil engine selects one automatically (Inkscape when installed, the
// built-in engine otherwise).
func ExtractPDF(ctx context.Context, iwbPath, outputPDF string, opts Options, eng pdfengine.Engine, engOpts pdfengine.Options) error {
	log := opts.logger()

	tempDir, err := os.MkdirTemp("", "iwb2pdf-")
	if err != nil {
		return fmt.Errorf("iwb: create temporary directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// The engines consume standalone files, so hrefs must not point back
	// into the archive.
	opts.ImagesMode = ImagesInline

	log.Debug("extracting pages", zap.String("dir", tempDir))
	pages, err := ExtractSVG(iwbPath, tempDir, opts)
	if err != nil {
		return err
	}

	if eng == nil {
		eng = pdfengine.Auto(log)
	}
	log.Info("combining pages into PDF",
		zap.String("engine", eng.Name()),
		zap.Int("pages", len(pages)),
		zap.String("output", outputPDF))
	return eng.Combine(ctx, pages, outputPDF, engOpts)
}
