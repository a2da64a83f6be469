package pdfengine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"
)

// Inkscape shells out to a local Inkscape installation to rasterize each SVG
// page into a PDF, then merges the per-page PDFs into the output document.
type Inkscape struct {
	path string // cached binary path, resolved lazily
}

// NewInkscape returns an Inkscape engine. The binary is located on first use.
func NewInkscape() *Inkscape {
	return &Inkscape{}
}

// Name implements Engine.
func (e *Inkscape) Name() string { return "inkscape" }

// Available implements Engine.
func (e *Inkscape) Available() bool {
	return e.binary() != ""
}

// binary locates the Inkscape executable: PATH first, then well-known
// per-platform installation paths. The result is cached; an empty string
// means not installed.
func (e *Inkscape) binary() string {
	if e.path != "" {
		return e.path
	}

	if p, err := exec.LookPath("inkscape"); err == nil {
		e.path = p
		return p
	}

	var candidates []string
	switch runtime.GOOS {
	case "windows":
		candidates = []string{
			`C:\Program Files\Inkscape\bin\inkscape.exe`,
			`C:\Program Files (x86)\Inkscape\bin\inkscape.exe`,
			`C:\Program Files\Inkscape\inkscape.exe`,
			`C:\Program Files (x86)\Inkscape\inkscape.exe`,
		}
	case "darwin":
		candidates = []string{
			"/Applications/Inkscape.app/Contents/MacOS/inkscape",
			"/usr/local/bin/inkscape",
			"/opt/homebrew/bin/inkscape",
		}
	default:
		candidates = []string{
			"/usr/bin/inkscape",
			"/usr/local/bin/inkscape",
			"/snap/bin/inkscape",
		}
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			e.path = c
			return c
		}
	}
	return ""
}

// Combine implements Engine. Each SVG is exported to a temporary per-page
// PDF under a per-page timeout, then the pages are merged with pdfcpu. Any
// page failure aborts the PDF stage: a silently truncated document would be
// worse than no document. UniformSize is not supported by this engine.
func (e *Inkscape) Combine(ctx context.Context, svgPaths []string, outputPDF string, opts Options) error {
	log := opts.logger()

	if len(svgPaths) == 0 {
		return errors.New("pdfengine: no SVG pages to combine")
	}
	bin := e.binary()
	if bin == "" {
		return errors.New("pdfengine: inkscape not found")
	}
	if opts.UniformSize {
		log.Warn("uniform page sizing is not supported by the inkscape engine; page sizes follow each SVG")
	}

	tempDir, err := os.MkdirTemp("", "iwb-inkscape-")
	if err != nil {
		return fmt.Errorf("pdfengine: create temporary directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pdfPaths := make([]string, 0, len(svgPaths))
	for i, svgPath := range svgPaths {
		pdfPath := filepath.Join(tempDir, fmt.Sprintf("page_%d.pdf", i))
		if err := e.exportPage(ctx, bin, svgPath, pdfPath, opts); err != nil {
			return fmt.Errorf("pdfengine: convert %s: %w", filepath.Base(svgPath), err)
		}
		log.Debug("converted page",
			zap.String("svg", filepath.Base(svgPath)),
			zap.String("pdf", filepath.Base(pdfPath)))
		pdfPaths = append(pdfPaths, pdfPath)
	}

	if err := api.MergeCreateFile(pdfPaths, outputPDF, false, nil); err != nil {
		return fmt.Errorf("pdfengine: merge pages into %s: %w", outputPDF, err)
	}
	log.Info("saved PDF", zap.String("path", outputPDF), zap.Int("pages", len(pdfPaths)))
	return nil
}

// exportPage runs one inkscape export under the per-page timeout.
func (e *Inkscape) exportPage(ctx context.Context, bin, svgPath, pdfPath string, opts Options) error {
	runCtx, cancel := context.WithTimeout(ctx, opts.timeout())
	defer cancel()

	cmd := exec.CommandContext(runCtx, bin,
		svgPath,
		"--export-type=pdf",
		"--export-filename="+pdfPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("inkscape timed out after %s", opts.timeout())
		}
		msg := bytes.TrimSpace(stderr.Bytes())
		if len(msg) > 0 {
			return fmt.Errorf("inkscape: %s: %w", msg, err)
		}
		return fmt.Errorf("inkscape: %w", err)
	}
	return nil
}
