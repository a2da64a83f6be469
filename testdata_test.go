package iwb

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// zipEntry is one named entry for order-sensitive test archives.
type zipEntry struct {
	name    string
	content string
}

// buildTestZip creates an in-memory ZIP archive from the provided files map
// (path → content) and returns a *zip.Reader over the resulting bytes.
// Entry order is unspecified; use buildTestZipEntries when it matters.
// It calls t.Fatal on any error.
func buildTestZip(t *testing.T, files map[string]string) *zip.Reader {
	t.Helper()
	entries := make([]zipEntry, 0, len(files))
	for name, content := range files {
		entries = append(entries, zipEntry{name: name, content: content})
	}
	return buildTestZipEntries(t, entries)
}

// buildTestZipEntries creates an in-memory ZIP archive preserving the given
// entry order, which matters for document-detection tests (first .xml wins).
func buildTestZipEntries(t *testing.T, entries []zipEntry) *zip.Reader {
	t.Helper()
	data := zipBytes(t, entries)
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		t.Fatalf("buildTestZipEntries: open reader: %v", err)
	}
	return r
}

func zipBytes(t *testing.T, entries []zipEntry) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, e := range entries {
		fw, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("zipBytes: create %s: %v", e.name, err)
		}
		if _, err := io.WriteString(fw, e.content); err != nil {
			t.Fatalf("zipBytes: write %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zipBytes: close writer: %v", err)
	}
	return buf.Bytes()
}

// buildTestIWBFile writes an IWB (ZIP) archive to a temporary file and
// returns the file path. This variant is useful for testing Open() which
// requires a file path.
func buildTestIWBFile(t *testing.T, entries []zipEntry) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "test.iwb")
	if err := os.WriteFile(fp, zipBytes(t, entries), 0644); err != nil {
		t.Fatalf("buildTestIWBFile: write file: %v", err)
	}
	return fp
}

// openTestArchive builds an in-memory archive from entries and opens it.
func openTestArchive(t *testing.T, entries []zipEntry) *Archive {
	t.Helper()
	data := zipBytes(t, entries)
	a, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("openTestArchive: %v", err)
	}
	return a
}

// iwbDocument wraps page markup in a minimal IWB document using the
// namespace convention of real Newline exports.
func iwbDocument(pages ...string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<iwb xmlns="http://www.imsglobal.org/xsd/iwb_v1p0"` +
		` xmlns:svg="http://www.w3.org/2000/svg"` +
		` xmlns:xlink="http://www.w3.org/1999/xlink">` + "\n")
	sb.WriteString("  <svg:svg>\n")
	for _, p := range pages {
		sb.WriteString("    " + p + "\n")
	}
	sb.WriteString("  </svg:svg>\n</iwb>\n")
	return sb.String()
}

// singlePageDocument is a page with one rect, used where page content is
// irrelevant.
const singlePageDocument = `<svg:page width="800" height="600"><svg:rect x="10" y="10" width="50" height="50"/></svg:page>`
