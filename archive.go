package iwb

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// XML namespaces used by the IWB page convention.
const (
	svgNamespace   = "http://www.w3.org/2000/svg"
	xlinkNamespace = "http://www.w3.org/1999/xlink"
	iwbNamespace   = "http://www.imsglobal.org/xsd/iwb_v1p0"
)

// imagePrefix is the archive path prefix under which image entries live.
const imagePrefix = "images/"

// Archive is the main entry point for reading IWB files.
// Use Open or NewReader to create an Archive instance.
//
// An Archive is not safe for concurrent use by multiple goroutines.
type Archive struct {
	zip      *zip.Reader
	zipExact map[string]*zip.File // exact-match ZIP file index
	zipLower map[string]*zip.File // lowercase ZIP file index
	closer   io.Closer            // non-nil only when created via Open()
	docName  string
	doc      *etree.Document
	pages    []*etree.Element
	warnings []string
}

// Open opens an IWB file at the given path.
// The caller must call Close when done reading from the archive.
func Open(path string) (*Archive, error) {
	zrc, err := zip.OpenReader(path)
	// ErrInsecurePath still yields a usable reader; unsafe entries are
	// filtered per read, so surface it as a warning instead of failing.
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("iwb: open %s: %v: %w", path, err, ErrMalformedArchive)
	}
	insecure := err != nil

	a, err := initArchive(&zrc.Reader, zrc)
	if err != nil {
		zrc.Close()
		return nil, err
	}
	if insecure {
		a.warnings = append(a.warnings, "archive contains entries with unsafe paths; they will be skipped")
	}
	return a, nil
}

// NewReader creates an Archive from an io.ReaderAt with the given size.
// The caller is responsible for the lifetime of r; Close only cleans
// up internal state.
func NewReader(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("iwb: open zip: %v: %w", err, ErrMalformedArchive)
	}
	insecure := err != nil

	a, err := initArchive(zr, nil)
	if err != nil {
		return nil, err
	}
	if insecure {
		a.warnings = append(a.warnings, "archive contains entries with unsafe paths; they will be skipped")
	}
	return a, nil
}

// initArchive performs common initialisation: ZIP indexing, document entry
// detection, XML parsing, and page collection.
func initArchive(zr *zip.Reader, closer io.Closer) (*Archive, error) {
	a := &Archive{
		zip:    zr,
		closer: closer,
	}

	// Build ZIP file index for O(1) lookups.
	a.buildZipIndex()

	// Locate the document: first entry ending in ".xml", case-insensitive,
	// in archive order.
	docName, err := findDocumentEntry(zr)
	if err != nil {
		return nil, err
	}
	a.docName = docName

	docFile := a.findFile(docName)
	if docFile == nil {
		return nil, fmt.Errorf("iwb: document entry not readable: %s: %w", docName, ErrMalformedArchive)
	}
	data, err := readZipFile(docFile)
	if err != nil {
		return nil, fmt.Errorf("iwb: read document %s: %w", docName, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(stripBOM(data)); err != nil {
		return nil, fmt.Errorf("iwb: parse document %s: %v: %w", docName, err, ErrMalformedArchive)
	}
	a.doc = doc

	if err := a.collectPages(); err != nil {
		return nil, err
	}

	return a, nil
}

// findDocumentEntry returns the name of the first ZIP entry whose name ends
// in ".xml" (case-insensitive). Returns ErrNoDocument if none exists.
func findDocumentEntry(zr *zip.Reader) (string, error) {
	for _, f := range zr.File {
		if strings.HasSuffix(strings.ToLower(f.Name), ".xml") {
			return f.Name, nil
		}
	}
	return "", ErrNoDocument
}

// collectPages gathers all page elements from the document in document order.
// A page is an element with local tag "page" in the SVG namespace. Documents
// that declare no namespaces at all are accepted leniently by local tag match
// (recorded as a warning). Zero pages is fatal.
func (a *Archive) collectPages() error {
	root := a.doc.Root()
	if root == nil {
		return fmt.Errorf("iwb: document %s has no root element: %w", a.docName, ErrMalformedArchive)
	}

	var strict, lenient []*etree.Element
	walkElements(root, func(e *etree.Element) {
		if e.Tag != "page" {
			return
		}
		lenient = append(lenient, e)
		if e.NamespaceURI() == svgNamespace {
			strict = append(strict, e)
		}
	})

	a.pages = strict
	if len(a.pages) == 0 && len(lenient) > 0 {
		a.warnings = append(a.warnings, "page elements found outside the SVG namespace; accepting by local tag")
		a.pages = lenient
	}
	if len(a.pages) == 0 {
		return ErrNoPages
	}
	return nil
}

// Close releases resources held by the Archive. When the Archive was created
// via Open, Close closes the underlying file. Close is idempotent.
func (a *Archive) Close() error {
	if a.closer != nil {
		err := a.closer.Close()
		a.closer = nil
		return err
	}
	return nil
}

// buildZipIndex builds exact-match and lowercase ZIP file indexes for O(1) lookups.
func (a *Archive) buildZipIndex() {
	a.zipExact = make(map[string]*zip.File, len(a.zip.File))
	a.zipLower = make(map[string]*zip.File, len(a.zip.File))
	for _, f := range a.zip.File {
		if _, exists := a.zipExact[f.Name]; !exists {
			a.zipExact[f.Name] = f // first match wins for exact
		}
		lower := strings.ToLower(f.Name)
		if _, exists := a.zipLower[lower]; !exists {
			a.zipLower[lower] = f // first match wins for case-insensitive
		}
	}
}

// findFile looks up a ZIP entry by path using the pre-built index.
// It tries an exact match first, then falls back to a case-insensitive match.
func (a *Archive) findFile(name string) *zip.File {
	if f, ok := a.zipExact[name]; ok {
		return f
	}
	if f, ok := a.zipLower[strings.ToLower(name)]; ok {
		return f
	}
	return nil
}

// HasEntry reports whether an entry with the given archive path exists.
func (a *Archive) HasEntry(name string) bool {
	return a.findFile(name) != nil
}

// ReadEntry reads an entry from the archive by its ZIP-internal path.
// The lookup is case-insensitive as a fallback.
// Returns ErrEntryNotFound if no entry matches.
func (a *Archive) ReadEntry(name string) ([]byte, error) {
	f := a.findFile(name)
	if f == nil {
		return nil, ErrEntryNotFound
	}
	return readZipFile(f)
}

// ImageEntries returns the names of all entries under the images/ prefix,
// in archive order.
func (a *Archive) ImageEntries() []string {
	var names []string
	for _, f := range a.zip.File {
		if strings.HasPrefix(f.Name, imagePrefix) {
			names = append(names, f.Name)
		}
	}
	return names
}

// DocumentName returns the archive path of the XML document entry.
func (a *Archive) DocumentName() string {
	return a.docName
}

// PageCount returns the number of page elements in the document.
func (a *Archive) PageCount() int {
	return len(a.pages)
}

// Warnings returns the list of non-fatal warnings accumulated during parsing.
func (a *Archive) Warnings() []string {
	return append([]string(nil), a.warnings...)
}

// walkElements visits e and all its descendant elements in document order.
func walkElements(e *etree.Element, fn func(*etree.Element)) {
	fn(e)
	for _, c := range e.ChildElements() {
		walkElements(c, fn)
	}
}

// collectElements returns e and all descendants matching pred, in document
// order. Collecting before mutating keeps tree rewrites off the walk path.
func collectElements(e *etree.Element, pred func(*etree.Element) bool) []*etree.Element {
	var out []*etree.Element
	walkElements(e, func(el *etree.Element) {
		if pred(el) {
			out = append(out, el)
		}
	})
	return out
}
