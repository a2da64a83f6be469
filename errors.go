package iwb

import "errors"

// Sentinel errors returned by the iwb package.
var (
	// ErrMalformedArchive indicates the IWB container cannot be opened as a
	// ZIP archive, or its document entry is not well-formed XML.
	ErrMalformedArchive = errors.New("iwb: malformed archive")

	// ErrNoDocument indicates the archive contains no entry with a .xml
	// extension (case-insensitive).
	ErrNoDocument = errors.New("iwb: no XML document found in archive")

	// ErrNoPages indicates the document was parsed but contains zero
	// page elements.
	ErrNoPages = errors.New("iwb: no page elements found in document")

	// ErrEntryNotFound indicates the requested entry does not exist
	// in the IWB archive.
	ErrEntryNotFound = errors.New("iwb: entry not found in archive")
)
