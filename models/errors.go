package models

import "errors"

// Errors returned by paste classification and validation. Handlers map these
// to client-fault responses; anything else surfaced by the storage layer is
// treated as a server-side I/O failure.
var (
	// ErrNoPasteField means the multipart form carried neither a "file"
	// nor a "url" field.
	ErrNoPasteField = errors.New("form has no file or url field")

	// ErrNotText means a URL paste's bytes are not valid UTF-8.
	ErrNotText = errors.New("paste data is not valid text")

	// ErrInvalidURL means a URL paste's text is not an absolute URL.
	ErrInvalidURL = errors.New("paste data is not an absolute URL")
)
