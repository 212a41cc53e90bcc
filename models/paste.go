package models

import "mime/multipart"

// PasteType is the kind of data carried by a paste.
type PasteType int

const (
	// FilePaste is any type of file content.
	FilePaste PasteType = iota
	// URLPaste is a paste that only contains a URL.
	URLPaste
)

// String returns a human-readable name for the paste type.
func (t PasteType) String() string {
	switch t {
	case FilePaste:
		return "file"
	case URLPaste:
		return "url"
	default:
		return "unknown"
	}
}

// Paste represents a single submission: the raw bytes and their type.
// It is created per request and holds no identity beyond the written file.
type Paste struct {
	Data []byte
	Type PasteType
}

// ClassifyForm determines the paste type from the multipart form fields.
// A "file" field wins over a "url" field when both are present.
func ClassifyForm(form *multipart.Form) (PasteType, error) {
	if form == nil {
		return 0, ErrNoPasteField
	}
	if hasFormField(form, "file") {
		return FilePaste, nil
	}
	if hasFormField(form, "url") {
		return URLPaste, nil
	}
	return 0, ErrNoPasteField
}

func hasFormField(form *multipart.Form, name string) bool {
	if len(form.File[name]) > 0 {
		return true
	}
	return len(form.Value[name]) > 0
}
