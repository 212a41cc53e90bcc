package utils

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// InferExtension sniffs the content and returns a file extension including
// the leading dot. Plain text and unrecognized content fall back to the
// configured default extension, since sniffing only identifies content with
// a distinctive signature.
func InferExtension(content []byte, defaultExtension string) string {
	mt := mimetype.Detect(content)
	ext := mt.Extension()
	if ext == "" || mt.Is("text/plain") || mt.Is("application/octet-stream") {
		return "." + strings.TrimPrefix(defaultExtension, ".")
	}
	return ext
}

// DetectContentType returns the MIME type of stored content for serving.
func DetectContentType(content []byte) string {
	if len(content) == 0 {
		return "application/octet-stream"
	}
	return mimetype.Detect(content).String()
}
