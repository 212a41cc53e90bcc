package services

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"pastebox/config"
	"pastebox/models"
	"pastebox/storage"
	"pastebox/utils"
)

// PasteService resolves final file names for submitted pastes and writes
// them to the storage backend. It owns the naming decision; the name it
// returns is the one the caller must report back, since it may differ from
// what was requested.
type PasteService struct {
	store  storage.Store
	gen    utils.NameGenerator
	config *config.Config
}

// NewPasteService creates a new paste service
func NewPasteService(store storage.Store, gen utils.NameGenerator, config *config.Config) *PasteService {
	return &PasteService{
		store:  store,
		gen:    gen,
		config: config,
	}
}

// StoreFile writes a file paste and returns the resolved file name.
//
//   - Directory components of requestedName are stripped; an unusable name
//     becomes "file" and "-" becomes "stdin".
//   - When the requested name has an extension, the generator may replace
//     the base name but the extension is kept.
//   - When it has none, the generator may replace the base name and the
//     extension is inferred from the content, falling back to the configured
//     default extension.
func (s *PasteService) StoreFile(paste *models.Paste, requestedName string) (string, error) {
	stem, ext := splitExt(sanitizeFileName(requestedName))
	if replacement, ok := s.gen.Generate(); ok {
		stem = replacement
	}
	if ext == "" {
		ext = utils.InferExtension(paste.Data, s.config.DefaultExtension)
		if ext == "." {
			ext = ""
		}
	}
	resolved := stem + ext
	if err := s.store.Put(resolved, paste.Data); err != nil {
		return "", fmt.Errorf("store file %q: %w", resolved, err)
	}
	return resolved, nil
}

// StoreURL validates a URL paste and writes the canonical URL string under
// the url/ prefix, returning the resolved file name.
func (s *PasteService) StoreURL(paste *models.Paste) (string, error) {
	if !utf8.Valid(paste.Data) {
		return "", models.ErrNotText
	}
	u, err := url.Parse(string(paste.Data))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", models.ErrInvalidURL
	}
	name, ok := s.gen.Generate()
	if !ok {
		name = "url"
	}
	if err := s.store.Put(path.Join("url", name), []byte(u.String())); err != nil {
		return "", fmt.Errorf("store url %q: %w", name, err)
	}
	return name, nil
}

// Store dispatches on the paste type.
func (s *PasteService) Store(paste *models.Paste, requestedName string) (string, error) {
	if paste.Type == models.URLPaste {
		return s.StoreURL(paste)
	}
	return s.StoreFile(paste, requestedName)
}

// sanitizeFileName reduces a client-supplied name to a safe base component.
// "-" is reserved for stdin-sourced uploads.
func sanitizeFileName(requested string) string {
	base := filepath.Base(requested)
	switch base {
	case ".", "..", string(filepath.Separator):
		return "file"
	case "-":
		return "stdin"
	}
	return base
}

// splitExt splits a file name into stem and extension (with leading dot).
// Names that consist only of an extension, like ".bashrc", count as having
// no extension.
func splitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		return name, ""
	}
	return stem, ext
}
