package upload

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"pastebox/config"
	"pastebox/internal/services"
	"pastebox/storage"
)

type stubGenerator struct {
	name string
	ok   bool
}

func (g stubGenerator) Generate() (string, bool) { return g.name, g.ok }

func newTestRouter(t *testing.T, gen stubGenerator, cfg *config.Config) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "url"), 0o755); err != nil {
		t.Fatalf("failed to create url dir: %v", err)
	}
	store, err := storage.NewFilesystemStore(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if cfg.MaxContentLength == 0 {
		cfg.MaxContentLength = 1024 * 1024
	}
	handler := NewHandler(services.NewPasteService(store, gen, cfg), cfg)

	router := gin.New()
	router.POST("/", handler.Upload)
	return router, dir
}

func multipartBody(t *testing.T, fileField, fileName string, fileContent []byte, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	for name, value := range values {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func doUpload(t *testing.T, router *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func responseName(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return resp.Name
}

func TestUploadFile(t *testing.T) {
	router, dir := newTestRouter(t, stubGenerator{}, &config.Config{DefaultExtension: "txt"})

	body, contentType := multipartBody(t, "file", "notes.md", []byte("# hello"), nil)
	w := doUpload(t, router, body, contentType)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	name := responseName(t, w)
	if name != "notes.md" {
		t.Errorf("resolved name = %q, want notes.md", name)
	}
	written, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(written) != "# hello" {
		t.Errorf("stored content = %q", written)
	}
}

func TestUploadFileWithGeneratedName(t *testing.T) {
	router, _ := newTestRouter(t, stubGenerator{name: "xyz", ok: true}, &config.Config{DefaultExtension: "txt"})

	body, contentType := multipartBody(t, "file", "test.txt", []byte("test"), nil)
	w := doUpload(t, router, body, contentType)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if name := responseName(t, w); name != "xyz.txt" {
		t.Errorf("resolved name = %q, want xyz.txt", name)
	}
}

func TestUploadFileWinsOverURL(t *testing.T) {
	router, dir := newTestRouter(t, stubGenerator{}, &config.Config{DefaultExtension: "txt"})

	body, contentType := multipartBody(t, "file", "both.txt", []byte("file data"),
		map[string]string{"url": "https://example.com/"})
	w := doUpload(t, router, body, contentType)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if name := responseName(t, w); name != "both.txt" {
		t.Errorf("resolved name = %q, want both.txt", name)
	}
	// Nothing must land in the url/ namespace.
	entries, err := os.ReadDir(filepath.Join(dir, "url"))
	if err != nil {
		t.Fatalf("failed to list url dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty url/ dir, got %d entries", len(entries))
	}
}

func TestUploadURL(t *testing.T) {
	router, dir := newTestRouter(t, stubGenerator{}, &config.Config{DefaultExtension: "txt"})

	body, contentType := multipartBody(t, "", "", nil,
		map[string]string{"url": "https://orhun.dev/"})
	w := doUpload(t, router, body, contentType)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if name := responseName(t, w); name != "url" {
		t.Errorf("resolved name = %q, want url", name)
	}
	written, err := os.ReadFile(filepath.Join(dir, "url", "url"))
	if err != nil {
		t.Fatalf("failed to read stored url: %v", err)
	}
	if string(written) != "https://orhun.dev/" {
		t.Errorf("stored url = %q", written)
	}
}

func TestUploadInvalidURL(t *testing.T) {
	router, _ := newTestRouter(t, stubGenerator{}, &config.Config{DefaultExtension: "txt"})

	body, contentType := multipartBody(t, "", "", nil,
		map[string]string{"url": "testurl.com"})
	w := doUpload(t, router, body, contentType)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", w.Code, w.Body.String())
	}
}

func TestUploadNoPasteField(t *testing.T) {
	router, _ := newTestRouter(t, stubGenerator{}, &config.Config{DefaultExtension: "txt"})

	body, contentType := multipartBody(t, "", "", nil,
		map[string]string{"expire": "1h"})
	w := doUpload(t, router, body, contentType)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", w.Code, w.Body.String())
	}
}

func TestUploadTooLarge(t *testing.T) {
	router, _ := newTestRouter(t, stubGenerator{}, &config.Config{
		DefaultExtension: "txt",
		MaxContentLength: 64,
	})

	body, contentType := multipartBody(t, "file", "big.bin", bytes.Repeat([]byte("x"), 4096), nil)
	w := doUpload(t, router, body, contentType)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413; body = %s", w.Code, w.Body.String())
	}
}

func TestUploadPlainTextResponseForCli(t *testing.T) {
	router, _ := newTestRouter(t, stubGenerator{}, &config.Config{DefaultExtension: "txt"})

	body, contentType := multipartBody(t, "file", "cli.txt", []byte("hi"), nil)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "curl/8.0")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	respBody, _ := io.ReadAll(w.Body)
	if !bytes.HasSuffix(bytes.TrimRight(respBody, "\n"), []byte("/cli.txt")) {
		t.Errorf("expected plain-text URL ending in /cli.txt, got %q", respBody)
	}
}
