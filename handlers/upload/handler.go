package upload

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pastebox/config"
	"pastebox/internal/services"
	"pastebox/metrics"
	"pastebox/models"
)

// Handler handles paste upload operations
type Handler struct {
	service *services.PasteService
	config  *config.Config
}

// NewHandler creates a new upload handler
func NewHandler(service *services.PasteService, config *config.Config) *Handler {
	return &Handler{
		service: service,
		config:  config,
	}
}

// Upload handles paste upload via POST /. The multipart form must carry a
// "file" field (arbitrary bytes) or a "url" field (an absolute URL); a
// "file" field wins when both are present.
func (h *Handler) Upload(c *gin.Context) {
	if c.Request.ContentLength > h.config.MaxContentLength {
		metrics.UploadErrors.WithLabelValues("too_large").Inc()
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("content too large: %d bytes exceeds limit of %d bytes",
				c.Request.ContentLength, h.config.MaxContentLength),
		})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.config.MaxContentLength)

	form, err := c.MultipartForm()
	if err != nil {
		status := http.StatusBadRequest
		reason := "bad_form"
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			status = http.StatusRequestEntityTooLarge
			reason = "too_large"
		}
		metrics.UploadErrors.WithLabelValues(reason).Inc()
		c.JSON(status, gin.H{"error": "invalid multipart form"})
		return
	}

	pasteType, err := models.ClassifyForm(form)
	if err != nil {
		metrics.UploadErrors.WithLabelValues("no_field").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, requestedName, err := readFieldContent(form, pasteType.String())
	if err != nil {
		log.Printf("[ERROR] failed to read %s field: %v", pasteType, err)
		metrics.UploadErrors.WithLabelValues("read").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read form field"})
		return
	}

	paste := &models.Paste{Data: data, Type: pasteType}
	name, err := h.service.Store(paste, requestedName)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}

	metrics.PastesStored.WithLabelValues(pasteType.String()).Inc()
	metrics.BytesWritten.Add(float64(len(data)))

	pasteURL := h.pasteURL(c, name)
	if isCli(c) || c.GetHeader("Accept") == "text/plain" {
		c.String(http.StatusOK, pasteURL+"\n")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": pasteURL, "name": name})
}

// respondStoreError maps validation errors to client faults and everything
// else to a server fault.
func (h *Handler) respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrNotText) || errors.Is(err, models.ErrInvalidURL) {
		metrics.UploadErrors.WithLabelValues("validation").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[ERROR] failed to store paste: %v", err)
	metrics.UploadErrors.WithLabelValues("io").Inc()
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store paste"})
}

// readFieldContent returns the bytes and submitted file name of a form
// field, whether it arrived as a file part or a plain value.
func readFieldContent(form *multipart.Form, field string) ([]byte, string, error) {
	if headers := form.File[field]; len(headers) > 0 {
		header := headers[0]
		file, err := header.Open()
		if err != nil {
			return nil, "", fmt.Errorf("open %s part: %w", field, err)
		}
		defer func() { _ = file.Close() }()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("read %s part: %w", field, err)
		}
		return data, header.Filename, nil
	}
	if values := form.Value[field]; len(values) > 0 {
		return []byte(values[0]), "", nil
	}
	return nil, "", fmt.Errorf("form field %q vanished after classification", field)
}

// pasteURL builds the public URL for a stored paste. URL pastes are served
// from the same namespace: retrieval redirects when url/<name> exists.
func (h *Handler) pasteURL(c *gin.Context, name string) string {
	scheme := "http"
	if isHTTPS(c) {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, c.Request.Host, name)
}

// isHTTPS detects if the request is over HTTPS
func isHTTPS(c *gin.Context) bool {
	if c.GetHeader("X-Forwarded-Proto") == "https" {
		return true
	}
	return c.Request.TLS != nil
}

// isCli detects if the request is from CLI (curl, wget, etc.)
func isCli(c *gin.Context) bool {
	userAgent := strings.ToLower(c.Request.Header.Get("User-Agent"))
	return strings.Contains(userAgent, "curl") ||
		strings.Contains(userAgent, "wget") ||
		strings.Contains(userAgent, "powershell")
}
