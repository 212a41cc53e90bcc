package retrieval

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pastebox/config"
	"pastebox/metrics"
	"pastebox/storage"
	"pastebox/utils"
)

// Handler handles paste retrieval operations
type Handler struct {
	store  storage.Store
	config *config.Config
}

// NewHandler creates a new retrieval handler
func NewHandler(store storage.Store, config *config.Config) *Handler {
	return &Handler{
		store:  store,
		config: config,
	}
}

// Serve handles GET /:name. URL pastes stored under url/<name> take
// precedence and respond with a redirect; file pastes are streamed back
// with a sniffed Content-Type.
func (h *Handler) Serve(c *gin.Context) {
	name := c.Param("name")
	if !validName(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paste name"})
		return
	}

	if target, ok := h.lookupURL(name); ok {
		metrics.PastesServed.Inc()
		c.Redirect(http.StatusFound, target)
		return
	}

	content, err := h.store.Get(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "paste not found"})
		return
	}

	metrics.PastesServed.Inc()
	c.Data(http.StatusOK, utils.DetectContentType(content), content)
}

// lookupURL returns the stored target when name belongs to a URL paste.
func (h *Handler) lookupURL(name string) (string, bool) {
	exists, err := h.store.Exists("url/" + name)
	if err != nil {
		log.Printf("[ERROR] failed to check url paste %s: %v", name, err)
		return "", false
	}
	if !exists {
		return "", false
	}
	content, err := h.store.Get("url/" + name)
	if err != nil {
		log.Printf("[ERROR] failed to read url paste %s: %v", name, err)
		return "", false
	}
	return string(content), true
}

// validName rejects empty names and anything that could traverse out of the
// upload namespace.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
