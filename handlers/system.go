package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemHandler handles system endpoints
type SystemHandler struct {
	version string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(version string) *SystemHandler {
	return &SystemHandler{version: version}
}

// Health handles health check via GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "pastebox",
		"version": h.version,
	})
}

const usage = `pastebox

Submit files:

    curl -F "file=@example.txt" <server address>

Submit from stdin:

    echo "some text" | curl -F "file=@-" <server address>

Shorten URLs:

    curl -F "url=https://example.com/some/long/path" <server address>
`

// Index serves a plain-text usage blurb via GET /
func (h *SystemHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, usage)
}
