package httpserver

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// site serves files from the public directory. Unknown paths outside /api
// fall back to index.html so /g/:slug and /l/:slug links open the map.
func (h *handlers) site(c *gin.Context) {
	p := c.Request.URL.Path
	if strings.HasPrefix(p, "/api/") || p == "/api" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if h.deps.PublicDir == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	clean := path.Clean("/" + p)
	full := filepath.Join(h.deps.PublicDir, filepath.FromSlash(clean))
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		c.File(full)
		return
	}
	index := filepath.Join(h.deps.PublicDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.File(index)
}
