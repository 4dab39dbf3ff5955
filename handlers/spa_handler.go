package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/devfolio/portfolio-backend/types"
	"github.com/gin-gonic/gin"
)

// SPAHandler serves the built frontend. Unknown non-API paths get the
// single-page app entry so client-side routing can take over.
type SPAHandler struct {
	staticDir string
}

func NewSPAHandler(staticDir string) *SPAHandler {
	return &SPAHandler{staticDir: staticDir}
}

// StaticDir returns the directory files are served from.
func (h *SPAHandler) StaticDir() string {
	return h.staticDir
}

// Fallback is the router's NoRoute handler.
func (h *SPAHandler) Fallback(c *gin.Context) {
	reqPath := c.Request.URL.Path
	if reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") {
		notFound(c)
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		notFound(c)
		return
	}

	// path.Clean on a rooted path cannot climb above the static dir
	rel := filepath.FromSlash(path.Clean("/" + reqPath))
	if file := filepath.Join(h.staticDir, rel); isRegularFile(file) {
		serveFile(c, file)
		return
	}

	index := filepath.Join(h.staticDir, "index.html")
	if !isRegularFile(index) {
		notFound(c)
		return
	}
	serveFile(c, index)
}

// serveFile writes name without http.ServeFile's index.html redirect, so
// a request for .../index.html gets the document itself.
func serveFile(c *gin.Context, name string) {
	f, err := os.Open(name)
	if err != nil {
		notFound(c)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		notFound(c)
		return
	}
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, types.ErrorResponse{Success: false, Message: "Not found"})
}

func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
