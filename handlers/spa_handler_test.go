package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexHTML = "<!doctype html><div id=\"root\"></div>"

func setupSPARouter(t *testing.T, withIndex bool) *gin.Engine {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robots.txt"), []byte("User-agent: *"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	if withIndex {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(indexHTML), 0o644))
	}

	h := NewSPAHandler(dir)
	assert.Equal(t, dir, h.StaticDir())

	r := gin.New()
	r.GET("/api/contacts", func(c *gin.Context) { c.JSON(http.StatusOK, []string{}) })
	r.NoRoute(h.Fallback)
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestSPAFallback_ClientRoutesGetIndex(t *testing.T) {
	r := setupSPARouter(t, true)

	for _, p := range []string{"/", "/projects", "/projects/42/details", "/images"} {
		t.Run(p, func(t *testing.T) {
			w := serve(r, http.MethodGet, p)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, indexHTML, w.Body.String())
		})
	}
}

func TestSPAFallback_ServesExistingFile(t *testing.T) {
	r := setupSPARouter(t, true)

	w := serve(r, http.MethodGet, "/robots.txt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User-agent: *", w.Body.String())
}

func TestSPAFallback_IndexPathsAreNotRedirected(t *testing.T) {
	r := setupSPARouter(t, true)

	for _, p := range []string{"/index.html", "/swagger/index.html", "/projects/index.html"} {
		t.Run(p, func(t *testing.T) {
			w := serve(r, http.MethodGet, p)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Header().Get("Location"))
			assert.Equal(t, indexHTML, w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		})
	}
}

func TestSPAFallback_HeadHasNoBody(t *testing.T) {
	r := setupSPARouter(t, true)

	w := serve(r, http.MethodHead, "/robots.txt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSPAFallback_UnknownAPIPathIsJSON404(t *testing.T) {
	r := setupSPARouter(t, true)

	for _, p := range []string{"/api", "/api/", "/api/unknown", "/api/contact/extra"} {
		t.Run(p, func(t *testing.T) {
			w := serve(r, http.MethodGet, p)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"success":false,"message":"Not found"}`, w.Body.String())
		})
	}
}

func TestSPAFallback_NonGetIs404(t *testing.T) {
	r := setupSPARouter(t, true)

	w := serve(r, http.MethodPost, "/projects")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not found"}`, w.Body.String())
}

func TestSPAFallback_MissingIndex(t *testing.T) {
	r := setupSPARouter(t, false)

	w := serve(r, http.MethodGet, "/projects")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not found"}`, w.Body.String())
}
