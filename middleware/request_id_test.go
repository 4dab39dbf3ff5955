package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	router := gin.New()
	router.Use(RequestIDMiddleware(), RequestLogger())
	router.GET("/test", func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		c.Status(http.StatusNoContent)
	})

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)

		header := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(header)
		require.NoError(t, err)
		assert.Equal(t, header, seen)
	})

	t.Run("keeps an incoming id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "upstream-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "upstream-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "upstream-123", seen)
	})
}
