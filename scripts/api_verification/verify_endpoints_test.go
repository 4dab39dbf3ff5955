package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/contact":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"message":"All fields are required"}`))
		default:
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	client := srv.Client()

	ok, code, _ := runCheck(client, srv.URL, EndpointCheck{
		Method: http.MethodPost, Path: "/api/contact",
		RequestBody:    map[string]string{"name": "x"},
		ExpectedStatus: http.StatusBadRequest,
		BodyContains:   "All fields are required",
	})
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, code)

	ok, _, detail := runCheck(client, srv.URL, EndpointCheck{
		Method: http.MethodGet, Path: "/api/contacts",
		ExpectedStatus: http.StatusOK,
		BodyContains:   "success",
	})
	assert.False(t, ok)
	assert.Contains(t, detail, "body missing")

	ok, code, _ = runCheck(client, srv.URL, EndpointCheck{
		Method: http.MethodGet, Path: "/health", ExpectedStatus: http.StatusServiceUnavailable,
	})
	assert.False(t, ok)
	assert.Equal(t, http.StatusOK, code)
}

func TestCoreChecksOnlyOneWrites(t *testing.T) {
	writes := 0
	for _, c := range coreChecks() {
		if c.Writes {
			writes++
			assert.Equal(t, http.MethodPost, c.Method)
		}
	}
	assert.Equal(t, 1, writes)
}
