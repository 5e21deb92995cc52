package helpers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check that session headers are set
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Accept"))
		assert.Contains(t, r.Header.Get("Accept-Language"), "az")
		assert.NotEmpty(t, r.Header.Get("Referer"))

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><body>Hello, World!</body></html>"))
	}))
	defer server.Close()

	session := NewSession(server.URL, 5*time.Second)
	reader, err := session.Get(server.URL, nil)
	assert.NoError(t, err)

	body, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "Hello, World!")
}

func TestSessionGetExtraHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	session := NewSession(server.URL, 5*time.Second)
	_, err := session.Get(server.URL, map[string]string{
		"X-Requested-With": "XMLHttpRequest",
	})
	assert.NoError(t, err)
}

func TestSessionGetNonUTF8(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><body>Hello, World!</body></html>"))
	}))
	defer server.Close()

	session := NewSession(server.URL, 5*time.Second)
	reader, err := session.Get(server.URL, nil)
	assert.NoError(t, err)

	body, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "Hello, World!")
}

func TestSessionGetErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	session := NewSession(server.URL, 5*time.Second)
	_, err := session.Get(server.URL, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestSessionGetRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	session := NewSession(server.URL, 5*time.Second)
	_, err := session.Get(server.URL, nil)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestSessionGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"phones":["(050) 123-45-67"]}`))
	}))
	defer server.Close()

	session := NewSession(server.URL, 5*time.Second)
	body, status, err := session.GetJSON(server.URL, nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "phones")
}

func TestLastPathSegment(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"https://bina.az/items/4012345", "4012345"},
		{"https://bina.az/items/4012345?utm=x", "4012345"},
		{"https://bina.az/items/4012345/", "4012345"},
		{"https://bina.az", "bina.az"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, LastPathSegment(tc.input), tc.input)
	}
}
