package api

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadstack/internal/config"
	"github.com/leadstack/internal/service"
	"github.com/leadstack/internal/storage"
)

func TestHealthAndPing(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]string
	decodeBody(t, rec, &health)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "lead-manager", health["service"])

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/ping", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ping map[string]string
	decodeBody(t, rec, &ping)
	assert.Equal(t, "ping", ping["message"])
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/ping", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"), "server assigns a request id")

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "caller-supplied", rec.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/leads", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitRejectsBurstOverflow(t *testing.T) {
	dir := t.TempDir()
	logger := testLogger()

	leadStore := storage.NewFileLeadStore(filepath.Join(dir, "leads.csv"), logger)
	listStore := storage.NewFileListStore(filepath.Join(dir, "lists.json"), logger)
	leads := service.NewLeadService(leadStore, nil, logger)

	cfg := &ServerConfig{
		Host:        "127.0.0.1",
		Port:        "0",
		RateLimit:   config.RateLimitConfig{RequestsPerSecond: 1, Burst: 2},
		PingMessage: "ping",
	}
	srv := NewServer(cfg, leads, listStore, logger)

	var lastCode int
	limited := false
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		lastCode = rec.Code
		if rec.Code == http.StatusTooManyRequests {
			limited = true
		}
	}
	assert.True(t, limited, "burst of 5 against burst size 2 must trip the limiter")
	assert.Equal(t, http.StatusTooManyRequests, lastCode)

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGzipCompression(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	gz, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(gz)
	require.NoError(t, err)

	var ping map[string]string
	require.NoError(t, json.Unmarshal(raw, &ping))
	assert.Equal(t, "ping", ping["message"])
}
