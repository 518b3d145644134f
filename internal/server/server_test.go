package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/Jay-Lokhande/lazmy/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 890_000_000, time.FixedZone("CET", 3600))

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ambient-sound.mp3"), []byte("ID3sound"), 0o644))
	cfg := config.ServerConfig{Addr: "127.0.0.1:0", AssetsDir: dir, ShutdownTimeout: time.Second}
	return New(cfg, zaptest.NewLogger(t), WithClock(func() time.Time { return fixedNow })), dir
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s.Handler(), http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))

	var h Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, Health{Status: "ok", Timestamp: "2025-03-04T04:06:07.890Z"}, h)

	// Rendered once: a second request is byte-identical.
	again := do(t, s.Handler(), http.MethodGet, "/health")
	assert.Equal(t, rec.Body.String(), again.Body.String())

	head := do(t, s.Handler(), http.MethodHead, "/health")
	assert.Equal(t, http.StatusOK, head.Code)
	assert.Equal(t, "public, max-age=60", head.Header().Get("Cache-Control"))
}

func TestRenderHealthTimestamp(t *testing.T) {
	body := renderHealth(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	assert.JSONEq(t, `{"status":"ok","timestamp":"2024-01-02T03:04:05.000Z"}`, string(body))
}

func TestStaticAssets(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s.Handler(), http.MethodGet, "/ambient-sound.mp3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ID3sound", rec.Body.String())

	head := do(t, s.Handler(), http.MethodHead, "/ambient-sound.mp3")
	assert.Equal(t, http.StatusOK, head.Code)
	assert.Empty(t, head.Body.String())

	missing := do(t, s.Handler(), http.MethodHead, "/interaction-sound.mp3")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestNotFoundPage(t *testing.T) {
	s, _ := newTestServer(t)

	for _, target := range []string{"/nope", "/", "/../etc/passwd"} {
		rec := do(t, s.Handler(), http.MethodGet, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "404: Not Found")
	}
}

func TestNoAssetsDir(t *testing.T) {
	s := New(config.ServerConfig{Addr: ":0"}, nil)
	assert.Equal(t, http.StatusNotFound, do(t, s.Handler(), http.MethodGet, "/ambient-sound.mp3").Code)
	assert.Equal(t, http.StatusOK, do(t, s.Handler(), http.MethodGet, "/health").Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	client := &http.Client{Timeout: time.Second, Transport: &http.Transport{DisableKeepAlives: true}}
	require.Eventually(t, func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunBadAddress(t *testing.T) {
	s := New(config.ServerConfig{Addr: "256.0.0.1:99999"}, nil)
	assert.Error(t, s.Run(context.Background()))
}
