package assets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newAssetServer(t *testing.T, heads *atomic.Int32) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/static/ambient-sound.mp3", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			heads.Add(1)
		}
		_, _ = io.WriteString(w, "ID3")
	})
	mux.HandleFunc("/static/broken.mp3", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSource(t *testing.T) {
	var heads atomic.Int32
	srv := newAssetServer(t, &heads)
	src, err := NewHTTPSource(srv.URL+"/static", srv.Client(), zaptest.NewLogger(t))
	require.NoError(t, err)
	ctx := context.Background()

	assert.True(t, src.Probe(ctx, "ambient-sound.mp3"))
	assert.Equal(t, int32(1), heads.Load())
	assert.False(t, src.Probe(ctx, "interaction-sound.mp3"))
	assert.False(t, src.Probe(ctx, "broken.mp3"))

	rc, err := src.Open(ctx, "ambient-sound.mp3")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "ID3", string(body))

	_, err = src.Open(ctx, "interaction-sound.mp3")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = src.Open(ctx, "broken.mp3")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestHTTPSourceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	src, err := NewHTTPSource(url, nil, nil)
	require.NoError(t, err)
	assert.False(t, src.Probe(context.Background(), "ambient-sound.mp3"))
}

func TestNewHTTPSourceRejectsRelative(t *testing.T) {
	_, err := NewHTTPSource("public/", nil, nil)
	assert.Error(t, err)
	_, err = NewHTTPSource("://", nil, nil)
	assert.Error(t, err)
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ambient-sound.mp3"), []byte("ID3"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.mp3"), 0o755))

	src := DirSource{Dir: dir}
	ctx := context.Background()

	assert.True(t, src.Probe(ctx, "ambient-sound.mp3"))
	assert.False(t, src.Probe(ctx, "interaction-sound.mp3"))
	assert.False(t, src.Probe(ctx, "folder.mp3"))
	assert.False(t, src.Probe(ctx, "../ambient-sound.mp3"))

	rc, err := src.Open(ctx, "ambient-sound.mp3")
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	_, err = src.Open(ctx, "interaction-sound.mp3")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = src.Open(ctx, "/etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProbeAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "interaction-sound.mp3"), nil, 0o644))

	got := ProbeAll(context.Background(), DirSource{Dir: dir}, "ambient-sound.mp3", "interaction-sound.mp3")
	assert.Equal(t, map[string]bool{
		"ambient-sound.mp3":     false,
		"interaction-sound.mp3": true,
	}, got)
	assert.Empty(t, ProbeAll(context.Background(), DirSource{Dir: dir}))
}

func TestWatchReprobesOnCreate(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan map[string]bool, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, []string{"ambient-sound.mp3"}, func(m map[string]bool) {
			select {
			case changes <- m:
			default:
			}
		}, zaptest.NewLogger(t))
	}()

	// Unrelated files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ambient-sound.mp3"), []byte("ID3"), 0o644))
		select {
		case m := <-changes:
			assert.True(t, m["ambient-sound.mp3"])
			cancel()
			require.NoError(t, <-done)
			return
		case <-time.After(500 * time.Millisecond):
		case <-deadline:
			t.Fatal("no change reported")
		}
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), nil, func(map[string]bool) {}, nil)
	assert.Error(t, err)
}
