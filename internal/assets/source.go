// Package assets finds and opens the optional sound files. A missing asset
// is never an error for callers: probes just report false.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Jay-Lokhande/lazmy/internal/logging"
)

// ErrNotFound is returned by Open for an asset that does not exist.
var ErrNotFound = errors.New("asset not found")

// Source is a place assets are served from.
type Source interface {
	// Probe reports whether name can be opened. Failures count as absent.
	Probe(ctx context.Context, name string) bool
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// HTTPSource probes with HEAD and opens with GET relative to a base URL.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
	log    *zap.Logger
}

// NewHTTPSource returns a source rooted at base. A nil client means
// http.DefaultClient.
func NewHTTPSource(base string, client *http.Client, log *zap.Logger) (*HTTPSource, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid assets url %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid assets url %q: scheme and host required", base)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, client: client, log: logging.OrNop(log)}, nil
}

func (s *HTTPSource) url(name string) string {
	u := *s.base
	u.Path = path.Join("/", u.Path, name)
	return u.String()
}

func (s *HTTPSource) do(ctx context.Context, method, name string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.url(name), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, name, err)
	}
	return resp, nil
}

func (s *HTTPSource) Probe(ctx context.Context, name string) bool {
	resp, err := s.do(ctx, http.MethodHead, name)
	if err != nil {
		s.log.Debug("asset probe failed", zap.String("asset", name), zap.Error(err))
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	resp, err := s.do(ctx, http.MethodGet, name)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", name, resp.Status)
	}
	return resp.Body, nil
}

func (s *HTTPSource) String() string { return s.base.String() }

// DirSource serves assets from a local directory.
type DirSource struct {
	Dir string
}

func (s DirSource) resolve(name string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return filepath.Join(s.Dir, name), nil
}

func (s DirSource) Probe(_ context.Context, name string) bool {
	p, err := s.resolve(name)
	if err != nil {
		return false
	}
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}

func (s DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open asset: %w", err)
	}
	return f, nil
}

func (s DirSource) String() string { return s.Dir }

// ProbeAll probes every name concurrently and reports which exist.
func ProbeAll(ctx context.Context, src Source, names ...string) map[string]bool {
	var mu sync.Mutex
	found := make(map[string]bool, len(names))

	eg, egCtx := errgroup.WithContext(ctx)
	for _, name := range names {
		eg.Go(func() error {
			ok := src.Probe(egCtx, name)
			mu.Lock()
			found[name] = ok
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
	return found
}
