// Package server is the small HTTP surface next to the window: the static
// health document and the optional sound assets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Jay-Lokhande/lazmy/internal/config"
	"github.com/Jay-Lokhande/lazmy/internal/logging"
)

const (
	healthCacheControl = "public, max-age=60"
	timestampLayout    = "2006-01-02T15:04:05.000Z07:00"

	defaultShutdownTimeout = 2 * time.Second
)

const notFoundPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>404: Not Found</title></head>
<body style="min-height:100vh;margin:0;display:flex;align-items:center;justify-content:center;background:black;color:white;text-align:center;padding:2rem">
<div>
<h1 style="font-size:2rem;margin-bottom:0.5rem">404: Not Found</h1>
<p>Sorry, the page you’re looking for doesn’t exist.</p>
</div>
</body>
</html>
`

// Health is the /health document.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type Server struct {
	e               *echo.Echo
	addr            string
	shutdownTimeout time.Duration
	log             *zap.Logger
	health          []byte
}

type Option func(*Server)

// WithClock fixes the time stamped into /health.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.health = renderHealth(now()) }
}

// New builds the routes. The health body is rendered here, once, and
// served unchanged for the life of the process.
func New(cfg config.ServerConfig, log *zap.Logger, opts ...Option) *Server {
	s := &Server{
		addr:            cfg.Addr,
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logging.OrNop(log),
		health:          renderHealth(time.Now()),
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = defaultShutdownTimeout
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				s.log.Debug("request error", append(fields, zap.Error(v.Error))...)
				return nil
			}
			s.log.Debug("request", fields...)
			return nil
		},
	}))
	if cfg.AssetsDir != "" {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{Root: cfg.AssetsDir}))
	}

	e.Match([]string{http.MethodGet, http.MethodHead}, "/health", s.handleHealth)

	s.e = e
	return s
}

func renderHealth(now time.Time) []byte {
	body, err := json.Marshal(Health{Status: "ok", Timestamp: now.UTC().Format(timestampLayout)})
	if err != nil {
		panic(err)
	}
	return body
}

func (s *Server) handleHealth(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, healthCacheControl)
	return c.Blob(http.StatusOK, "application/json; charset=utf-8", s.health)
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusNotFound {
		if herr := c.HTML(http.StatusNotFound, notFoundPage); herr != nil {
			s.log.Debug("failed to write not found page", zap.Error(herr))
		}
		return
	}
	s.e.DefaultHTTPErrorHandler(err, c)
}

// Handler exposes the routes for tests and embedding.
func (s *Server) Handler() http.Handler { return s.e }

// Run listens on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.e.Listener = ln
	s.log.Info("serving", zap.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.e.Start("")
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}
