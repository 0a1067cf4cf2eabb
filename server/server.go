package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coriolis-data/newsvec/index"
	"github.com/coriolis-data/newsvec/ingestion"
	"github.com/coriolis-data/newsvec/search"
)

// Server wires the searcher and ingestion pipeline into an HTTP API.
type Server struct {
	echo     *echo.Echo
	searcher *search.Searcher
	pipeline *ingestion.Pipeline
	store    index.Store
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "server")
		return nil
	}
}

// NewServer creates the HTTP server. The searcher handles /search, the
// pipeline handles /ingest, and the store backs the readiness check.
func NewServer(searcher *search.Searcher, pipeline *ingestion.Pipeline, store index.Store, opts ...Option) (*Server, error) {
	if searcher == nil {
		return nil, errors.New("searcher required")
	}
	if pipeline == nil {
		return nil, errors.New("ingestion pipeline required")
	}
	if store == nil {
		return nil, errors.New("index store required")
	}

	s := &Server{
		searcher: searcher,
		pipeline: pipeline,
		store:    store,
		logger:   slog.Default().With("component", "server"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = s.errorHandler

	e.POST("/search", s.handleSearch)
	e.POST("/ingest", s.handleIngest)
	e.GET("/healthz", s.handleHealthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo = e
	return s, nil
}

// errorHandler renders every error as {"error": msg} with a status code
// derived from the pipeline's typed errors.
func (s *Server) errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := err.Error()

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if httpErr.Message != nil {
			msg = fmt.Sprint(httpErr.Message)
		}
	case errors.Is(err, search.ErrEmptyQuery):
		code = http.StatusBadRequest
	case errors.Is(err, search.ErrEmbeddingUnavailable),
		errors.Is(err, search.ErrIndexUnavailable),
		errors.Is(err, index.ErrUnavailable):
		code = http.StatusServiceUnavailable
	}

	req := c.Request()
	s.logger.Error("request failed", "status", code, "method", req.Method, "path", req.URL.Path, "err", err)
	if !c.Response().Committed {
		_ = c.JSON(code, map[string]any{"error": msg})
	}
}

// Start begins serving on addr and blocks until shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
