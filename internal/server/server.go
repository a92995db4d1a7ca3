// Package server exposes the dashboard over HTTP: the JSON API the
// embedded panel consumes, the Prometheus scrape endpoint, and the
// static page itself.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Options holds server configuration.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server wraps the Echo HTTP server.
type Server struct {
	echo *echo.Echo
	opts Options
}

// New creates the HTTP server and registers all routes.
func New(h *Handler, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = opts.ReadTimeout
	e.Server.WriteTimeout = opts.WriteTimeout

	// Metrics sit outside logging: requestLogging commits handler errors
	// via c.Error, so the status requestMetrics reads is the final one.
	e.Use(echomw.Recover())
	e.Use(requestMetrics())
	e.Use(requestLogging())

	h.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &Server{echo: e, opts: opts}
}

// Start starts the HTTP server without blocking.
func (s *Server) Start() {
	go func() {
		log.Info().Str("addr", s.opts.Addr).Msg("http server listening")
		if err := s.echo.Start(s.opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server error")
		}
	}()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return err
	}
	log.Info().Msg("http server stopped")
	return nil
}

// Echo returns the underlying Echo instance (tests).
func (s *Server) Echo() *echo.Echo { return s.echo }
