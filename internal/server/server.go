// Package server is an in-memory implementation of the notes API, used for
// local development and as the backend of integration tests.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"scribble/internal/logs"
)

const shutdownTimeout = 5 * time.Second

// Server serves the notes API over HTTP.
type Server struct {
	echo    *echo.Echo
	store   *Store
	metrics *Metrics
	addr    string
}

// New creates a server listening on addr and backed by store. A nil store
// starts empty.
func New(addr string, store *Store) *Server {
	if store == nil {
		store = NewStore()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		store:   store,
		metrics: NewMetrics(store),
		addr:    addr,
	}
	s.registerRoutes()
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Store returns the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logs.Logger.Info("Starting server", "addr", s.addr)
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logs.Logger.Info("Shutting down server")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return <-errCh
}

func (s *Server) registerRoutes() {
	s.echo.Use(requestLogger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))
	s.echo.Use(s.metrics.Middleware())
	s.echo.Use(errorMiddleware())

	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	s.echo.GET("/api/notes", s.handleListNotes)
	s.echo.POST("/api/notes", s.handleCreateNote)
	s.echo.DELETE("/api/notes/:id", s.handleDeleteNote)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			logs.Logger.Info("Request", attrs...)
			return nil
		},
	})
}
