package delivery_http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"pubhub-publication-service/internal/config"
	"pubhub-publication-service/internal/logger"
	"pubhub-publication-service/internal/metrics"
	"pubhub-publication-service/internal/middleware"
)

// RouteRegistrar mounts a group of procedure handlers on the public and
// authenticated route groups.
type RouteRegistrar interface {
	RegisterRoutes(public *echo.Group, protected *echo.Group)
}

type Server struct {
	echo    *echo.Echo
	address string
	log     *logger.Logger
}

func NewServer(
	cfg config.HTTPServer,
	authenticator middleware.Authenticator,
	provider metrics.MetricsProvider,
	log *logger.Logger,
	registrars ...RouteRegistrar,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log, provider))
	e.Use(middleware.Auth(authenticator, log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	protected := e.Group("/api/v1", middleware.RequireAuth())
	for _, r := range registrars {
		r.RegisterRoutes(api, protected)
	}

	return &Server{
		echo:    e,
		address: fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		log:     log,
	}
}

func (s *Server) Run() error {
	s.log.Info("HTTP server listening", slog.String("address", s.address))
	if err := s.echo.Start(s.address); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

func errorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			message = fmt.Sprintf("%v", he.Message)
		}

		if code >= http.StatusInternalServerError {
			log.Error("Request failed",
				slog.String("path", c.Request().URL.Path),
				slog.String("error", err.Error()))
		}

		if respErr := c.JSON(code, map[string]string{"error": message}); respErr != nil {
			log.Error("Failed to write error response", slog.String("error", respErr.Error()))
		}
	}
}
