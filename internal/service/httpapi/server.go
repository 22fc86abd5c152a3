// Package httpapi exposes the course over a JSON/CSV/HTML HTTP API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/ilyadubrovsky/tracking-attendance/internal/config"
	"github.com/ilyadubrovsky/tracking-attendance/internal/service"
)

type svc struct {
	courseSvc service.Course
	backupSvc service.Backup
	reportSvc service.Report
	app       *echo.Echo
	cfg       config.HTTP
}

func NewService(
	courseSvc service.Course,
	backupSvc service.Backup,
	reportSvc service.Report,
	cfg config.HTTP,
) *svc {
	s := &svc{
		courseSvc: courseSvc,
		backupSvc: backupSvc,
		reportSvc: reportSvc,
		app:       echo.New(),
		cfg:       cfg,
	}
	s.setup()

	return s
}

func (s *svc) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.HTTPErrorHandler = httpErrorHandler

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.Recover())
	s.app.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("http request")
			return nil
		},
	}))

	s.routes()
}

func (s *svc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

// Start blocks until the server is stopped.
func (s *svc) Start() error {
	log.Info().Str("addr", s.cfg.Addr).Msg("start http server")

	err := s.app.Start(s.cfg.Addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("app.Start: %w", err)
	}
	return nil
}

func (s *svc) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.app.Shutdown(ctx); err != nil {
		return fmt.Errorf("app.Shutdown: %w", err)
	}
	return nil
}
