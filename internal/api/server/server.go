package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	mw "github.com/DjordjeVuckovic/rankeval/pkg/middleware"
	pkgserver "github.com/DjordjeVuckovic/rankeval/pkg/server"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
	HealthCheckTimeout      = 2 * time.Second
)

type Server struct {
	Echo *echo.Echo

	cfg *Config
	hc  pkgserver.HealthChecker

	ctx      context.Context
	stop     context.CancelFunc
	shutdown chan struct{}
}

func New(cfg *Config, hc pkgserver.HealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.DisableHTTP2 = !cfg.UseHttp2

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	return &Server{
		Echo:     e,
		cfg:      cfg,
		hc:       hc,
		ctx:      ctx,
		stop:     stop,
		shutdown: make(chan struct{}),
	}
}

// WithHealthChecker replaces the checker behind the health endpoint. Call it
// before SetupHealthChecks.
func (s *Server) WithHealthChecker(hc pkgserver.HealthChecker) *Server {
	s.hc = hc
	return s
}

func (s *Server) SetupMiddlewares() *Server {
	s.Echo.Use(mw.Logger(mw.WithSkipper(func(c echo.Context) bool {
		return c.Path() == "/health"
	})))
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.Origins(),
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
	if s.cfg.BodyLimit != "" {
		s.Echo.Use(middleware.BodyLimit(s.cfg.BodyLimit))
	}
	return s
}

func (s *Server) SetupErrorHandler() *Server {
	s.Echo.HTTPErrorHandler = apperr.GlobalErrorHandler()
	return s
}

func (s *Server) SetupHealthChecks(path string) *Server {
	s.Echo.GET(path, func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), HealthCheckTimeout)
		defer cancel()

		if s.hc != nil && !s.hc.Healthy(ctx) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return s
}

func (s *Server) SetupOpenApi(path string) *Server {
	s.Echo.GET(path, echoSwagger.WrapHandler)
	return s
}

// Context is cancelled when the process receives an interrupt.
func (s *Server) Context() context.Context {
	return s.ctx
}

// ShutdownSignal is closed once the server begins shutting down.
func (s *Server) ShutdownSignal() <-chan struct{} {
	return s.shutdown
}

func (s *Server) Start() error {
	defer s.stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", s.cfg.Addr(), "env", s.cfg.AppEnv)
		if err := s.Echo.Start(s.cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-s.ctx.Done():
	}

	close(s.shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := s.Echo.Shutdown(ctx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
