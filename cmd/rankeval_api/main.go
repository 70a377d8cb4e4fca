// Package main Rankeval API
// @title Rankeval API
// @version 1.0
// @description Retrieval effectiveness evaluation over TREC-style judgments and runs
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	_ "github.com/DjordjeVuckovic/rankeval/internal/api/docs"
	"github.com/DjordjeVuckovic/rankeval/internal/api/router"
	apiserver "github.com/DjordjeVuckovic/rankeval/internal/api/server"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/measure"
	"github.com/DjordjeVuckovic/rankeval/internal/storage/pg"
	pkgserver "github.com/DjordjeVuckovic/rankeval/pkg/server"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := apiserver.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		healthChecker pkgserver.HealthChecker = pkgserver.NewOkHealthChecker()
		routerOpts    []router.EvalRouterOption
		pool          *pg.ConnectionPool
	)

	s := apiserver.New(sCfg, nil)

	if sCfg.DatabaseURL != "" {
		pool, err = pg.NewConnectionPool(s.Context(), pg.PoolConfig{ConnStr: sCfg.DatabaseURL})
		if err != nil {
			slog.Error("Failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		healthChecker = pg.NewHealthChecker(pool)
		routerOpts = append(routerOpts, router.WithRunStore(pg.NewEvalStore(pool)))
		slog.Info("Stored runs enabled")
	} else {
		slog.Info("DATABASE_URL not set, stored runs disabled")
	}

	s = s.WithHealthChecker(healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Rankeval API is running")
	})

	evalRouter := router.NewEvalRouter(s.Echo, measure.Default(), routerOpts...)
	evalRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	if pool != nil {
		pool.Close()
	}
	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
