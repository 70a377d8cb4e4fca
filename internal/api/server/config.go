package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v10"

	dotenv "github.com/DjordjeVuckovic/rankeval/pkg/config/env"
	"github.com/DjordjeVuckovic/rankeval/pkg/utils"
)

const DefaultEnvPath = "cmd/rankeval_api/.env"

type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	UseHttp2    bool   `env:"USE_HTTP2" envDefault:"false"`
	CorsOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
	// BodyLimit caps request bodies, e.g. "32M". Qrels and runs are sent inline.
	BodyLimit   string `env:"BODY_LIMIT" envDefault:"32M"`
	DatabaseURL string `env:"DATABASE_URL"`
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
}

func LoadConfig() (*Config, error) {
	if err := dotenv.LoadDotEnv(os.Getenv("APP_ENV"), DefaultEnvPath); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := validatePort(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	return cfg, nil
}

// Origins returns the configured CORS origins, "*" when none are set.
func (c *Config) Origins() []string {
	origins := utils.SplitTrim(c.CorsOrigins, ",")
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
