package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// PathVar overrides the .env location.
const PathVar = "ENV_PATH"

// LoadDotEnv loads environment variables from a .env file. The file is
// required only when appEnv is "local" or empty; elsewhere a missing file is
// skipped. Variables already set in the process environment win.
func LoadDotEnv(appEnv string, defaultPath string) error {
	envPath := os.Getenv(PathVar)
	if envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	if err := godotenv.Load(envPath); err != nil {
		if appEnv == "local" || appEnv == "" {
			return err
		}
		slog.Debug("Skipping .env ...", "path", envPath)
	}

	return nil
}
