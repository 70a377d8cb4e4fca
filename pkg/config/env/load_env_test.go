package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("RANKEVAL_TEST_VALUE=from-file\n"), 0644))

	t.Run("default path", func(t *testing.T) {
		t.Setenv(PathVar, "")
		t.Setenv("RANKEVAL_TEST_VALUE", "")
		require.NoError(t, os.Unsetenv("RANKEVAL_TEST_VALUE"))

		require.NoError(t, LoadDotEnv("local", path))
		assert.Equal(t, "from-file", os.Getenv("RANKEVAL_TEST_VALUE"))
	})

	t.Run("process environment wins", func(t *testing.T) {
		t.Setenv(PathVar, path)
		t.Setenv("RANKEVAL_TEST_VALUE", "from-env")

		require.NoError(t, LoadDotEnv("local", "unused"))
		assert.Equal(t, "from-env", os.Getenv("RANKEVAL_TEST_VALUE"))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Setenv(PathVar, filepath.Join(dir, "missing.env"))

		assert.Error(t, LoadDotEnv("local", ""))
		assert.NoError(t, LoadDotEnv("production", ""))
	})
}
