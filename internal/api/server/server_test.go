package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticChecker bool

func (s staticChecker) Healthy(context.Context) bool {
	return bool(s)
}

func TestHealthChecks(t *testing.T) {
	tests := []struct {
		name    string
		healthy bool
		want    int
	}{
		{name: "healthy", healthy: true, want: http.StatusOK},
		{name: "unhealthy", healthy: false, want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Port: 8080, CorsOrigins: "*"}
			s := New(cfg, staticChecker(tt.healthy)).
				SetupMiddlewares().
				SetupErrorHandler().
				SetupHealthChecks("/health")

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			s.Echo.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestConfig(t *testing.T) {
	t.Run("origins", func(t *testing.T) {
		assert.Equal(t, []string{"*"}, (&Config{CorsOrigins: " , "}).Origins())
		assert.Equal(t, []string{"http://a", "http://b"}, (&Config{CorsOrigins: "http://a, http://b,"}).Origins())
	})

	t.Run("load from environment", func(t *testing.T) {
		t.Setenv("ENV_PATH", "does-not-exist.env")
		t.Setenv("APP_ENV", "test")
		t.Setenv("PORT", "9090")
		t.Setenv("USE_HTTP2", "true")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.True(t, cfg.UseHttp2)
		assert.Equal(t, ":9090", cfg.Addr())
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("ENV_PATH", "does-not-exist.env")
		t.Setenv("APP_ENV", "test")
		t.Setenv("PORT", "70000")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
