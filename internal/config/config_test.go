package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("既定値", func(t *testing.T) {
		for _, k := range []string{"GESTURE_SERVER_URL", "GESTURE_API_KEY", "GESTURE_MODEL", "GESTURE_HTTP_TIMEOUT", "GESTURE_OUTPUT_DIR", "GESTURE_ANALYZE_INTERVAL"} {
			t.Setenv(k, "")
			_ = os.Unsetenv(k)
		}
		cfg := LoadConfig()
		assert.Equal(t, DefaultServerURL, cfg.ServerURL)
		assert.Equal(t, DefaultModel, cfg.Model)
		assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
		assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
		assert.Equal(t, DefaultAnalyzeInterval, cfg.AnalyzeInterval)
		assert.Equal(t, 1, cfg.Options.BatchSize)
	})

	t.Run("環境変数で上書き", func(t *testing.T) {
		t.Setenv("GESTURE_SERVER_URL", "https://studio.example.com")
		t.Setenv("GESTURE_API_KEY", "secret-key")
		t.Setenv("GESTURE_HTTP_TIMEOUT", "5s")
		t.Setenv("GESTURE_ANALYZE_INTERVAL", "250ms")

		cfg := LoadConfig()
		assert.Equal(t, "https://studio.example.com", cfg.ServerURL)
		assert.Equal(t, "secret-key", cfg.APIKey)
		assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 250*time.Millisecond, cfg.AnalyzeInterval)
	})

	t.Run("不正な期間は既定値", func(t *testing.T) {
		t.Setenv("GESTURE_HTTP_TIMEOUT", "soon")
		assert.Equal(t, DefaultHTTPTimeout, LoadConfig().HTTPTimeout)
	})
}
