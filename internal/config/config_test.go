package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "truescan", cfg.Service.Name)
	assert.Equal(t, 1234, cfg.Service.Port)
	assert.Equal(t, 3, cfg.Service.MaxTopics)
	assert.Equal(t, 5*time.Minute, cfg.Service.GenerateTimeout)
	assert.Equal(t, "https://api.brightdata.com", cfg.BrightData.BaseURL)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "JBFqnCBsd6RMkjVDRZzb", cfg.ElevenLabs.VoiceID)
	assert.Equal(t, "npx", cfg.Reddit.ServerCommand)
	assert.Equal(t, []string{"-y", "@brightdata/mcp"}, cfg.Reddit.ServerArgs)
	assert.Equal(t, "audio", cfg.Audio.Dir)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
service:
  port: 8080
  max_topics: 2
logging:
  level: debug
  format: console
audio:
  dir: /tmp/clips
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Service.Port)
	assert.Equal(t, 2, cfg.Service.MaxTopics)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "/tmp/clips", cfg.Audio.Dir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("TRUESCAN_PORT", "9999")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	path := writeConfig(t, `
service:
  port: 8080
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Service.Port)
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
}

func TestLoad_ScheduleRequiresTopics(t *testing.T) {
	path := writeConfig(t, `
schedule:
  cron: "0 7 * * *"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule.topics")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: shouting
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestGetConfigPath(t *testing.T) {
	assert.Equal(t, "config.yml", GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/truescan/config.yml")
	assert.Equal(t, "/etc/truescan/config.yml", GetConfigPath("config.yml"))
}
