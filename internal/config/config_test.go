package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 30*time.Second, cfg.ReminderInterval)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_KEY", "secret")
	t.Setenv("REMINDER_INTERVAL", "1m")
	t.Setenv("SENDGRID_API_KEY", "sg")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "secret", cfg.AI.APIKey)
	assert.Equal(t, time.Minute, cfg.ReminderInterval)
	assert.Equal(t, "sg", cfg.Mail.SendGridKey)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_PATH=/tmp/nexus-test.db\nLOG_FORMAT=json\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DB_PATH")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/nexus-test.db", cfg.DBPath)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "70000")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
