package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ORIGIN", "APP_ENV",
		"DB_HOST", "DB_PORT", "DB_USERNAME", "DB_PASSWORD", "DB_NAME",
		"LINE_NOTIFY_TOKEN", "LINE_NOTIFY_URL", "NOTIFY_TIMEOUT_SECONDS",
		"ROUND_START", "ROUND_END",
	} {
		// Setenv registers the restore; Unsetenv clears the value for
		// the test body so getEnv falls back to its default.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "root:@tcp(localhost:3306)/admit_planner?charset=utf8mb4&parseTime=True&loc=Local", cfg.Database.DSN)
	assert.Equal(t, "https://notify-api.line.me/api/notify", cfg.Notify.LineEndpoint)
	assert.Empty(t, cfg.Notify.LineToken)
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, "08:00", cfg.Rounds.Start)
	assert.Equal(t, "12:00", cfg.Rounds.End)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("LINE_NOTIFY_TOKEN", "tok")
	t.Setenv("NOTIFY_TIMEOUT_SECONDS", "3")
	t.Setenv("ROUND_START", "07:30")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Contains(t, cfg.Database.DSN, "root:s3cret@tcp(db.internal:3306)")
	assert.Equal(t, "tok", cfg.Notify.LineToken)
	assert.Equal(t, 3*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, "07:30", cfg.Rounds.Start)
}

func TestLoadConfigInvalidRoundsWindow(t *testing.T) {
	t.Setenv("ROUND_START", "25:99")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigInvalidNotifyTimeout(t *testing.T) {
	t.Setenv("NOTIFY_TIMEOUT_SECONDS", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}
