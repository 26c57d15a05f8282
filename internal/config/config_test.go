package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const minimalConfig = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  user: "gamerent"
  password: "pw"
  database: "gamerent"
  ssl_mode: "disable"
jwt:
  secret: "test-secret-that-is-long-enough-0"
storage:
  upload_dir: "/tmp/uploads"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("DefaultsApplied", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, minimalConfig))
		assert.NoError(t, err)
		assert.Equal(t, "0 */2 * * * *", cfg.Scheduler.SweepSpec)
		assert.Equal(t, 5, cfg.Scheduler.WarningWindowMinutes)
		assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
		assert.Equal(t, int64(10), cfg.Storage.MaxFileSize)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load(writeConfig(t, minimalConfig))
		assert.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("ShortSecretRejected", func(t *testing.T) {
		bad := minimalConfig
		cfg := writeConfig(t, bad)
		t.Setenv("JWT_SECRET", "short")

		_, err := Load(cfg)
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestGetDatabaseConnectionString(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	assert.NoError(t, err)
	assert.Equal(t,
		"postgres://gamerent:pw@localhost:5432/gamerent?sslmode=disable",
		cfg.GetDatabaseConnectionString())
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
}
