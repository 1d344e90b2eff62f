package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GovtJobsScanner/internal/domain"
)

const sampleYAML = `
logging:
  level: debug
pipeline:
  politenessDelay: 500ms
  partitionPrefix: staging
sources:
  - id: linkingsky
    disabled: true
storage:
  driver: postgres
  postgres:
    dsn: postgres://u:p@db:5432/jobs
scheduler:
  cronExpression: "30 7 * * *"
  timezone: UTC
`

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	t.Setenv(configPathEnv, path)
	t.Setenv(telegramTokenEnv, "tok")
	t.Setenv(telegramChatIDEnv, "chat")
	t.Setenv(serverAddrEnv, ":9090")
	t.Setenv(storageDriverEnv, "")
	t.Setenv(logLevelEnv, "")
	t.Setenv(databaseDSNEnv, "")

	cfg := Load()

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 500*time.Millisecond, cfg.Pipeline.PolitenessDelay)
	assert.Equal(t, "staging", cfg.Pipeline.PartitionPrefix)
	assert.Equal(t, 15*time.Second, cfg.HTTP.SourceTimeout, "defaults survive the merge")
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/jobs", cfg.Storage.Postgres.DSN)
	require.Len(t, cfg.Sources, 1)
	assert.True(t, cfg.Sources[0].Disabled)
	assert.Equal(t, "30 7 * * *", cfg.Scheduler.CronExpression)
	assert.Equal(t, time.UTC, cfg.Scheduler.Location())
	assert.True(t, cfg.Notifications.Telegram.Enabled())
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Len(t, cfg.Videos.Channels, 4)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	t.Setenv(configPathEnv, path)
	t.Setenv(storageDriverEnv, DriverMongo)
	t.Setenv(mongoURIEnv, "mongodb://localhost:27017")
	t.Setenv(mongoDatabaseEnv, "")

	cfg := Load()
	assert.Equal(t, DriverMongo, cfg.Storage.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.Mongo.URI)
	assert.NoError(t, cfg.Validate(domain.ModeCommit))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	assert.NoError(t, cfg.Validate(domain.ModePreview), "preview needs no credentials")

	err := cfg.Validate(domain.ModeCommit)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigMissing))

	cfg.Storage.Driver = DriverMemory
	assert.NoError(t, cfg.Validate(domain.ModeCommit))

	cfg.Storage.Driver = DriverPostgres
	assert.ErrorIs(t, cfg.Validate(domain.ModeCommit), domain.ErrConfigMissing)

	cfg.Storage.Driver = "sqlite"
	assert.ErrorIs(t, cfg.Validate(domain.ModeCommit), domain.ErrConfigMissing)

	cfg = defaultConfig()
	cfg.Sources = []SourceConfig{{ID: "unknown-site"}}
	assert.ErrorIs(t, cfg.Validate(domain.ModePreview), domain.ErrConfigMissing)
}
