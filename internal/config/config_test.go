package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".charfang.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, DefaultGroupBy, cfg.Stats.GroupBy)
	assert.Equal(t, DefaultFormat, cfg.Stats.Format)
	assert.Equal(t, DefaultLimit, cfg.Stats.Limit)
	assert.False(t, cfg.Stats.IncludeMerges)
	assert.Equal(t, DefaultProgress, cfg.Stats.Progress)
	assert.False(t, cfg.Log.JSON)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, DefaultCacheDir, cfg.Cache.Dir)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Empty(t, cfg.Metrics.Listen)
}

func TestLoadConfigFileOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
stats:
  group_by: email
  include_merges: true
  limit: 100
  languages: [Go, Python]
  format: table
cache:
  enabled: false
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "email", cfg.Stats.GroupBy)
	assert.True(t, cfg.Stats.IncludeMerges)
	assert.Equal(t, 100, cfg.Stats.Limit)
	assert.Equal(t, []string{"Go", "Python"}, cfg.Stats.Languages)
	assert.Equal(t, "table", cfg.Stats.Format)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CHARFANG_STATS_GROUP_BY", "email")

	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "email", cfg.Stats.GroupBy)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(writeConfig(t, "statz:\n  group_by: name\n"))
	require.ErrorIs(t, err, ErrSchemaViolation)
}

func TestLoadConfigRejectsWrongTypes(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(writeConfig(t, "stats:\n  limit: many\n"))
	require.ErrorIs(t, err, ErrSchemaViolation)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() Config {
		return Config{
			Stats: StatsConfig{GroupBy: "name", Format: "csv"},
			Log:   LogConfig{Level: "info"},
		}
	}

	cfg := base()
	require.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Stats.GroupBy = "login"
	require.ErrorIs(t, cfg.Validate(), ErrInvalidGroupBy)

	cfg = base()
	cfg.Stats.Limit = -1
	require.ErrorIs(t, cfg.Validate(), ErrInvalidLimit)

	cfg = base()
	cfg.Stats.Progress = -5
	require.ErrorIs(t, cfg.Validate(), ErrInvalidProgress)

	cfg = base()
	cfg.Stats.Format = "xml"
	require.ErrorIs(t, cfg.Validate(), ErrInvalidFormat)

	cfg = base()
	cfg.Log.Level = "trace"
	require.ErrorIs(t, cfg.Validate(), ErrInvalidLogLevel)
}
