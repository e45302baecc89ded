package config

import (
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/computerscienceiscool/ams-params/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	v := NewViper(afero.NewMemMapFs())
	require.NoError(t, ReadInConfig(v))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `storage:
  dir: /etc/ams
params:
  file: startup.txt
  keep_trailing_line: true
memory:
  limit: 4096
logging:
  level: DEBUG
  format: json
`
	require.NoError(t, afero.WriteFile(fs, "/etc/ams/"+DefaultConfigFile, []byte(content), 0644))

	v := NewViper(fs)
	v.SetConfigFile("/etc/ams/" + DefaultConfigFile)
	require.NoError(t, ReadInConfig(v))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/etc/ams", cfg.Storage.Dir)
	assert.Equal(t, "startup.txt", cfg.Params.File)
	assert.True(t, cfg.Params.KeepTrailingLine)
	assert.Equal(t, int64(4096), cfg.Memory.Limit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestReadInConfigMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/"+DefaultConfigFile, []byte("storage: [unclosed"), 0644))

	v := NewViper(fs)
	v.SetConfigFile("/cfg/" + DefaultConfigFile)
	assert.Error(t, ReadInConfig(v))
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("AMS_STORAGE_DIR", "/from/env")
	t.Setenv("AMS_MEMORY_LIMIT", "2048")

	v := NewViper(afero.NewMemMapFs())
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Storage.Dir)
	assert.Equal(t, int64(2048), cfg.Memory.Limit)
}

func TestLoadOverrides(t *testing.T) {
	v := NewViper(afero.NewMemMapFs())
	v.Set("params.file", "other.txt")
	v.Set("memory.limit", 0)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "other.txt", cfg.Params.File)
	assert.Equal(t, int64(0), cfg.Memory.Limit)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{name: "defaults are valid", modify: func(c *Config) {}},
		{name: "empty storage dir", modify: func(c *Config) { c.Storage.Dir = "" }, field: "storage.dir"},
		{name: "empty file name", modify: func(c *Config) { c.Params.File = "" }, field: "params.file"},
		{name: "file name with path", modify: func(c *Config) { c.Params.File = "../ams_params.txt" }, field: "params.file"},
		{name: "negative memory limit", modify: func(c *Config) { c.Memory.Limit = -1 }, field: "memory.limit"},
		{name: "unknown log level", modify: func(c *Config) { c.Logging.Level = "loud" }, field: "logging.level"},
		{name: "unknown log format", modify: func(c *Config) { c.Logging.Format = "xml" }, field: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidArguments))

			var valErr *apperrors.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.field, valErr.Field)
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	origLevel := log.GetLevel()
	defer log.SetLevel(origLevel)

	require.NoError(t, ConfigureLogging(LoggingConfig{Level: "warn", Format: "json"}))
	assert.Equal(t, log.WarnLevel, log.GetLevel())

	require.NoError(t, ConfigureLogging(LoggingConfig{Level: "info", Format: "text"}))
	assert.Equal(t, log.InfoLevel, log.GetLevel())

	assert.Error(t, ConfigureLogging(LoggingConfig{Level: "nope", Format: "text"}))
}
