package config

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	apperrors "github.com/computerscienceiscool/ams-params/internal/errors"
)

// NewViper returns a viper instance with defaults, config file search
// paths and environment binding set up. fs may be nil for the OS file system.
func NewViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	if fs != nil {
		v.SetFs(fs)
	}

	SetDefaults(v)

	v.SetConfigName(DefaultConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// ReadInConfig reads the config file if one is present. A missing file is
// not an error; defaults, environment and flags still apply.
func ReadInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	log.WithField("file", v.ConfigFileUsed()).Debug("using config file")
	return nil
}

// Load builds and validates a Config from v
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			Dir: v.GetString("storage.dir"),
		},
		Params: ParamsConfig{
			File:             v.GetString("params.file"),
			KeepTrailingLine: v.GetBool("params.keep_trailing_line"),
		},
		Memory: MemoryConfig{
			Limit: v.GetInt64("memory.limit"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("logging.level")),
			Format: strings.ToLower(v.GetString("logging.format")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value
func (c *Config) Validate() error {
	if c.Storage.Dir == "" {
		return &apperrors.ValidationError{Field: "storage.dir", Value: c.Storage.Dir, Err: apperrors.ErrInvalidArguments}
	}
	if c.Params.File == "" || strings.ContainsAny(c.Params.File, "/\\") {
		return &apperrors.ValidationError{Field: "params.file", Value: c.Params.File, Err: apperrors.ErrInvalidArguments}
	}
	if c.Memory.Limit < 0 {
		return &apperrors.ValidationError{Field: "memory.limit", Value: c.Memory.Limit, Err: apperrors.ErrInvalidArguments}
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return &apperrors.ValidationError{Field: "logging.level", Value: c.Logging.Level, Err: apperrors.ErrInvalidArguments}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &apperrors.ValidationError{Field: "logging.format", Value: c.Logging.Format, Err: apperrors.ErrInvalidArguments}
	}
	return nil
}

// ConfigureLogging applies the logging section to the standard logrus logger
func ConfigureLogging(c LoggingConfig) error {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	switch c.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
