package config

import "github.com/spf13/viper"

// Default values
const (
	DefaultConfigName  = "ams-params.config"
	DefaultConfigFile  = DefaultConfigName + ".yaml"
	DefaultParamsFile  = "ams_params.txt"
	DefaultMemoryLimit = 1 * 1024 * 1024 // 1MB - file buffer plus line copies, so files up to ~512KB
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	EnvPrefix          = "AMS"
)

// SetDefaults sets all default configuration values in v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.dir", ".")

	v.SetDefault("params.file", DefaultParamsFile)
	v.SetDefault("params.keep_trailing_line", false)

	v.SetDefault("memory.limit", DefaultMemoryLimit)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Dir: "."},
		Params:  ParamsConfig{File: DefaultParamsFile},
		Memory:  MemoryConfig{Limit: DefaultMemoryLimit},
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}
