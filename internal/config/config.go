package config

// Config holds runtime settings for loading startup parameters
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Params  ParamsConfig  `mapstructure:"params" yaml:"params"`
	Memory  MemoryConfig  `mapstructure:"memory" yaml:"memory"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// StorageConfig locates the parameters file
type StorageConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// ParamsConfig controls how the parameters file is read
type ParamsConfig struct {
	File             string `mapstructure:"file" yaml:"file"`
	KeepTrailingLine bool   `mapstructure:"keep_trailing_line" yaml:"keep_trailing_line"`
}

// MemoryConfig bounds allocations made while loading. Limit 0 is unlimited.
type MemoryConfig struct {
	Limit int64 `mapstructure:"limit" yaml:"limit"`
}

// LoggingConfig selects log level and format
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}
