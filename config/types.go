package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	HackCheck HackCheckConfig `mapstructure:"hackcheck"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// HackCheckConfig holds HackCheck API connection details
type HackCheckConfig struct {
	APIKey      string        `mapstructure:"api_key" validate:"required,ne=your-api-key-here"`
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Concurrency int           `mapstructure:"concurrency" validate:"gte=1,lte=50"`
}

// FilterConfig contains named result filter expressions.
// Preset names are lower-cased by the config loader.
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets" validate:"dive,keys,required,endkeys,required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"loglevel"`
	Format     string `mapstructure:"format" validate:"oneof=console json"`
	Color      bool   `mapstructure:"color"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}
