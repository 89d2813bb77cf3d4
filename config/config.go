package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "HACKCHECK"

// Load loads the configuration from file and environment.
// A missing config file is not an error when no explicit path was given,
// so the API key can come from HACKCHECK_API_KEY alone.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".hackcheck"))
		}
		v.AddConfigPath("/etc/hackcheck/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("hackcheck.api_key", "")
	v.SetDefault("hackcheck.base_url", "https://api.hackcheck.io")
	v.SetDefault("hackcheck.timeout", "30s")
	v.SetDefault("hackcheck.concurrency", 5)

	v.SetDefault("filter.presets", map[string]string{})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
}

// bindEnv maps HACKCHECK_* variables onto config keys. The API section is
// flattened so HACKCHECK_API_KEY works instead of HACKCHECK_HACKCHECK_API_KEY.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("hackcheck.api_key", EnvPrefix+"_API_KEY")
	_ = v.BindEnv("hackcheck.base_url", EnvPrefix+"_BASE_URL")
	_ = v.BindEnv("hackcheck.timeout", EnvPrefix+"_TIMEOUT")
	_ = v.BindEnv("hackcheck.concurrency", EnvPrefix+"_CONCURRENCY")
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		return name
	})

	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		return validLevels[strings.ToLower(fl.Field().String())]
	})

	return v
}

// validate checks if the configuration is valid and reports the first
// offending key by its config path
func validate(cfg *Config) error {
	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	key := configKey(fe.Namespace())

	switch fe.Tag() {
	case "required", "ne":
		return fmt.Errorf("%s must be set", key)
	case "loglevel":
		return fmt.Errorf("invalid logging level: %v", fe.Value())
	case "oneof":
		return fmt.Errorf("invalid %s: %v (must be one of: %s)", key, fe.Value(), fe.Param())
	default:
		return fmt.Errorf("invalid %s: %v", key, fe.Value())
	}
}

// configKey turns a validator namespace such as "Config.logging.level" into
// the dotted config key
func configKey(namespace string) string {
	_, key, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return key
}
