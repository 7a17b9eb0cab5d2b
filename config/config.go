// Package config resolves the report generator's settings from flags,
// environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/lukemcguire/lycheereport/result"
)

// EnvPrefix namespaces environment overrides, e.g. LYCHEE_REPORT_LOG_PATH.
const EnvPrefix = "LYCHEE_REPORT"

// ErrInvalidConfig is returned when a setting has an unsupported value.
var ErrInvalidConfig = errors.New("invalid configuration")

// Keys shared between flag binding and the config file.
const (
	KeyErrorCodes         = "error_codes"
	KeyVerbose            = "verbose"
	KeyIgnoreTimeouts     = "ignore_timeouts"
	KeyIgnoreNoCodeNetErr = "ignore_nocode_net_err"
	KeyLogPath            = "log_path"
	KeySummaryPath        = "summary_path"
	KeyJSONOut            = "json_out"
	KeyCSVOut             = "csv_out"
	KeyInteractive        = "interactive"
)

// Config holds every setting for one run.
type Config struct {
	ErrorCodes         []string     `mapstructure:"error_codes" yaml:"error_codes"`
	Verbose            bool         `mapstructure:"verbose" yaml:"verbose"`
	IgnoreTimeouts     bool         `mapstructure:"ignore_timeouts" yaml:"ignore_timeouts"`
	IgnoreNoCodeNetErr bool         `mapstructure:"ignore_nocode_net_err" yaml:"ignore_nocode_net_err"`
	LogPath            string       `mapstructure:"log_path" yaml:"log_path"`
	SummaryPath        string       `mapstructure:"summary_path" yaml:"summary_path"`
	JSONOut            string       `mapstructure:"json_out" yaml:"json_out"`
	CSVOut             string       `mapstructure:"csv_out" yaml:"csv_out"`
	Interactive        bool         `mapstructure:"interactive" yaml:"interactive"`
	Logger             LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level      string      `mapstructure:"level" yaml:"level"`
	Format     string      `mapstructure:"format" yaml:"format"`
	LogFile    string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int         `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool        `mapstructure:"compress" yaml:"compress"`
	Colors     ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the color used for each log level.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	// every key needs a default so AutomaticEnv can override it on Unmarshal
	v.SetDefault(KeyErrorCodes, []string{})
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyIgnoreTimeouts, false)
	v.SetDefault(KeyIgnoreNoCodeNetErr, false)
	v.SetDefault(KeyJSONOut, "")
	v.SetDefault(KeyCSVOut, "")
	v.SetDefault(KeyInteractive, false)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.compress", false)
	v.SetDefault(KeyLogPath, "log.json")
	v.SetDefault(KeySummaryPath, result.DefaultSummaryPath)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
}

// ReadInConfig wires environment overrides and reads the config file, if any.
// A missing default config file is not an error; a missing explicit one is.
func ReadInConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("lychee-report")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Verbose {
		cfg.Logger.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that have a fixed set of values.
func (c Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logger.format must be 'console' or 'json', got %q", ErrInvalidConfig, c.Logger.Format)
	}
	if c.LogPath == "" {
		return fmt.Errorf("%w: log_path is empty", ErrInvalidConfig)
	}
	if c.SummaryPath == "" {
		return fmt.Errorf("%w: summary_path is empty", ErrInvalidConfig)
	}
	return nil
}
