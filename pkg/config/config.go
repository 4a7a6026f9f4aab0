// Package config loads yartl settings from yartl.yaml, YARTL_* environment
// variables and command line flags through viper.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/neurodesk/yartl/pkg/validator"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "YARTL"
	ConfigName = "yartl"

	DefaultSuffix   = "_yartle_out"
	DefaultDebounce = 200 * time.Millisecond
)

type Config struct {
	TemplateDir string       `mapstructure:"template_dir"`
	CacheDir    string       `mapstructure:"cache_dir"`
	Output      OutputConfig `mapstructure:"output"`
	Log         LogConfig    `mapstructure:"log"`
	Watch       WatchConfig  `mapstructure:"watch"`
}

type OutputConfig struct {
	Suffix string `mapstructure:"suffix"`
	Stdout bool   `mapstructure:"stdout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Defaults registers default values on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("template_dir", "")
	v.SetDefault("cache_dir", filepath.Join(".yartl", "cache"))
	v.SetDefault("output.suffix", DefaultSuffix)
	v.SetDefault("output.stdout", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("watch.debounce", DefaultDebounce)
}

// Setup points v at yartl.yaml in the working directory (or at file when
// set) and enables YARTL_ environment overrides. A missing config file is
// not an error.
func Setup(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(ConfigName)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && file == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	slog.Debug("using config file", "path", v.ConfigFileUsed())
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

func (c *Config) Validate() error {
	return validator.All(
		validator.NotEmpty(c.Output.Suffix, "output.suffix"),
		validator.MatchesAllowed(strings.ToLower(c.Log.Level), logLevels, "log.level"),
		validator.MatchesAllowed(strings.ToLower(c.Log.Format), logFormats, "log.format"),
		validator.Positive(int64(c.Watch.Debounce), "watch.debounce"),
		noSeparator(c.Output.Suffix),
	)
}

func noSeparator(suffix string) error {
	if strings.ContainsAny(suffix, `/\`) {
		return fmt.Errorf("output.suffix must not contain a path separator: %q", suffix)
	}
	return nil
}

// OutputPath returns where a rendering of templatePath is written:
// <dir>/<stem><suffix><ext>, so page.html becomes page_yartle_out.html.
func (c *Config) OutputPath(templatePath string) string {
	dir := filepath.Dir(templatePath)
	base := filepath.Base(templatePath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		// Dotfiles like ".env" have no stem.
		stem, ext = base, ""
	}
	return filepath.Join(dir, stem+c.Output.Suffix+ext)
}

// LogLevel maps the configured level name to a slog level.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
