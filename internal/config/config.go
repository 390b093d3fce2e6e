package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	RootDirectory       string        `mapstructure:"root"`
	Quality             int           `mapstructure:"quality"`
	SupportedExtensions []string      `mapstructure:"supported_extensions"`
	FailOnError         bool          `mapstructure:"fail_on_error"`
	Logging             LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// flagKeys maps CLI flag names to their configuration keys.
var flagKeys = map[string]string{
	"root":          "root",
	"quality":       "quality",
	"fail-on-error": "fail_on_error",
	"log-level":     "logging.level",
	"log-file":      "logging.file_path",
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		RootDirectory:       "images",
		Quality:             80,
		SupportedExtensions: []string{".jpg", ".jpeg", ".png"},
		FailOnError:         false,
		Logging: LoggingConfig{
			Level:      "info",
			FilePath:   "",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   true,
		},
	}
}

// RegisterFlags adds the configuration flags to fs with defaults taken from DefaultConfig.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.String("root", d.RootDirectory, "root directory to scan recursively")
	fs.Int("quality", d.Quality, "quality passed to the WebP encoder for every converted file (0-100)")
	fs.Bool("fail-on-error", d.FailOnError, "exit non-zero if any file failed to convert")
	fs.String("log-level", d.Logging.Level, "log level (debug, info, warn, error)")
	fs.String("log-file", d.Logging.FilePath, "optional JSON log file with rotation")
}

// Load builds a Config from defaults and the flags in fs.
// Only flags are consulted: no config file and no environment variables.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("root", d.RootDirectory)
	v.SetDefault("quality", d.Quality)
	v.SetDefault("supported_extensions", d.SupportedExtensions)
	v.SetDefault("fail_on_error", d.FailOnError)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file_path", d.Logging.FilePath)
	v.SetDefault("logging.max_size", d.Logging.MaxSize)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age", d.Logging.MaxAge)
	v.SetDefault("logging.compress", d.Logging.Compress)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// The root is not checked here; a missing root is a traversal error.
	if c.RootDirectory == "" {
		return fmt.Errorf("root is required")
	}

	if c.Quality < 0 || c.Quality > 100 {
		return fmt.Errorf("invalid quality: %d (valid: 0-100)", c.Quality)
	}

	if len(c.SupportedExtensions) == 0 {
		return fmt.Errorf("supported_extensions must not be empty")
	}
	c.SupportedExtensions = normalizeExtensions(c.SupportedExtensions)

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}

	return nil
}

// IsSupportedExtension checks if the extension belongs to an eligible input file
func (c *Config) IsSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supportedExt := range c.SupportedExtensions {
		if ext == supportedExt {
			return true
		}
	}
	return false
}

func normalizeExtensions(extensions []string) []string {
	normalized := make([]string, len(extensions))
	for i, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[i] = ext
	}
	return normalized
}
