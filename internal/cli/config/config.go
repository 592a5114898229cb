package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the base name of the configuration file (flute.yml or flute.yaml).
const FileName = "flute"

// EnvPrefix prefixes environment overrides, e.g. FLUTE_SERVER_PORT.
const EnvPrefix = "FLUTE"

// Config represents the flute CLI configuration
type Config struct {
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Server   ServerConfig   `mapstructure:"server"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
}

// SnapshotConfig locates the snapshot the CLI inspects and serves
type SnapshotConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig represents introspection server configuration
type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	Host      string `mapstructure:"host"`
	APIPrefix string `mapstructure:"api_prefix"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// OutputConfig represents terminal output configuration
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

var (
	validFormats   = []string{"table", "json"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Load loads the configuration from flute.yml or flute.yaml in the current
// directory, falling back to defaults when neither exists.
func Load() (*Config, error) {
	return LoadDir(".")
}

// LoadDir loads flute.yml or flute.yaml from dir, falling back to defaults
// when neither exists. A relative snapshot path is resolved against dir.
func LoadDir(dir string) (*Config, error) {
	cfg, err := load("", dir)
	if err != nil {
		return nil, err
	}
	if dir != "." && !filepath.IsAbs(cfg.Snapshot.Path) {
		cfg.Snapshot.Path = filepath.Join(dir, cfg.Snapshot.Path)
	}
	return cfg, nil
}

// LoadFile loads the configuration from path. An empty path searches the
// current directory.
func LoadFile(path string) (*Config, error) {
	return load(path, ".")
}

func load(path, dir string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("snapshot.path", "build/flute.snapshot.json")
	v.SetDefault("server.port", 4242)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.api_prefix", "")
	v.SetDefault("output.format", "table")
	v.SetDefault("output.no_color", false)
	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// FindRoot walks up from the working directory to the first directory
// holding a flute.yml or flute.yaml.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, ext := range []string{".yml", ".yaml"} {
			if _, err := os.Stat(filepath.Join(dir, FileName+ext)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s.yml found in this directory or any parent", FileName)
		}
		dir = parent
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Server.APIPrefix != "" {
		if !strings.HasPrefix(cfg.Server.APIPrefix, "/") {
			return fmt.Errorf("server.api_prefix must start with '/', got: %s", cfg.Server.APIPrefix)
		}
		if strings.HasSuffix(cfg.Server.APIPrefix, "/") {
			return fmt.Errorf("server.api_prefix must not end with '/', got: %s", cfg.Server.APIPrefix)
		}
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got: %d", cfg.Server.Port)
	}
	if !oneOf(cfg.Output.Format, validFormats) {
		return fmt.Errorf("output.format must be one of %s, got: %s", strings.Join(validFormats, ", "), cfg.Output.Format)
	}
	if !oneOf(cfg.Log.Level, validLogLevels) {
		return fmt.Errorf("log.level must be one of %s, got: %s", strings.Join(validLogLevels, ", "), cfg.Log.Level)
	}
	return nil
}

func oneOf(s string, allowed []string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
