package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// ServerConfig contains HTTP server configuration for the dataset API
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/mhtidy.log"`
}

// PipelineConfig contains tidying pipeline configuration
type PipelineConfig struct {
	SourceDir string `yaml:"source_dir" envconfig:"SOURCE_DIR" default:"data/raw"`
	StoreDir  string `yaml:"store_dir" envconfig:"STORE_DIR" default:"data/tidy"`
}

// Load loads configuration from environment variables (with tag defaults)
// and, when present, an mhtidy.yaml file. The file is deliberate local
// configuration and overrides whatever the environment produced.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("MHTIDY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays the file's set values on top of the env-derived
// config. envconfig fills every field with a default, so only fields the
// file actually sets (non-zero after unmarshal) are taken from it.
func mergeConfigs(file, env Config) Config {
	merged := env

	if file.Server.Port != 0 {
		merged.Server.Port = file.Server.Port
	}
	if file.Server.ReadTimeout != 0 {
		merged.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if file.Server.WriteTimeout != 0 {
		merged.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if file.Server.IdleTimeout != 0 {
		merged.Server.IdleTimeout = file.Server.IdleTimeout
	}
	if file.Server.ShutdownTimeout != 0 {
		merged.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if file.Server.RateLimit.RPS != 0 {
		merged.Server.RateLimit = file.Server.RateLimit
	}

	if file.Logging.Level != "" {
		merged.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		merged.Logging.Format = file.Logging.Format
	}
	if file.Logging.Output != "" {
		merged.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" {
		merged.Logging.FilePath = file.Logging.FilePath
	}

	if file.Pipeline.SourceDir != "" {
		merged.Pipeline.SourceDir = file.Pipeline.SourceDir
	}
	if file.Pipeline.StoreDir != "" {
		merged.Pipeline.StoreDir = file.Pipeline.StoreDir
	}

	return merged
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Pipeline.SourceDir == "" {
		return fmt.Errorf("pipeline source dir must not be empty")
	}
	if c.Pipeline.StoreDir == "" {
		return fmt.Errorf("pipeline store dir must not be empty")
	}

	return nil
}

// getConfigFilePath returns the expected config file location. The env
// override exists mainly for tests.
func getConfigFilePath() string {
	if p := os.Getenv("MHTIDY_CONFIG_FILE"); p != "" {
		return p
	}
	return "mhtidy.yaml"
}
