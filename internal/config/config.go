package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "darkpoolcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Scan    ScanConfig    `yaml:"scan" envconfig:"SCAN"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/darkpool-scanner.log"`
}

// ScanConfig contains scan pipeline configuration
type ScanConfig struct {
	// Workers bounds how many consecutive-day pairs are processed at
	// once in directory mode. Pairs share no state, so any value >= 1
	// is safe.
	Workers int `yaml:"workers" envconfig:"WORKERS" default:"4" validate:"min=1"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

const defaultConfigFile = "config.yaml"

// Load loads configuration from environment variables and the default
// config file location. Environment variables take precedence.
func Load() (*Config, error) {
	return LoadFrom(defaultConfigFile)
}

// LoadFrom loads configuration from environment variables and the given
// YAML file, if it exists.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("DARKPOOL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// Default returns the built-in defaults without touching the
// environment or any config file.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/darkpool-scanner.log",
		},
		Scan:  ScanConfig{Workers: 4},
		Paths: PathsConfig{DataDir: "data", ReportsDir: "reports", LogsDir: "logs"},
	}
}

// loadFromFile loads configuration from YAML file
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

// mergeConfigs merges file config with env config. Values set through
// the environment win; envconfig defaults only fill fields the file
// left empty.
func mergeConfigs(fileCfg, envCfg Config) Config {
	merged := envCfg

	if fileCfg.Logging.Level != "" && !envSet("DARKPOOL_LOGGING_LEVEL") {
		merged.Logging.Level = fileCfg.Logging.Level
	}
	if fileCfg.Logging.Format != "" && !envSet("DARKPOOL_LOGGING_FORMAT") {
		merged.Logging.Format = fileCfg.Logging.Format
	}
	if fileCfg.Logging.Output != "" && !envSet("DARKPOOL_LOGGING_OUTPUT") {
		merged.Logging.Output = fileCfg.Logging.Output
	}
	if fileCfg.Logging.FilePath != "" && !envSet("DARKPOOL_LOGGING_FILE_PATH") {
		merged.Logging.FilePath = fileCfg.Logging.FilePath
	}
	if fileCfg.Scan.Workers != 0 && !envSet("DARKPOOL_SCAN_WORKERS") {
		merged.Scan.Workers = fileCfg.Scan.Workers
	}
	if fileCfg.Paths.DataDir != "" && !envSet("DARKPOOL_PATHS_DATA_DIR") {
		merged.Paths.DataDir = fileCfg.Paths.DataDir
	}
	if fileCfg.Paths.ReportsDir != "" && !envSet("DARKPOOL_PATHS_REPORTS_DIR") {
		merged.Paths.ReportsDir = fileCfg.Paths.ReportsDir
	}
	if fileCfg.Paths.LogsDir != "" && !envSet("DARKPOOL_PATHS_LOGS_DIR") {
		merged.Paths.LogsDir = fileCfg.Paths.LogsDir
	}

	return merged
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// validate checks the configuration values using struct tags
func (c *Config) validate() error {
	return validator.New().Struct(c)
}
