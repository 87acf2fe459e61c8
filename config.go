package strut

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	serrors "github.com/xraph/strut/errors"
	"github.com/xraph/strut/internal/di"
	"github.com/xraph/strut/logger"
)

// Config is the file-loadable server configuration. Every field maps to a
// functional option; options applied after WithConfig override it.
type Config struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	Environment string `yaml:"environment"`

	Address         string        `yaml:"address"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	Logging logger.LoggingConfig `yaml:"logging"`
	Scoping di.ScopingConfig     `yaml:"scoping"`
	Metrics MetricsConfig        `yaml:"metrics"`
}

// DefaultConfig returns the configuration New starts from.
func DefaultConfig() Config {
	return Config{
		Name:            "strut-app",
		Version:         "0.1.0",
		Environment:     "development",
		Address:         ":8080",
		ShutdownTimeout: 30 * time.Second,
		Logging:         logger.DefaultLoggingConfig(),
		Scoping:         di.DefaultScopingConfig(),
		Metrics:         DefaultMetricsConfig(),
	}
}

// LoadConfig reads a YAML configuration file, overlaying a .env file from
// the working directory when one exists. Environment variables win over
// file values for the server basics.
func LoadConfig(path string) (Config, error) {
	// A missing .env is not an error; an unreadable config file is.
	_ = godotenv.Load()

	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, serrors.ErrConfigError(fmt.Sprintf("read config file %s", path), err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, serrors.ErrConfigError(fmt.Sprintf("parse config file %s", path), err)
	}

	applyEnvOverrides(&config)
	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("STRUT_ADDRESS"); v != "" {
		config.Address = v
	}
	if v := os.Getenv("STRUT_ENVIRONMENT"); v != "" {
		config.Environment = v
	}
	if v := os.Getenv("STRUT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
