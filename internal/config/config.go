package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration of the rota binary.
type Config struct {
	Database DatabaseConfig `mapstructure:"db"`
	Solver   SolverConfig   `mapstructure:"solver"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SolverConfig locates the external solver process.
type SolverConfig struct {
	Command string        `mapstructure:"command"`
	Args    []string      `mapstructure:"args"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given file (or rota.yaml in the working
// directory and ~/.rota when path is empty) and the environment.
// Precedence: ROTA_* environment variables, then the file, then defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("db.path", filepath.Join(home, ".rota", "rota.db"))
	v.SetDefault("solver.command", "rota-solver")
	v.SetDefault("solver.args", []string{})
	v.SetDefault("solver.timeout", "30s")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("rota")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home != "" {
			v.AddConfigPath(filepath.Join(home, ".rota"))
		}
	}

	v.SetEnvPrefix("ROTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the binary cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("config: db.path is required")
	}
	if strings.TrimSpace(c.Solver.Command) == "" {
		return fmt.Errorf("config: solver.command is required")
	}
	if c.Solver.Timeout <= 0 {
		return fmt.Errorf("config: solver.timeout must be positive, got %s", c.Solver.Timeout)
	}
	return nil
}
