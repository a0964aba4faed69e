package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/rummage/pkg/rummage"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName = "rummage.yaml"
	EnvFileName    = ".env"
)

// Environment variables that override the config file.
const (
	EnvLineBuffer = "RUMMAGE_LINE_BUFFER"
	EnvPathMax    = "RUMMAGE_PATH_MAX"
	EnvNameMax    = "RUMMAGE_NAME_MAX"
	EnvVerbose    = "RUMMAGE_VERBOSE"
)

// Limits sizes the fixed buffers of the utilities.
type Limits struct {
	LineBuffer int `yaml:"line_buffer"`
	PathMax    int `yaml:"path_max"`
	NameMax    int `yaml:"name_max"`
}

type Config struct {
	Limits  Limits `yaml:"limits"`
	Verbose bool   `yaml:"verbose"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Limits: Limits{
			LineBuffer: rummage.DefaultLineBuffer,
			PathMax:    rummage.DefaultPathMax,
			NameMax:    rummage.DefaultNameMax,
		},
	}
}

// Load reads ConfigFileName from dir. Keys missing from the file keep
// their default values.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", rummage.ErrInvalidConfig, configPath, err)
	}
	return &cfg, nil
}

// Resolve builds the effective configuration for dir: defaults, then the
// config file, then .env and process environment. The result is validated.
func Resolve(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.Is(err, ErrConfigNotFound) {
		def := Default()
		cfg, err = &def, nil
	}
	if err != nil {
		return nil, err
	}

	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(filepath.Join(dir, EnvFileName)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", EnvFileName, err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Limits.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the RUMMAGE_* environment variables.
func (c *Config) ApplyEnv() error {
	for _, v := range []struct {
		name string
		dst  *int
	}{
		{EnvLineBuffer, &c.Limits.LineBuffer},
		{EnvPathMax, &c.Limits.PathMax},
		{EnvNameMax, &c.Limits.NameMax},
	} {
		raw, ok := os.LookupEnv(v.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", rummage.ErrInvalidConfig, v.name, raw)
		}
		*v.dst = n
	}

	if raw := os.Getenv(EnvVerbose); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", rummage.ErrInvalidConfig, EnvVerbose, raw)
		}
		c.Verbose = b
	}
	return nil
}

// Validate checks that the limits describe usable buffers.
func (l Limits) Validate() error {
	if l.LineBuffer < 2 {
		return fmt.Errorf("%w: line_buffer must be at least 2, got %d", rummage.ErrInvalidConfig, l.LineBuffer)
	}
	if l.NameMax <= 0 {
		return fmt.Errorf("%w: name_max must be positive, got %d", rummage.ErrInvalidConfig, l.NameMax)
	}
	// A path must hold a prefix byte, a separator, one name and its terminator.
	if l.PathMax < l.NameMax+3 {
		return fmt.Errorf("%w: path_max must be at least name_max+3 (%d), got %d",
			rummage.ErrInvalidConfig, l.NameMax+3, l.PathMax)
	}
	return nil
}
