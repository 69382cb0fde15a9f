// Package config resolves process-wide settings for the energy tool.
//
// Resolution order, later wins:
//
//	defaults → YAML file (--config or ENERGY_CONFIG) → environment
//
// A .env file in the working directory is loaded into the environment
// first; variables already set in the real environment are not overridden.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ja7ad/energy/pkg/consumption"
	"github.com/ja7ad/energy/pkg/load"
)

const (
	EnvConfigPath     = "ENERGY_CONFIG"
	EnvEmissionFactor = "ENERGY_EMISSION_FACTOR"
	EnvEmissionPolicy = "ENERGY_EMISSION_POLICY"
	EnvPeakShape      = "ENERGY_PEAK_SHAPE"
	EnvCoefficients   = "ENERGY_COEFFICIENTS"
	EnvMaxSteps       = "ENERGY_MAX_STEPS"
	EnvLogLevel       = "ENERGY_LOG_LEVEL"
)

const DefaultLogLevel = "info"

// Settings is the YAML shape of the settings file.
type Settings struct {
	EmissionFactor float64 `yaml:"emission_factor"`
	EmissionPolicy string  `yaml:"emission_policy"`
	PeakShape      string  `yaml:"peak_shape"`
	Coefficients   string  `yaml:"coefficients"`
	MaxSteps       int     `yaml:"max_steps"`
	LogLevel       string  `yaml:"log_level"`

	// Path is the settings file that was read, empty when none.
	Path string `yaml:"-"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		EmissionFactor: consumption.DefaultEmissionFactor,
		EmissionPolicy: string(consumption.EmissionInput),
		PeakShape:      string(load.ShapeOffset),
		Coefficients:   string(consumption.CoefficientsInput),
		MaxSteps:       consumption.DefaultMaxSteps,
		LogLevel:       DefaultLogLevel,
	}
}

// Resolve builds Settings from defaults, the settings file and the environment.
// rawPath takes precedence over ENERGY_CONFIG.
func Resolve(rawPath string) (Settings, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Settings{}, err
	}

	cfg := Defaults()

	path := strings.TrimSpace(rawPath)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path != "" {
		expanded, err := expandHomeDir(path)
		if err != nil {
			return Settings{}, err
		}
		if err := mergeFile(&cfg, expanded); err != nil {
			return Settings{}, err
		}
		cfg.Path = path
	}

	if err := applyEnv(&cfg); err != nil {
		return Settings{}, err
	}
	if _, err := cfg.Consumption(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// Consumption converts the settings into an engine config, rejecting
// unknown enum values and a non-positive emission factor.
func (s Settings) Consumption() (consumption.Config, error) {
	policy, err := consumption.ParseEmissionPolicy(s.EmissionPolicy)
	if err != nil {
		return consumption.Config{}, fmt.Errorf("config: %w", err)
	}
	shape, err := load.ParseShape(s.PeakShape)
	if err != nil {
		return consumption.Config{}, fmt.Errorf("config: %w", err)
	}
	mode, err := consumption.ParseCoefficientMode(s.Coefficients)
	if err != nil {
		return consumption.Config{}, fmt.Errorf("config: %w", err)
	}
	if !(s.EmissionFactor > 0) {
		return consumption.Config{}, fmt.Errorf("config: emission_factor must be > 0, got %v", s.EmissionFactor)
	}
	if s.MaxSteps < 0 {
		return consumption.Config{}, fmt.Errorf("config: max_steps must be >= 0, got %d", s.MaxSteps)
	}
	return consumption.Config{
		EmissionFactor: s.EmissionFactor,
		EmissionPolicy: policy,
		PeakShape:      shape,
		Coefficients:   mode,
		MaxSteps:       s.MaxSteps,
	}, nil
}

// mergeFile overlays the non-zero values of a YAML settings file onto cfg.
func mergeFile(cfg *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	var file Settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if file.EmissionFactor != 0 {
		cfg.EmissionFactor = file.EmissionFactor
	}
	if file.EmissionPolicy != "" {
		cfg.EmissionPolicy = file.EmissionPolicy
	}
	if file.PeakShape != "" {
		cfg.PeakShape = file.PeakShape
	}
	if file.Coefficients != "" {
		cfg.Coefficients = file.Coefficients
	}
	if file.MaxSteps != 0 {
		cfg.MaxSteps = file.MaxSteps
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	return nil
}

func applyEnv(cfg *Settings) error {
	if v := strings.TrimSpace(os.Getenv(EnvEmissionFactor)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvEmissionFactor, err)
		}
		cfg.EmissionFactor = f
	}
	if v := strings.TrimSpace(os.Getenv(EnvEmissionPolicy)); v != "" {
		cfg.EmissionPolicy = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPeakShape)); v != "" {
		cfg.PeakShape = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCoefficients)); v != "" {
		cfg.Coefficients = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxSteps)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvMaxSteps, err)
		}
		cfg.MaxSteps = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// loadDotEnv loads path into the environment if it exists.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: loading %s: %w", path, err)
	}
	return nil
}

func expandHomeDir(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
