package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Documented run defaults. The library-level defaults live with the drivers;
// these mirror them for the CLI surface.
const (
	DefaultMaxSteps       = 100
	DefaultStepSize       = 0.1
	DefaultNewtonTol      = 1e-10
	DefaultMaxNewtonSteps = 5
	DefaultGrowthFactor   = 2.0
	DefaultShrinkFactor   = 0.5
	DefaultLowWatermark   = 2
	DefaultHighWatermark  = 4
	DefaultMinStepSize    = 1e-10
	DefaultGridNodes      = 51
)

// Config describes one continuation run.
type Config struct {
	Problem   string  `yaml:"problem"`
	Algorithm string  `yaml:"algorithm"` // "natural" or "euler-newton"
	Lmbda0    float64 `yaml:"lambda0"`

	MaxSteps       int     `yaml:"max_steps"`
	StepSize       float64 `yaml:"step_size"`
	NewtonTol      float64 `yaml:"newton_tol"`
	MaxNewtonSteps int     `yaml:"max_newton_steps"`

	StepControl StepControlConfig `yaml:"step_control"`

	// GridNodes sizes grid-based problems; scalar problems ignore it.
	GridNodes int `yaml:"grid_nodes"`
}

// StepControlConfig holds the step-length adaptation policy of the
// Euler-Newton driver.
type StepControlConfig struct {
	GrowthFactor  float64 `yaml:"growth_factor"`
	ShrinkFactor  float64 `yaml:"shrink_factor"`
	LowWatermark  int     `yaml:"low_watermark"`
	HighWatermark int     `yaml:"high_watermark"`
	MinStepSize   float64 `yaml:"min_step_size"`
	MaxStepSize   float64 `yaml:"max_step_size"` // zero means unbounded
}

func DefaultConfig() *Config {
	return &Config{
		Problem:        "sine",
		Algorithm:      "euler-newton",
		MaxSteps:       DefaultMaxSteps,
		StepSize:       DefaultStepSize,
		NewtonTol:      DefaultNewtonTol,
		MaxNewtonSteps: DefaultMaxNewtonSteps,
		StepControl: StepControlConfig{
			GrowthFactor:  DefaultGrowthFactor,
			ShrinkFactor:  DefaultShrinkFactor,
			LowWatermark:  DefaultLowWatermark,
			HighWatermark: DefaultHighWatermark,
			MinStepSize:   DefaultMinStepSize,
		},
		GridNodes: DefaultGridNodes,
	}
}

func (c *Config) Validate() error {
	switch c.Algorithm {
	case "natural", "euler-newton":
	default:
		return fmt.Errorf("unknown algorithm: %s", c.Algorithm)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative, got %d", c.MaxSteps)
	}
	if c.StepSize == 0 {
		return fmt.Errorf("step_size must be non-zero")
	}
	if c.NewtonTol <= 0 {
		return fmt.Errorf("newton_tol must be positive, got %g", c.NewtonTol)
	}
	if c.MaxNewtonSteps < 1 {
		return fmt.Errorf("max_newton_steps must be at least 1, got %d", c.MaxNewtonSteps)
	}
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
