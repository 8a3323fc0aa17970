package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrNilConfig     = errors.New("config is nil")
	ErrInvalidConfig = errors.New("invalid config")
)

// Config groups configuration of all subsystems.
// Optional components are disabled by leaving them nil.
type Config struct {
	// Mapper selects the bucket mapping algorithm and its random generator.
	Mapper MapperCfg `yaml:"mapper"`

	// Router configures the sharded store. If nil, no router is built.
	Router *RouterCfg `yaml:"router"`

	// Simulation configures the draw-consumption simulation. If nil, cmd/jbhsim falls back to its flags.
	Simulation *SimulationCfg `yaml:"simulation"`
}

// AdjustConfig fills zero values with defaults.
func (cfg *Config) AdjustConfig() {
	cfg.Mapper.adjust()
	if cfg.Router.Enabled() {
		cfg.Router.adjust()
	}
	if cfg.Simulation.Enabled() {
		cfg.Simulation.adjust()
	}
}

// Validate reports the first inconsistency found, wrapped in ErrInvalidConfig.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return ErrNilConfig
	}
	if err := cfg.Mapper.validate(); err != nil {
		return fmt.Errorf("%w: mapper: %w", ErrInvalidConfig, err)
	}
	if cfg.Router.Enabled() {
		if err := cfg.Router.validate(); err != nil {
			return fmt.Errorf("%w: router: %w", ErrInvalidConfig, err)
		}
	}
	if cfg.Simulation.Enabled() {
		if err := cfg.Simulation.validate(); err != nil {
			return fmt.Errorf("%w: simulation: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Default returns a config with an enabled router and every default applied.
func Default() *Config {
	cfg := &Config{Router: &RouterCfg{}}
	cfg.AdjustConfig()
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.AdjustConfig()

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}
