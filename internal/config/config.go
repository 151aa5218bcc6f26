// Package config provides unified configuration loading for izhinet.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config contains all izhinet configuration settings.
type Config struct {
	// Network sets the population sizes and run duration.
	Network NetworkConfig `json:"network" yaml:"network"`

	// Noise sets the thalamic background drive amplitudes.
	Noise NoiseConfig `json:"noise" yaml:"noise"`

	// Weights sets the synaptic weight generation bounds.
	Weights WeightsConfig `json:"weights" yaml:"weights"`

	// Logging contains settings for operational and step-trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// NetworkConfig sets the population sizes and run duration.
type NetworkConfig struct {
	// Excitatory is the number of excitatory neurons. Default: 800.
	Excitatory int `json:"excitatory" yaml:"excitatory"`

	// Inhibitory is the number of inhibitory neurons. Default: 200.
	Inhibitory int `json:"inhibitory" yaml:"inhibitory"`

	// DurationMS is the run length in whole milliseconds. Default: 1000.
	DurationMS int `json:"duration_ms" yaml:"duration_ms"`
}

// NoiseConfig sets the per-type scaling of the N(0,1) background drive.
// Excitatory cells receive the stronger drive, per the model paper.
type NoiseConfig struct {
	ExcitatoryScale float64 `json:"excitatory_scale" yaml:"excitatory_scale"`
	InhibitoryScale float64 `json:"inhibitory_scale" yaml:"inhibitory_scale"`
}

// WeightsConfig sets the synaptic weight generation bounds.
type WeightsConfig struct {
	// ExcitatoryMax is the exclusive upper bound for excitatory weights.
	ExcitatoryMax float64 `json:"excitatory_max" yaml:"excitatory_max"`

	// InhibitoryMax bounds the magnitude of inhibitory weights.
	InhibitoryMax float64 `json:"inhibitory_max" yaml:"inhibitory_max"`

	// SelfConnections permits nonzero diagonal entries in the weight
	// matrix.
	SelfConnections bool `json:"self_connections" yaml:"self_connections"`
}

// LoggingConfig configures izhinet's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables per-step trace logging to steps.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with the reference network settings.
func Default() *Config {
	return &Config{
		Network: NetworkConfig{
			Excitatory: 800,
			Inhibitory: 200,
			DurationMS: 1000,
		},
		Noise: NoiseConfig{
			ExcitatoryScale: 5.0,
			InhibitoryScale: 2.0,
		},
		Weights: WeightsConfig{
			ExcitatoryMax:   0.5,
			InhibitoryMax:   1.0,
			SelfConnections: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment
// variables. Order: defaults -> ~/.izhinet/config.yaml -> environment.
func Load() (*Config, error) {
	cfg := Default()

	// Try to load from default config file
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".izhinet", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			cfg = fileConfig
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration describes a runnable network.
func (c *Config) Validate() error {
	if c.Network.Excitatory < 0 {
		return fmt.Errorf("excitatory count must be non-negative, got %d", c.Network.Excitatory)
	}
	if c.Network.Inhibitory < 0 {
		return fmt.Errorf("inhibitory count must be non-negative, got %d", c.Network.Inhibitory)
	}
	if c.Network.Excitatory+c.Network.Inhibitory <= 0 {
		return fmt.Errorf("network must contain at least one neuron")
	}
	if c.Network.DurationMS <= 0 {
		return fmt.Errorf("duration_ms must be positive, got %d", c.Network.DurationMS)
	}
	if c.Noise.ExcitatoryScale < 0 || c.Noise.InhibitoryScale < 0 {
		return fmt.Errorf("noise scales must be non-negative, got %v/%v", c.Noise.ExcitatoryScale, c.Noise.InhibitoryScale)
	}
	if c.Weights.ExcitatoryMax < 0 || c.Weights.InhibitoryMax < 0 {
		return fmt.Errorf("weight bounds must be non-negative, got %v/%v", c.Weights.ExcitatoryMax, c.Weights.InhibitoryMax)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IZHINET_EXCITATORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Network.Excitatory = n
		}
	}
	if v := os.Getenv("IZHINET_INHIBITORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Network.Inhibitory = n
		}
	}
	if v := os.Getenv("IZHINET_DURATION_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Network.DurationMS = n
		}
	}
	if v := os.Getenv("IZHINET_NOISE_EXCITATORY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Noise.ExcitatoryScale = f
		}
	}
	if v := os.Getenv("IZHINET_NOISE_INHIBITORY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Noise.InhibitoryScale = f
		}
	}
	if v := os.Getenv("IZHINET_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
