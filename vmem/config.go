package vmem

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// MaxFrames bounds the frame count of a single run
const MaxFrames = 1 << 24

// Config holds the parameters of one simulation run
type Config struct {
	Frames   int    `json:"frames"`    // Number of physical frames
	Policy   Policy `json:"policy"`    // Replacement policy (rdm, lru, fifo, clock)
	Debug    bool   `json:"debug"`     // Emit per-event narration
	Seed     uint64 `json:"seed"`      // Seed for the rdm policy; the CLI derives one from the clock when 0
	LogLevel string `json:"log_level"` // Log level (debug, info, warn, error)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Frames:   16,
		Policy:   PolicyLRU,
		Debug:    false,
		Seed:     0,
		LogLevel: "info",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnv loads configuration from environment variables
// Falls back to default values if environment variables are not set
func LoadConfigFromEnv() *Config {
	return DefaultConfig().ApplyEnv()
}

// ApplyEnv overrides fields from MEMSIM_* environment variables
func (c *Config) ApplyEnv() *Config {
	if val := os.Getenv("MEMSIM_FRAMES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Frames = n
		}
	}

	if val := os.Getenv("MEMSIM_POLICY"); val != "" {
		c.Policy = Policy(val)
	}

	if val := os.Getenv("MEMSIM_SEED"); val != "" {
		if seed, err := strconv.ParseUint(val, 10, 64); err == nil {
			c.Seed = seed
		}
	}

	if val := os.Getenv("MEMSIM_DEBUG"); val != "" {
		c.Debug = val == "true" || val == "1"
	}

	if val := os.Getenv("MEMSIM_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}

	return c
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Frames <= 0 || c.Frames > MaxFrames {
		return ErrInvalidFrames("Config.Validate", c.Frames)
	}

	if _, err := ParsePolicy(string(c.Policy)); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.LogLevel] {
		return NewSimError(ErrCodeConfiguration, "Config.Validate",
			fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel), nil)
	}

	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	return &Config{
		Frames:   c.Frames,
		Policy:   c.Policy,
		Debug:    c.Debug,
		Seed:     c.Seed,
		LogLevel: c.LogLevel,
	}
}
