// Simulation configuration: defaults, YAML loading, validation.

package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the initialization record for a simulation.
type Config struct {
	WarehouseRows    int     `yaml:"warehouse_rows"`
	WarehouseCols    int     `yaml:"warehouse_cols"`
	InitialMoney     float64 `yaml:"initial_money"`
	InitialEmployees int     `yaml:"initial_employees"`
	SpeedMultiplier  int     `yaml:"speed_multiplier"`
}

// DefaultConfig returns the reference configuration: a 12x20 grid,
// 50,000 currency units, 5 employees, 1x speed.
func DefaultConfig() Config {
	return Config{
		WarehouseRows:    12,
		WarehouseCols:    20,
		InitialMoney:     50000,
		InitialEmployees: 5,
		SpeedMultiplier:  1,
	}
}

// Validate rejects degenerate configurations before they can produce a
// malformed grid or roster.
func (c Config) Validate() error {
	if c.WarehouseRows <= 0 || c.WarehouseCols <= 0 {
		return fmt.Errorf("warehouse dimensions must be positive, got %dx%d", c.WarehouseRows, c.WarehouseCols)
	}
	if c.InitialEmployees <= 0 {
		return fmt.Errorf("initial employee count must be positive, got %d", c.InitialEmployees)
	}
	if c.InitialMoney < 0 {
		return fmt.Errorf("initial money must be non-negative, got %v", c.InitialMoney)
	}
	if err := validSpeed(c.SpeedMultiplier); err != nil {
		return err
	}
	return nil
}

// validSpeed enforces the supported speed multipliers.
func validSpeed(n int) error {
	if n < 1 || n > 3 {
		return fmt.Errorf("speed multiplier must be 1, 2 or 3, got %d", n)
	}
	return nil
}

// LoadConfig reads a Config from a YAML file, filling unset fields from
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
