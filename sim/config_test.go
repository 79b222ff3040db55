package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_ReferenceValues(t *testing.T) {
	got := DefaultConfig()
	want := Config{
		WarehouseRows:    12,
		WarehouseCols:    20,
		InitialMoney:     50000,
		InitialEmployees: 5,
		SpeedMultiplier:  1,
	}
	assert.Equal(t, want, got)
	assert.NoError(t, got.Validate())
}

func TestConfig_ValidateRejectsDegenerateValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rows", func(c *Config) { c.WarehouseRows = 0 }},
		{"negative cols", func(c *Config) { c.WarehouseCols = -5 }},
		{"zero employees", func(c *Config) { c.InitialEmployees = 0 }},
		{"negative money", func(c *Config) { c.InitialMoney = -1 }},
		{"speed too low", func(c *Config) { c.SpeedMultiplier = 0 }},
		{"speed too high", func(c *Config) { c.SpeedMultiplier = 4 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig_MergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `warehouse_rows: 8
initial_employees: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.WarehouseRows)
	assert.Equal(t, 3, cfg.InitialEmployees)
	// Unset fields keep their defaults.
	assert.Equal(t, 20, cfg.WarehouseCols)
	assert.Equal(t, float64(50000), cfg.InitialMoney)
	assert.Equal(t, 1, cfg.SpeedMultiplier)
}

func TestLoadConfig_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("warehouse_rows: -3\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
