package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
service_name = "simulation"

[database]
dsn = "root:password@tcp(localhost:3306)/montecarlo"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "simulation", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 100.0, cfg.HTTP.RateLimitBurst)
	assert.Equal(t, 50.0, cfg.HTTP.RateLimitPerSec)
	assert.Equal(t, "mysql", cfg.Database.Driver)

	// 模拟默认参数与基准场景一致
	assert.Equal(t, 1000000, cfg.Simulation.Paths)
	assert.Equal(t, 4, cfg.Simulation.Threads)
	assert.False(t, cfg.Simulation.UseAffinity)
	assert.Equal(t, 100.0, cfg.Simulation.Spot)
	assert.Equal(t, 100.0, cfg.Simulation.Strike)
	assert.Equal(t, 0.05, cfg.Simulation.RiskFreeRate)
	assert.Equal(t, 0.2, cfg.Simulation.Volatility)
	assert.Equal(t, 1.0, cfg.Simulation.Maturity)
}

func TestLoad_ExplicitValuesOverrideDefaults(t *testing.T) {
	path := writeConfig(t, `
service_name = "simulation"

[database]
dsn = "root:password@tcp(localhost:3306)/montecarlo"

[simulation]
paths = 50000
threads = 8
use_affinity = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50000, cfg.Simulation.Paths)
	assert.Equal(t, 8, cfg.Simulation.Threads)
	assert.True(t, cfg.Simulation.UseAffinity)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"missing service name",
			`
[database]
dsn = "root:password@tcp(localhost:3306)/montecarlo"
`,
		},
		{
			"missing dsn",
			`service_name = "simulation"`,
		},
		{
			"invalid paths",
			`
service_name = "simulation"

[database]
dsn = "root:password@tcp(localhost:3306)/montecarlo"

[simulation]
paths = -1
`,
		},
		{
			"invalid threads",
			`
service_name = "simulation"

[database]
dsn = "root:password@tcp(localhost:3306)/montecarlo"

[simulation]
threads = 0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			cfg, err := Load(path)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/config.toml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
