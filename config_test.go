package allocor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.Nil(t, config.Validate())
	assert.Equal(t, 16.0, config.Capacity.TotalCPU)
	assert.Equal(t, 32768, config.Capacity.TotalMemoryMB)
	assert.Equal(t, 10, config.Capacity.TotalWorkers)
	assert.Equal(t, 9000, config.Registry.PortRangeStart)
	assert.Equal(t, 1.0, config.Worker.WorkerCPU)
	assert.Equal(t, 2048, config.Worker.WorkerMemoryMB)
	assert.Equal(t, 300, config.SweepIntervalSeconds)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(*Config)
		expectError bool
	}{
		{
			description: "defaults are valid",
			mutate:      func(*Config) {},
		},
		{
			description: "negative capacity",
			mutate:      func(c *Config) { c.Capacity.TotalCPU = -1 },
			expectError: true,
		},
		{
			description: "zero worker cpu",
			mutate:      func(c *Config) { c.Worker.WorkerCPU = 0 },
			expectError: true,
		},
		{
			description: "zero sweep interval",
			mutate:      func(c *Config) { c.SweepIntervalSeconds = 0 },
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		config := DefaultConfig()
		testCase.mutate(config)
		err := config.Validate()
		if testCase.expectError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		assert.Nil(t, err, testCase.description)
	}
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/allocor/config.yaml"
	err := fs.Upload(ctx, URL, 0644, strings.NewReader(`
capacity:
  totalCPU: 8
  totalMemoryMB: 16384
  totalWorkers: 5
sweepIntervalSeconds: 60
`))
	require.Nil(t, err)

	config, err := LoadConfig(ctx, URL)
	require.Nil(t, err)
	assert.Equal(t, 8.0, config.Capacity.TotalCPU)
	assert.Equal(t, 16384, config.Capacity.TotalMemoryMB)
	assert.Equal(t, 5, config.Capacity.TotalWorkers)
	assert.Equal(t, 60, config.SweepIntervalSeconds)

	// Unspecified sections keep their defaults.
	assert.Equal(t, 9000, config.Registry.PortRangeStart)
	assert.Equal(t, 1.0, config.Worker.WorkerCPU)
}

func TestLoadConfig_Invalid(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/allocor/invalid.yaml"
	err := fs.Upload(ctx, URL, 0644, strings.NewReader("sweepIntervalSeconds: -1\n"))
	require.Nil(t, err)

	_, err = LoadConfig(ctx, URL)
	assert.NotNil(t, err)

	_, err = LoadConfig(ctx, "mem://localhost/allocor/missing.yaml")
	assert.NotNil(t, err)
}
