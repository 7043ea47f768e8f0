package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("data_path: /data\noutput_path: /out\n"))
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.DataPath)
	assert.Equal(t, 1.0, cfg.SamplingRate)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.ChainWorkers)
	assert.Equal(t, DefaultTripsFile, cfg.TripsFile)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 40, cfg.JTAB.AgentCount)
	assert.False(t, cfg.StrictForeignKeys)
}

func TestParse_FullFile(t *testing.T) {
	yml := `
data_path: /data
output_path: /out
sampling_rate: 0.05
strict_foreign_keys: true
chain_workers: 3
sqlite_path: /out/entd.sqlite
log:
  level: debug
  format: json
metrics:
  push_url: http://localhost:9091
jtab:
  zones_file: zones.csv
  agent_count: 12
  max_locate_distance_km: 25
`
	cfg, err := Parse([]byte(yml))
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.SamplingRate)
	assert.True(t, cfg.StrictForeignKeys)
	assert.Equal(t, 3, cfg.ChainWorkers)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "http://localhost:9091", cfg.Metrics.PushURL)
	assert.Equal(t, DefaultMetricsJob, cfg.Metrics.Job)
	assert.Equal(t, 12, cfg.JTAB.AgentCount)
	assert.Equal(t, 25.0, cfg.JTAB.MaxLocateDistanceKm)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing data path": "output_path: /out\n",
		"sampling too high": "data_path: /d\noutput_path: /o\nsampling_rate: 2\n",
		"bad log level":     "data_path: /d\noutput_path: /o\nlog:\n  level: loud\n",
		"bad push url":      "data_path: /d\noutput_path: /o\nmetrics:\n  push_url: nope\n",
		"not yaml":          "data_path: [\n",
	}
	for name, yml := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(yml))
			assert.Error(t, err)
		})
	}
}

func TestLoadAppConfig_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yml")
	require.NoError(t, os.WriteFile(path, []byte("data_path: /d\noutput_path: /o\n"), 0o644))

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/o", cfg.OutputPath)
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoad_OverridesBeforeValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yml")
	require.NoError(t, os.WriteFile(path, []byte("data_path: /d\nsampling_rate: 0.5\n"), 0o644))

	cfg, err := Load(path, func(c *AppConfig) {
		c.OutputPath = "/flag"
		c.SamplingRate = 0.25
	})
	require.NoError(t, err)
	assert.Equal(t, "/d", cfg.DataPath)
	assert.Equal(t, "/flag", cfg.OutputPath)
	assert.Equal(t, 0.25, cfg.SamplingRate)
	assert.Equal(t, DefaultTripsFile, cfg.TripsFile)
}

func TestLoad_InvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yml")
	require.NoError(t, os.WriteFile(path, []byte("data_path: /d\noutput_path: /o\n"), 0o644))

	_, err := Load(path, func(c *AppConfig) { c.SamplingRate = 2 })
	assert.Error(t, err)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"), func(c *AppConfig) {
		c.DataPath, c.OutputPath = "/d", "/o"
	})
	assert.Error(t, err)
}
