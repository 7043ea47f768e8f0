package config

import (
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are tried in order when no explicit config path is given.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

const (
	DefaultSamplingRate = 1.0
	DefaultTripsFile    = "trips_entd_ld.csv"
	DefaultAgentCount   = 40
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultMetricsJob   = "entd_pipeline"
	DefaultJTABDir      = "jtab"
)

// LoadAppConfig reads, validates and completes the configuration. An empty
// path falls back to DefaultPaths.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	return Parse(data)
}

// Load reads the configuration, lets override adjust it, then validates
// and applies defaults. Without an explicit path a missing default file is
// not an error, so the configuration can come from override alone.
func Load(path string, override func(*AppConfig)) (AppConfig, error) {
	var cfg AppConfig
	data, err := readConfigFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, errors.Wrap(err, "decode config")
		}
	case path != "":
		return AppConfig{}, err
	}
	if override != nil {
		override(&cfg)
	}
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	ApplyDefaults(&cfg)
	return cfg, nil
}

// Parse decodes YAML bytes into a validated AppConfig with defaults applied.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, errors.Wrap(err, "decode config")
	}
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	ApplyDefaults(&cfg)
	return cfg, nil
}

// Validate checks struct tags. It is also used after CLI overrides.
func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// ApplyDefaults fills zero values.
func ApplyDefaults(cfg *AppConfig) {
	if cfg.SamplingRate == 0 {
		cfg.SamplingRate = DefaultSamplingRate
	}
	if cfg.ChainWorkers == 0 {
		cfg.ChainWorkers = runtime.GOMAXPROCS(0)
	}
	if cfg.TripsFile == "" {
		cfg.TripsFile = DefaultTripsFile
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Metrics.Job == "" {
		cfg.Metrics.Job = DefaultMetricsJob
	}
	if cfg.JTAB.AgentCount == 0 {
		cfg.JTAB.AgentCount = DefaultAgentCount
	}
	if cfg.JTAB.OutputDir == "" {
		cfg.JTAB.OutputDir = DefaultJTABDir
	}
}

func readConfigFile(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		return data, errors.Wrapf(err, "read config %s", path)
	}
	var err error
	for _, p := range DefaultPaths {
		var data []byte
		data, err = os.ReadFile(p)
		if err == nil {
			return data, nil
		}
	}
	return nil, errors.Wrap(err, "no config file found")
}
