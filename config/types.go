package config

// LogConfig selects the zap logger level and encoding.
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json console"`
}

// MetricsConfig contains the optional Pushgateway target
type MetricsConfig struct {
	PushURL string `yaml:"push_url" validate:"omitempty,url"`
	Job     string `yaml:"job"`
}

// JTABConfig contains the demand-preparation inputs and outputs.
// Relative paths are resolved against DataPath / OutputPath by the caller.
type JTABConfig struct {
	FacilitiesFile      string  `yaml:"facilities_file"`
	ZonesFile           string  `yaml:"zones_file"`
	PersonsFile         string  `yaml:"persons_file"`
	HouseholdsFile      string  `yaml:"households_file"`
	HomesFile           string  `yaml:"homes_file"`
	ActivitiesFile      string  `yaml:"activities_file"`
	LocatedTripsFile    string  `yaml:"located_trips_file"`
	AgentsFile          string  `yaml:"agents_file"`
	OutputDir           string  `yaml:"output_dir"`
	AgentCount          int     `yaml:"agent_count" validate:"gte=0"`
	MaxLocateDistanceKm float64 `yaml:"max_locate_distance_km" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	DataPath          string        `yaml:"data_path" validate:"required"`
	OutputPath        string        `yaml:"output_path" validate:"required"`
	SamplingRate      float64       `yaml:"sampling_rate" validate:"omitempty,gt=0,lte=1"`
	StrictForeignKeys bool          `yaml:"strict_foreign_keys"`
	ChainWorkers      int           `yaml:"chain_workers" validate:"gte=0"`
	TripsFile         string        `yaml:"trips_file"`
	SQLitePath        string        `yaml:"sqlite_path"`
	CachePath         string        `yaml:"cache_path"`
	Log               LogConfig     `yaml:"log"`
	Metrics           MetricsConfig `yaml:"metrics"`
	JTAB              JTABConfig    `yaml:"jtab"`
}
