package config

import "time"

// TrackerConfig is the root configuration for a tracker process.
type TrackerConfig struct {
	Log      LogConfig      `yaml:"log"`
	API      APIConfig      `yaml:"api"`
	Poller   PollerConfig   `yaml:"poller"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Sink     SinkConfig     `yaml:"sink"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// LogConfig holds the process-wide log target.
type LogConfig struct {
	Path  string `yaml:"path"`  // Append-only log file
	Level string `yaml:"level"` // debug, info, warn, error
}

// Upstream providers.
const (
	ProviderCoinMarketCap = "coinmarketcap"
	ProviderCoinGecko     = "coingecko"
)

// APIConfig holds upstream listings API settings.
type APIConfig struct {
	Provider   string        `yaml:"provider"`
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	APIKeyFile string        `yaml:"api_key_file"` // Path to a file holding the key
	Limit      int           `yaml:"limit"`        // Page size (1-50)
	Currency   string        `yaml:"currency"`
	Timeout    time.Duration `yaml:"timeout"` // 0 = DefaultAPITimeout
}

// PollerConfig holds scheduler loop settings.
type PollerConfig struct {
	Interval time.Duration `yaml:"interval"` // Delay between the end of one cycle and the next
}

// Analysis variants and rounding modes.
const (
	VariantBasic    = "basic"
	VariantExtended = "extended"
	RoundingFixed   = "fixed"
	RoundingNone    = "none"
)

// AnalysisConfig holds analyzer settings.
type AnalysisConfig struct {
	Variant  string `yaml:"variant"`
	Rounding string `yaml:"rounding"`
	// Precision is the number of decimal places when Rounding is fixed.
	// Nil means DefaultPrecision; 0 rounds to whole units.
	Precision *int `yaml:"precision"`
}

// Places returns the configured precision.
func (c AnalysisConfig) Places() int {
	if c.Precision == nil {
		return DefaultPrecision
	}
	return *c.Precision
}

// Sink kinds.
const (
	SinkCSV      = "csv"
	SinkXLSX     = "xlsx"
	SinkPostgres = "postgres"
	SinkRedis    = "redis"
)

// SinkConfig selects and configures the persistence strategy.
type SinkConfig struct {
	Kind     string      `yaml:"kind"`
	CSV      CSVConfig   `yaml:"csv"`
	XLSX     XLSXConfig  `yaml:"xlsx"`
	Postgres DBConfig    `yaml:"postgres"`
	Redis    RedisConfig `yaml:"redis"`
}

// CSVConfig holds flat-file sink settings.
type CSVConfig struct {
	Path string `yaml:"path"`
	// AccumulateAnalysis carries earlier analysis blocks forward under the
	// rewritten table. Nil means true.
	AccumulateAnalysis *bool `yaml:"accumulate_analysis"`
}

// Accumulate reports whether analysis blocks accumulate across cycles.
func (c CSVConfig) Accumulate() bool {
	return c.AccumulateAnalysis == nil || *c.AccumulateAnalysis
}

// XLSXConfig holds spreadsheet sink settings.
type XLSXConfig struct {
	Path          string `yaml:"path"`
	DataSheet     string `yaml:"data_sheet"`
	AnalysisSheet string `yaml:"analysis_sheet"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// RedisConfig holds Redis sink settings.
type RedisConfig struct {
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	KeyPrefix string        `yaml:"key_prefix"`
	TTL       time.Duration `yaml:"ttl"` // 0 = no expiry
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}
