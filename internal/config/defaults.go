package config

import (
	"strings"
	"time"
)

// Default values for optional configuration fields.
const (
	DefaultConfigPath       = "configs/tracker.yaml"
	DefaultLogPath          = "crypto_data.log"
	DefaultLogLevel         = "info"
	DefaultProvider         = ProviderCoinMarketCap
	DefaultCoinMarketCapURL = "https://sandbox-api.coinmarketcap.com"
	DefaultCoinGeckoURL     = "https://api.coingecko.com/api/v3"
	DefaultLimit            = 50
	MaxLimit                = 50
	DefaultCurrency         = "USD"
	DefaultAPITimeout       = 30 * time.Second
	DefaultPollInterval     = 300 * time.Second
	DefaultVariant          = VariantExtended
	DefaultRounding         = RoundingFixed
	DefaultPrecision        = 2
	DefaultSinkKind         = SinkCSV
	DefaultCSVPath          = "crypto_data.csv"
	DefaultXLSXPath         = "crypto_data.xlsx"
	DefaultDataSheet        = "Crypto Data"
	DefaultAnalysisSheet    = "Analysis"
	DefaultDBPort           = 5432
	DefaultDBSSLMode        = "prefer"
	DefaultMaxConns         = 4
	DefaultMinConns         = 1
	DefaultRedisAddr        = "localhost:6379"
	DefaultRedisKeyPrefix   = "crypto"
	DefaultMetricsPort      = 9090
	DefaultMetricsPath      = "/metrics"
)

// ApplyDefaults fills zero-valued optional fields.
func (c *TrackerConfig) ApplyDefaults() {
	// Log defaults
	if c.Log.Path == "" {
		c.Log.Path = DefaultLogPath
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	// API defaults
	c.API.Provider = strings.ToLower(c.API.Provider)
	if c.API.Provider == "" {
		c.API.Provider = DefaultProvider
	}
	if c.API.BaseURL == "" {
		switch c.API.Provider {
		case ProviderCoinGecko:
			c.API.BaseURL = DefaultCoinGeckoURL
		default:
			c.API.BaseURL = DefaultCoinMarketCapURL
		}
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.Limit == 0 {
		c.API.Limit = DefaultLimit
	}
	if c.API.Currency == "" {
		c.API.Currency = DefaultCurrency
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}

	// Poller defaults
	if c.Poller.Interval == 0 {
		c.Poller.Interval = DefaultPollInterval
	}

	// Analysis defaults
	if c.Analysis.Variant == "" {
		c.Analysis.Variant = DefaultVariant
	}
	if c.Analysis.Rounding == "" {
		c.Analysis.Rounding = DefaultRounding
	}

	// Sink defaults
	c.Sink.Kind = strings.ToLower(c.Sink.Kind)
	if c.Sink.Kind == "" {
		c.Sink.Kind = DefaultSinkKind
	}
	if c.Sink.CSV.Path == "" {
		c.Sink.CSV.Path = DefaultCSVPath
	}
	if c.Sink.XLSX.Path == "" {
		c.Sink.XLSX.Path = DefaultXLSXPath
	}
	if c.Sink.XLSX.DataSheet == "" {
		c.Sink.XLSX.DataSheet = DefaultDataSheet
	}
	if c.Sink.XLSX.AnalysisSheet == "" {
		c.Sink.XLSX.AnalysisSheet = DefaultAnalysisSheet
	}
	applyDBDefaults(&c.Sink.Postgres)
	if c.Sink.Redis.Addr == "" {
		c.Sink.Redis.Addr = DefaultRedisAddr
	}
	if c.Sink.Redis.KeyPrefix == "" {
		c.Sink.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
