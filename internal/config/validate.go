package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *TrackerConfig) Validate() error {
	if c.Log.Path == "" {
		return errors.New("log.path is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	if err := c.API.validate(); err != nil {
		return err
	}

	if c.Poller.Interval <= 0 {
		return errors.New("poller.interval must be > 0")
	}

	switch c.Analysis.Variant {
	case VariantBasic, VariantExtended:
	default:
		return fmt.Errorf("analysis.variant must be %q or %q, got %q", VariantBasic, VariantExtended, c.Analysis.Variant)
	}
	switch c.Analysis.Rounding {
	case RoundingFixed, RoundingNone:
	default:
		return fmt.Errorf("analysis.rounding must be %q or %q, got %q", RoundingFixed, RoundingNone, c.Analysis.Rounding)
	}
	if c.Analysis.Places() < 0 {
		return errors.New("analysis.precision must be >= 0")
	}

	if err := c.Sink.validate(); err != nil {
		return err
	}

	if c.Metrics.Enabled && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}

	return nil
}

func (a *APIConfig) validate() error {
	switch a.Provider {
	case ProviderCoinMarketCap:
		if a.APIKey == "" && a.APIKeyFile == "" {
			return errors.New("api.api_key or api.api_key_file is required for coinmarketcap")
		}
	case ProviderCoinGecko:
	default:
		return fmt.Errorf("api.provider must be %q or %q, got %q", ProviderCoinMarketCap, ProviderCoinGecko, a.Provider)
	}
	if a.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if a.Limit < 1 || a.Limit > MaxLimit {
		return fmt.Errorf("api.limit must be between 1 and %d, got %d", MaxLimit, a.Limit)
	}
	if a.Currency == "" {
		return errors.New("api.currency is required")
	}
	if a.Timeout < 0 {
		return errors.New("api.timeout must be >= 0")
	}
	return nil
}

func (s *SinkConfig) validate() error {
	switch s.Kind {
	case SinkCSV:
		if s.CSV.Path == "" {
			return errors.New("sink.csv.path is required")
		}
	case SinkXLSX:
		if s.XLSX.Path == "" {
			return errors.New("sink.xlsx.path is required")
		}
		if s.XLSX.DataSheet == s.XLSX.AnalysisSheet {
			return fmt.Errorf("sink.xlsx.data_sheet and sink.xlsx.analysis_sheet must differ, both %q", s.XLSX.DataSheet)
		}
	case SinkPostgres:
		return s.Postgres.validate("sink.postgres")
	case SinkRedis:
		if s.Redis.Addr == "" {
			return errors.New("sink.redis.addr is required")
		}
		if s.Redis.TTL < 0 {
			return errors.New("sink.redis.ttl must be >= 0")
		}
	default:
		return fmt.Errorf("sink.kind must be one of csv, xlsx, postgres, redis, got %q", s.Kind)
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
