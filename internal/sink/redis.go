package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rickgao/cryptotracker/internal/config"
	"github.com/rickgao/cryptotracker/internal/model"
)

// Redis key suffixes under the configured prefix.
const (
	KeyListings      = "listings"
	KeyAnalysis      = "analysis"
	KeyAnalysisOrder = "analysis:order"
	KeyUpdatedAt     = "updated_at"
)

// RedisSink publishes the latest cycle as Redis keys:
//
//	<prefix>:listings        JSON array of listings in upstream order
//	<prefix>:analysis        hash of metric name to rendered value
//	<prefix>:analysis:order  list of metric names in display order
//	<prefix>:updated_at      RFC 3339 time of the write
//
// All keys are replaced in one MULTI/EXEC transaction.
type RedisSink struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewRedis creates a RedisSink with its own client.
func NewRedis(cfg config.RedisConfig, logger *slog.Logger) *RedisSink {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisWithClient(client, cfg.KeyPrefix, cfg.TTL, logger)
}

// NewRedisWithClient creates a RedisSink on an existing client. The sink
// owns the client.
func NewRedisWithClient(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *RedisSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisSink{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Name returns "redis".
func (s *RedisSink) Name() string { return config.SinkRedis }

// Key returns the full key for suffix.
func (s *RedisSink) Key(suffix string) string {
	return s.prefix + ":" + suffix
}

// Ping verifies the server is reachable.
func (s *RedisSink) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return model.PersistenceError("ping redis", err)
	}
	return nil
}

// Write replaces all keys with set and summary.
func (s *RedisSink) Write(ctx context.Context, set model.ListingSet, summary model.Summary) error {
	payload, err := json.Marshal(toRecords(set))
	if err != nil {
		return model.PersistenceError("encode listings", err)
	}

	metrics := toMetricRecords(summary)
	fields := make([]any, 0, 2*len(metrics))
	order := make([]any, 0, len(metrics))
	for _, m := range metrics {
		fields = append(fields, m.Name, m.Value)
		order = append(order, m.Name)
	}

	updatedAt := s.now().UTC().Format(time.RFC3339Nano)

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.Key(KeyListings), payload, s.ttl)
		pipe.Del(ctx, s.Key(KeyAnalysis), s.Key(KeyAnalysisOrder))
		if len(fields) > 0 {
			pipe.HSet(ctx, s.Key(KeyAnalysis), fields...)
			pipe.RPush(ctx, s.Key(KeyAnalysisOrder), order...)
			if s.ttl > 0 {
				pipe.Expire(ctx, s.Key(KeyAnalysis), s.ttl)
				pipe.Expire(ctx, s.Key(KeyAnalysisOrder), s.ttl)
			}
		}
		pipe.Set(ctx, s.Key(KeyUpdatedAt), updatedAt, s.ttl)
		return nil
	})
	if err != nil {
		return model.PersistenceError("write redis", fmt.Errorf("exec pipeline: %w", err))
	}

	s.logger.Info("data successfully updated in redis",
		"prefix", s.prefix,
		"rows", set.Len(),
		"metrics", len(metrics),
		"cycle_id", model.CycleID(ctx),
	)
	return nil
}

// Close closes the client.
func (s *RedisSink) Close() error {
	if err := s.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
