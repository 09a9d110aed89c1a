package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rickgao/cryptotracker/internal/auth"
	"github.com/rickgao/cryptotracker/internal/config"
	"github.com/rickgao/cryptotracker/internal/model"
)

// Fetcher retrieves one ListingSet from an upstream provider.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (model.ListingSet, error)
}

// NewFetcher returns the Fetcher for the named provider.
func NewFetcher(provider string, client *Client, opts ListingsOptions, logger *slog.Logger) (Fetcher, error) {
	switch provider {
	case config.ProviderCoinMarketCap:
		return NewCoinMarketCapFetcher(client, opts, logger), nil
	case config.ProviderCoinGecko:
		return NewCoinGeckoFetcher(client, opts, logger), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

// KeyHeader returns the request header that carries provider's API key.
func KeyHeader(provider string) string {
	if provider == config.ProviderCoinGecko {
		return auth.HeaderCoinGecko
	}
	return auth.HeaderCoinMarketCap
}

// CoinMarketCapFetcher fetches listings from CoinMarketCap.
type CoinMarketCapFetcher struct {
	client *Client
	opts   ListingsOptions
	logger *slog.Logger
}

// NewCoinMarketCapFetcher creates a CoinMarketCapFetcher.
func NewCoinMarketCapFetcher(client *Client, opts ListingsOptions, logger *slog.Logger) *CoinMarketCapFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &CoinMarketCapFetcher{client: client, opts: opts, logger: logger}
}

// Name returns the provider name.
func (f *CoinMarketCapFetcher) Name() string { return config.ProviderCoinMarketCap }

// Fetch issues one listings request. Failures are logged and returned as
// model.KindNetwork errors.
func (f *CoinMarketCapFetcher) Fetch(ctx context.Context) (model.ListingSet, error) {
	start := time.Now()

	resp, err := f.client.GetListingsLatest(ctx, f.opts)
	if err != nil {
		f.logger.Error("api request error", "provider", config.ProviderCoinMarketCap, "err", err)
		return model.ListingSet{}, model.NetworkError("fetch "+config.ProviderCoinMarketCap, err)
	}

	listings := make([]model.Listing, 0, len(resp.Data))
	for i := range resp.Data {
		listings = append(listings, resp.Data[i].ToListing(f.opts.Currency))
	}

	f.logger.Info("fetched listings",
		"provider", config.ProviderCoinMarketCap,
		"count", len(listings),
		"credits", resp.Status.CreditCount,
		"duration", time.Since(start),
	)

	return model.NewListingSet(config.ProviderCoinMarketCap, start, listings), nil
}

// CoinGeckoFetcher fetches listings from CoinGecko.
type CoinGeckoFetcher struct {
	client *Client
	opts   ListingsOptions
	logger *slog.Logger
}

// NewCoinGeckoFetcher creates a CoinGeckoFetcher.
func NewCoinGeckoFetcher(client *Client, opts ListingsOptions, logger *slog.Logger) *CoinGeckoFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &CoinGeckoFetcher{client: client, opts: opts, logger: logger}
}

// Name returns the provider name.
func (f *CoinGeckoFetcher) Name() string { return config.ProviderCoinGecko }

// Fetch issues one coin markets request. Failures are logged and returned as
// model.KindNetwork errors.
func (f *CoinGeckoFetcher) Fetch(ctx context.Context) (model.ListingSet, error) {
	start := time.Now()

	markets, err := f.client.GetCoinMarkets(ctx, f.opts)
	if err != nil {
		f.logger.Error("api request error", "provider", config.ProviderCoinGecko, "err", err)
		return model.ListingSet{}, model.NetworkError("fetch "+config.ProviderCoinGecko, err)
	}

	listings := make([]model.Listing, 0, len(markets))
	for i := range markets {
		listings = append(listings, markets[i].ToListing())
	}

	f.logger.Info("fetched listings",
		"provider", config.ProviderCoinGecko,
		"count", len(listings),
		"duration", time.Since(start),
	)

	return model.NewListingSet(config.ProviderCoinGecko, start, listings), nil
}
