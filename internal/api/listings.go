package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// GetListingsLatest fetches the first page of CoinMarketCap listings,
// ordered by market cap descending.
func (c *Client) GetListingsLatest(ctx context.Context, opts ListingsOptions) (*CMCListingsResponse, error) {
	query := url.Values{}
	query.Set("start", "1")
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Currency != "" {
		query.Set("convert", strings.ToUpper(opts.Currency))
	}

	var resp CMCListingsResponse
	if err := c.get(ctx, "/v1/cryptocurrency/listings/latest", query, &resp); err != nil {
		return nil, fmt.Errorf("get listings latest: %w", err)
	}

	return &resp, nil
}

// GetCoinMarkets fetches the first page of CoinGecko coin markets,
// ordered by market cap descending.
func (c *Client) GetCoinMarkets(ctx context.Context, opts ListingsOptions) ([]GeckoMarket, error) {
	query := url.Values{}
	query.Set("vs_currency", strings.ToLower(opts.Currency))
	query.Set("order", "market_cap_desc")
	if opts.Limit > 0 {
		query.Set("per_page", strconv.Itoa(opts.Limit))
	}
	query.Set("page", "1")
	query.Set("sparkline", "false")

	var resp []GeckoMarket
	if err := c.get(ctx, "/coins/markets", query, &resp); err != nil {
		return nil, fmt.Errorf("get coin markets: %w", err)
	}

	return resp, nil
}
