package api

import "github.com/shopspring/decimal"

// -----------------------------------------------------------------------------
// CoinMarketCap
// -----------------------------------------------------------------------------

// CMCListingsResponse from GET /v1/cryptocurrency/listings/latest
type CMCListingsResponse struct {
	Data   []CMCCoin `json:"data"`
	Status CMCStatus `json:"status"`
}

// CMCStatus is the status envelope of every CoinMarketCap response.
type CMCStatus struct {
	Timestamp    string `json:"timestamp"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	Elapsed      int    `json:"elapsed"`
	CreditCount  int    `json:"credit_count"`
}

// CMCCoin represents one listing from CoinMarketCap.
// Pointer and Null* fields distinguish absent values from zero.
type CMCCoin struct {
	ID          int                  `json:"id"`
	Name        *string              `json:"name"`
	Symbol      *string              `json:"symbol"`
	Slug        string               `json:"slug"`
	CMCRank     int                  `json:"cmc_rank"`
	LastUpdated string               `json:"last_updated"`
	Quote       map[string]*CMCQuote `json:"quote"` // Keyed by convert currency
}

// CMCQuote holds market data in one quote currency.
type CMCQuote struct {
	Price            decimal.NullDecimal `json:"price"`
	Volume24h        decimal.NullDecimal `json:"volume_24h"`
	PercentChange1h  decimal.NullDecimal `json:"percent_change_1h"`
	PercentChange24h decimal.NullDecimal `json:"percent_change_24h"`
	PercentChange7d  decimal.NullDecimal `json:"percent_change_7d"`
	MarketCap        decimal.NullDecimal `json:"market_cap"`
	LastUpdated      string              `json:"last_updated"`
}

// -----------------------------------------------------------------------------
// CoinGecko
// -----------------------------------------------------------------------------

// GeckoMarket represents one entry from GET /coins/markets.
type GeckoMarket struct {
	ID                       string              `json:"id"`
	Symbol                   *string             `json:"symbol"`
	Name                     *string             `json:"name"`
	CurrentPrice             decimal.NullDecimal `json:"current_price"`
	MarketCap                decimal.NullDecimal `json:"market_cap"`
	MarketCapRank            *int                `json:"market_cap_rank"`
	TotalVolume              decimal.NullDecimal `json:"total_volume"`
	PriceChangePercentage24h decimal.NullDecimal `json:"price_change_percentage_24h"`
	LastUpdated              string              `json:"last_updated"`
}

// -----------------------------------------------------------------------------
// Options
// -----------------------------------------------------------------------------

// ListingsOptions configures a listings request.
type ListingsOptions struct {
	Limit    int    // Page size (1-50)
	Currency string // Quote currency (e.g., "USD")
}
