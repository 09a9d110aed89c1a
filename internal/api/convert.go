package api

import (
	"database/sql"
	"strings"

	"github.com/rickgao/cryptotracker/internal/model"
)

// toNullString converts an optional JSON string. Absent and null stay invalid.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// toSymbol upper-cases an optional ticker symbol.
func toSymbol(s *string) sql.NullString {
	ns := toNullString(s)
	ns.String = strings.ToUpper(ns.String)
	return ns
}

// quote returns the quote for currency, matching case-insensitively.
// Returns nil when the currency is missing.
func (c *CMCCoin) quote(currency string) *CMCQuote {
	if q, ok := c.Quote[strings.ToUpper(currency)]; ok {
		return q
	}
	for k, q := range c.Quote {
		if strings.EqualFold(k, currency) {
			return q
		}
	}
	return nil
}

// ToListing converts a CMCCoin to model.Listing using the given quote currency.
func (c *CMCCoin) ToListing(currency string) model.Listing {
	l := model.Listing{
		Name:   toNullString(c.Name),
		Symbol: toSymbol(c.Symbol),
	}

	q := c.quote(currency)
	if q == nil {
		return l
	}

	l.Price = q.Price
	l.MarketCap = q.MarketCap
	l.Volume24h = q.Volume24h
	l.PercentChange24h = q.PercentChange24h
	return l
}

// ToListing converts a GeckoMarket to model.Listing.
func (m *GeckoMarket) ToListing() model.Listing {
	return model.Listing{
		Name:             toNullString(m.Name),
		Symbol:           toSymbol(m.Symbol),
		Price:            m.CurrentPrice,
		MarketCap:        m.MarketCap,
		Volume24h:        m.TotalVolume,
		PercentChange24h: m.PriceChangePercentage24h,
	}
}
