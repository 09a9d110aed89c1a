package model

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Column headers shared by every sink, in row order.
const (
	ColName             = "Name"
	ColSymbol           = "Symbol"
	ColPrice            = "Current Price (USD)"
	ColMarketCap        = "Market Cap"
	ColVolume24h        = "24h Trading Volume"
	ColPercentChange24h = "24h Price Change (%)"
)

// Columns lists the tabular header for a ListingSet.
var Columns = []string{
	ColName,
	ColSymbol,
	ColPrice,
	ColMarketCap,
	ColVolume24h,
	ColPercentChange24h,
}

// -----------------------------------------------------------------------------
// Listings
// -----------------------------------------------------------------------------

// Listing is one asset's market snapshot at fetch time.
type Listing struct {
	Name             sql.NullString      // Display name (e.g., "Bitcoin")
	Symbol           sql.NullString      // Upper-cased ticker (e.g., "BTC")
	Price            decimal.NullDecimal // Price in the quote currency
	MarketCap        decimal.NullDecimal // Market capitalization
	Volume24h        decimal.NullDecimal // 24-hour trading volume
	PercentChange24h decimal.NullDecimal // Signed 24-hour price change (%)
}

// Fields returns the listing as display strings in Columns order.
// Absent values render as the empty string.
func (l Listing) Fields() []string {
	return []string{
		nullString(l.Name),
		nullString(l.Symbol),
		nullDecimal(l.Price),
		nullDecimal(l.MarketCap),
		nullDecimal(l.Volume24h),
		nullDecimal(l.PercentChange24h),
	}
}

func nullString(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

func nullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// ListingSet is the ordered result of one fetch. It is not modified after
// construction; each cycle produces a new set.
type ListingSet struct {
	listings  []Listing
	fetchedAt time.Time
	source    string
}

// NewListingSet creates a ListingSet from listings in upstream order.
// The slice is copied.
func NewListingSet(source string, fetchedAt time.Time, listings []Listing) ListingSet {
	cp := make([]Listing, len(listings))
	copy(cp, listings)
	return ListingSet{
		listings:  cp,
		fetchedAt: fetchedAt,
		source:    source,
	}
}

// Len returns the number of listings.
func (s ListingSet) Len() int { return len(s.listings) }

// Empty reports whether the set holds no listings.
func (s ListingSet) Empty() bool { return len(s.listings) == 0 }

// At returns the i-th listing.
func (s ListingSet) At(i int) Listing { return s.listings[i] }

// Listings returns a copy of the listings in upstream order.
func (s ListingSet) Listings() []Listing {
	cp := make([]Listing, len(s.listings))
	copy(cp, s.listings)
	return cp
}

// FetchedAt returns when the set was fetched.
func (s ListingSet) FetchedAt() time.Time { return s.fetchedAt }

// Source returns the provider that produced the set.
func (s ListingSet) Source() string { return s.source }
