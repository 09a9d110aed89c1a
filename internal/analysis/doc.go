// Package analysis derives summary statistics from a ListingSet.
//
// The Analyzer never fails outward: an empty set yields an empty Summary
// with a warning, and a computation failure (for example, a set where every
// price is absent) is logged as an analysis error and also yields an empty
// Summary.
//
// Two metric sets are available:
//   - basic: top 5 by market cap, average price, highest and lowest 24h change
//   - extended: basic plus median price, total count and total market cap
//
// Currency and percentage values are rounded to a fixed precision unless
// rounding is disabled.
package analysis
