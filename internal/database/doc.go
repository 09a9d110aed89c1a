// Package database provides the PostgreSQL connection pool and schema for
// the postgres sink.
//
// Tables hold the latest cycle only:
//   - crypto_listings: one row per listing, keyed by upstream rank
//   - crypto_analysis: one row per metric, keyed by display position
package database
