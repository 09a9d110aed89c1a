// Package sink persists each cycle's ListingSet and Summary.
//
// Strategies, selected once at startup by sink.kind:
//   - csv: flat file rewritten every cycle, analysis text appended below the table
//   - xlsx: workbook with a data sheet and an analysis sheet, saved every cycle
//   - postgres: crypto_listings and crypto_analysis tables replaced in one transaction
//   - redis: listings JSON, analysis hash and update time replaced atomically
//
// Every strategy holds current state only. Write failures are returned as
// model.KindPersistence errors.
package sink
