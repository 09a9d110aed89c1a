// Package model defines shared data types used across the tracker.
//
// Conventions:
//   - Monetary and percentage values: shopspring decimal, never float64
//   - Absent upstream fields: Null* wrappers with Valid == false
//   - Listing order: market capitalization descending, as returned upstream
package model
