// Package api provides REST clients for cryptocurrency listings providers.
//
// Providers:
//   - CoinMarketCap: GET /v1/cryptocurrency/listings/latest (X-CMC_PRO_API_KEY header)
//     Sandbox: https://sandbox-api.coinmarketcap.com
//     Production: https://pro-api.coinmarketcap.com
//   - CoinGecko: GET /coins/markets (optional x-cg-demo-api-key header)
//     Public: https://api.coingecko.com/api/v3
//
// Each provider has a Fetcher that normalizes one page of results into a
// model.ListingSet. Requests are never retried.
package api
