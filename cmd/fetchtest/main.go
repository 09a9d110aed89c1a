package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rickgao/cryptotracker/internal/analysis"
	"github.com/rickgao/cryptotracker/internal/api"
	"github.com/rickgao/cryptotracker/internal/auth"
	"github.com/rickgao/cryptotracker/internal/config"
	"github.com/rickgao/cryptotracker/internal/model"
	"github.com/rickgao/cryptotracker/internal/version"
)

// One-shot smoke test against a live upstream: fetch, analyze, print.
// Reads the same config as the tracker; nothing is persisted.
func main() {
	cfg, err := config.LoadAndValidate(config.Path())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	creds, err := auth.LoadCredentials(api.KeyHeader(cfg.API.Provider), cfg.API.APIKey, cfg.API.APIKeyFile)
	if err != nil {
		log.Fatalf("load credentials: %v", err)
	}

	client := api.NewClient(cfg.API.BaseURL, creds, api.WithTimeout(cfg.API.Timeout))
	fetcher, err := api.NewFetcher(cfg.API.Provider, client, api.ListingsOptions{
		Limit:    cfg.API.Limit,
		Currency: cfg.API.Currency,
	}, nil)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Printf("cryptotracker %s\n", version.String())
	fmt.Printf("Credentials: %s\n", creds.String())

	// Test 1: Fetch
	fmt.Printf("=== Testing %s (%s) ===\n", fetcher.Name(), client.BaseURL())
	start := time.Now()
	set, err := fetcher.Fetch(ctx)
	if err != nil {
		log.Fatalf("Fetch failed (%s): %v", model.KindOf(err), err)
	}
	fmt.Printf("Fetched %d listings in %s\n", set.Len(), time.Since(start).Round(time.Millisecond))

	fmt.Println(strings.Join(model.Columns, " | "))
	for i := 0; i < set.Len() && i < 10; i++ {
		fmt.Printf("  %2d. %s\n", i+1, strings.Join(set.At(i).Fields(), " | "))
	}

	// Test 2: Analyze
	fmt.Println("\n=== Testing Analyzer ===")
	analyzer := analysis.New(analysis.Config{
		Variant:   cfg.Analysis.Variant,
		Rounding:  cfg.Analysis.Rounding,
		Precision: int32(cfg.Analysis.Places()),
	}, nil)
	summary := analyzer.Analyze(set)
	if summary.Empty() {
		fmt.Println("Summary is empty")
		os.Exit(1)
	}
	for _, m := range summary.Metrics() {
		fmt.Printf("%s: %s\n", m.Name, m.String())
	}

	fmt.Println("\n=== All fetch tests passed! ===")
}
