package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rickgao/cryptotracker/internal/auth"
)

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		creds := &auth.Credentials{Header: auth.HeaderCoinMarketCap, Key: "test-key"}
		c := NewClient("https://api.example.com", creds)

		if c.baseURL != "https://api.example.com" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://api.example.com")
		}
		if c.creds != creds {
			t.Error("credentials not set")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with timeout option", func(t *testing.T) {
		c := NewClient("https://api.example.com", nil, WithTimeout(5*time.Second))
		if c.httpClient.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 5*time.Second)
		}
	})

	t.Run("with logger option", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		c := NewClient("https://api.example.com", nil, WithLogger(logger))
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
	})

	t.Run("with custom HTTP client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		c := NewClient("https://api.example.com", nil, WithHTTPClient(customClient))
		if c.httpClient != customClient {
			t.Error("custom HTTP client not set")
		}
	})

	t.Run("nil credentials", func(t *testing.T) {
		c := NewClient("https://api.example.com", nil)
		if c.creds != nil {
			t.Errorf("creds = %v, want nil", c.creds)
		}
		if c.BaseURL() != "https://api.example.com" {
			t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), "https://api.example.com")
		}
	})
}

// TestAPIError tests the APIError type.
func TestAPIError(t *testing.T) {
	err := &APIError{
		StatusCode: 401,
		Message:    "This API Key is invalid.",
		Body:       []byte(`{"status": {"error_code": 1001}}`),
	}
	expected := "listings api error 401: This API Key is invalid."
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want string
	}{
		{"cmc status envelope", 401, `{"status":{"error_code":1001,"error_message":"This API Key is invalid."}}`, "This API Key is invalid."},
		{"gecko error field", 429, `{"error":"rate limited"}`, "rate limited"},
		{"plain text body", 500, `internal error`, "Internal Server Error"},
		{"empty envelope", 404, `{}`, "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage(tt.code, []byte(tt.body)); got != tt.want {
				t.Errorf("errorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestDoRequest tests the HTTP request functionality.
func TestDoRequest(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Accept") != "application/json" {
				t.Errorf("Accept header = %q, want %q", r.Header.Get("Accept"), "application/json")
			}
			if r.Header.Get(auth.HeaderCoinMarketCap) != "test-key" {
				t.Errorf("%s header = %q, want %q", auth.HeaderCoinMarketCap, r.Header.Get(auth.HeaderCoinMarketCap), "test-key")
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status": "ok"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, &auth.Credentials{Header: auth.HeaderCoinMarketCap, Key: "test-key"})
		body, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != `{"status": "ok"}` {
			t.Errorf("body = %q, want %q", string(body), `{"status": "ok"}`)
		}
	})

	t.Run("request without API key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(auth.HeaderCoinMarketCap) != "" {
				t.Errorf("key header should be empty, got %q", r.Header.Get(auth.HeaderCoinMarketCap))
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)
		_, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("4xx error returns APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "not found"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)
		_, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %T", err)
		}
		if apiErr.StatusCode != 404 {
			t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, 404)
		}
		if !strings.Contains(string(apiErr.Body), "not found") {
			t.Errorf("Body should contain 'not found', got %q", string(apiErr.Body))
		}
	})

	t.Run("5xx error is not retried", func(t *testing.T) {
		var attempts int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`internal error`))
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)
		_, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if attempts != 1 {
			t.Errorf("attempts = %d, want 1", attempts)
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := c.doRequest(ctx, http.MethodGet, "/test", nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "context canceled") {
			t.Errorf("error should contain 'context canceled', got %v", err)
		}
	})

	t.Run("client timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, WithTimeout(20*time.Millisecond))
		_, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil)
		if err == nil {
			t.Fatal("expected timeout error, got nil")
		}
	})
}

func TestGetListingsLatest_Query(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/cryptocurrency/listings/latest" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/v1/cryptocurrency/listings/latest")
		}
		q := r.URL.Query()
		if q.Get("start") != "1" {
			t.Errorf("start = %q, want %q", q.Get("start"), "1")
		}
		if q.Get("limit") != "50" {
			t.Errorf("limit = %q, want %q", q.Get("limit"), "50")
		}
		if q.Get("convert") != "USD" {
			t.Errorf("convert = %q, want %q", q.Get("convert"), "USD")
		}
		w.Write([]byte(`{"data": [], "status": {"error_code": 0}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	resp, err := c.GetListingsLatest(context.Background(), ListingsOptions{Limit: 50, Currency: "usd"})
	if err != nil {
		t.Fatalf("GetListingsLatest failed: %v", err)
	}
	if len(resp.Data) != 0 {
		t.Errorf("len(Data) = %d, want 0", len(resp.Data))
	}
}

func TestGetCoinMarkets_Query(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/markets" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/coins/markets")
		}
		q := r.URL.Query()
		want := map[string]string{
			"vs_currency": "usd",
			"order":       "market_cap_desc",
			"per_page":    "10",
			"page":        "1",
			"sparkline":   "false",
		}
		for k, v := range want {
			if q.Get(k) != v {
				t.Errorf("%s = %q, want %q", k, q.Get(k), v)
			}
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	markets, err := c.GetCoinMarkets(context.Background(), ListingsOptions{Limit: 10, Currency: "USD"})
	if err != nil {
		t.Fatalf("GetCoinMarkets failed: %v", err)
	}
	if len(markets) != 0 {
		t.Errorf("len(markets) = %d, want 0", len(markets))
	}
}
