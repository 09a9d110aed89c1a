package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIError represents a non-success response from a listings API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("listings api error %d: %s", e.StatusCode, e.Message)
}

// doRequest performs an HTTP request with the given method and path.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accepts", "application/json")
	c.creds.Apply(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
			Body:       body,
		}
	}

	return body, nil
}

// errorMessage prefers a provider-supplied message over the status text.
func errorMessage(code int, body []byte) string {
	var envelope struct {
		Status struct {
			ErrorMessage string `json:"error_message"`
		} `json:"status"`
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		if envelope.Status.ErrorMessage != "" {
			return envelope.Status.ErrorMessage
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return http.StatusText(code)
}

// get performs a single GET request and decodes the JSON body.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
