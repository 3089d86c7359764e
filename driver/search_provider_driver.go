package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// SearchProviderDriver is an HTTP client for a Tavily-style web search API.
// Transient failures are retried with exponential backoff here; callers
// above the adapter boundary never retry.
type SearchProviderDriver struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxTries   uint
}

type searchRequestPayload struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	Topic         string `json:"topic"`
	MaxResults    int    `json:"max_results"`
	Days          int    `json:"days,omitempty"`
	IncludeAnswer bool   `json:"include_answer"`
	IncludeRaw    bool   `json:"include_raw_content"`
}

type searchResponsePayload struct {
	Results []ProviderResultDriver `json:"results"`
	Answer  string                 `json:"answer"`
}

func NewSearchProviderDriver(baseURL, apiKey string, timeout time.Duration) *SearchProviderDriver {
	return &SearchProviderDriver{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxTries: 3,
	}
}

// Search runs one provider query. 5xx responses and transport errors are
// retried; 4xx responses are permanent.
func (d *SearchProviderDriver) Search(ctx context.Context, query, topic string, limit, recencyDays int) ([]ProviderResultDriver, string, error) {
	payload := searchRequestPayload{
		APIKey:        d.apiKey,
		Query:         query,
		Topic:         topic,
		MaxResults:    limit,
		Days:          recencyDays,
		IncludeAnswer: false,
		IncludeRaw:    true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", &DriverError{Op: "Search", Err: err.Error()}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 10 * time.Second

	resp, err := backoff.Retry(ctx, func() (*searchResponsePayload, error) {
		return d.doSearch(ctx, body)
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(d.maxTries))
	if err != nil {
		return nil, "", &DriverError{Op: "Search", Err: err.Error()}
	}

	return resp.Results, resp.Answer, nil
}

func (d *SearchProviderDriver) doSearch(ctx context.Context, body []byte) (*searchResponsePayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 10<<20))
	if err != nil {
		return nil, err
	}

	if httpResp.StatusCode >= 500 {
		return nil, fmt.Errorf("provider returned %d", httpResp.StatusCode)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("provider returned %d: %s", httpResp.StatusCode, respBody))
	}

	var parsed searchResponsePayload
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("malformed provider response: %w", err))
	}

	return &parsed, nil
}
