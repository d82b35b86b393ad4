package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
)

// requestIDHeader matches the header the API echoes back.
const requestIDHeader = "X-Request-ID"

// HTTPClient wraps http.Client with timeout and per-run request ids.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	runID   string
	seq     atomic.Int64
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(baseURL, runID string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		runID:   runID,
	}
}

// requests returns the number of requests sent so far.
func (c *HTTPClient) requests() int {
	return int(c.seq.Load())
}

// Get performs a GET request. Every request carries runID-seq as its
// request id so server logs can be matched to the report.
func (c *HTTPClient) Get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	n := c.seq.Add(1)
	req.Header.Set(requestIDHeader, c.runID+"-"+strconv.FormatInt(n, 10))
	req.Header.Set("Accept", "application/json")
	return c.client.Do(req)
}

// statusError is returned when the server answers with an unexpected status.
type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

// getJSON fetches path and decodes a 200 answer into v.
func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	resp, err := c.Get(ctx, path, params)
	if err != nil {
		return err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &statusError{Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (c *HTTPClient) fetchPlans(ctx context.Context, params url.Values) (plansResponse, error) {
	var out plansResponse
	err := c.getJSON(ctx, "/api/plans", params, &out)
	return out, err
}

// fetchSummary returns the region summary. A no-data answer is not an error.
func (c *HTTPClient) fetchSummary(ctx context.Context, region plan.Region) (query.Summary, error) {
	params := url.Values{}
	if region != plan.RegionNone {
		params.Set("region", string(region))
	}
	var out query.Summary
	err := c.getJSON(ctx, "/api/summary", params, &out)
	return out, err
}

func (c *HTTPClient) fetchDetail(ctx context.Context, id int) (detailResponse, error) {
	var out detailResponse
	err := c.getJSON(ctx, "/api/plans/"+strconv.Itoa(id), nil, &out)
	return out, err
}

// checkHealth verifies the service answers /healthz.
func (c *HTTPClient) checkHealth(ctx context.Context) error {
	resp, err := c.Get(ctx, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	_, _ = readResponseBody(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}
