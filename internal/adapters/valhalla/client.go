// Package valhalla implements ports.RoutingEngine against a Valhalla-compatible
// routing engine speaking its JSON-over-HTTP API.
package valhalla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/imanolea/wayfinder/internal/pkg/metrics"
)

// Client talks to a routing engine instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates an engine client. baseURL is the engine root, without a
// trailing slash (e.g. http://valhalla:8002).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// RemoteError is a structured rejection from the engine (HTTP 4xx). The
// engine reports its own error code alongside the HTTP status it chose.
type RemoteError struct {
	ErrorCode  int    `json:"error_code"`
	Message    string `json:"error"`
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("engine rejected request: %s (code %d, http %d %s)",
		e.Message, e.ErrorCode, e.StatusCode, e.Status)
}

// post sends a JSON request to the given engine action and decodes the
// response into out. 4xx responses are returned as *RemoteError.
func (c *Client) post(ctx context.Context, action string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+action, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	metrics.EngineRequestDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EngineRequests.WithLabelValues(action, "transport_error").Inc()
		return fmt.Errorf("%s request: %w", action, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 && res.StatusCode < 500 {
		metrics.EngineRequests.WithLabelValues(action, "rejected").Inc()
		var remote RemoteError
		if err := json.NewDecoder(res.Body).Decode(&remote); err != nil {
			return fmt.Errorf("%s returned %s with undecodable body: %w", action, res.Status, err)
		}
		return &remote
	}
	if res.StatusCode >= 500 {
		metrics.EngineRequests.WithLabelValues(action, "upstream_error").Inc()
		io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return fmt.Errorf("%s returned %s", action, res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		metrics.EngineRequests.WithLabelValues(action, "bad_response").Inc()
		return fmt.Errorf("decode %s response: %w", action, err)
	}
	metrics.EngineRequests.WithLabelValues(action, "ok").Inc()
	return nil
}

// location is the engine's coordinate wire form, shared by all actions.
type location struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Type string  `json:"type,omitempty"` // "break", "through", "via", "break_through"
}
