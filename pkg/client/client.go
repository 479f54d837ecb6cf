package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/waypost/waypost/pkg/location"
)

const locationPath = "/api/location"

// Client talks to the location service. Each call is a single attempt with
// no retry; failures are surfaced to the caller and the next tick tries
// again.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a client for the service at baseURL. Requests time out after
// the given duration on top of any context deadline.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Report posts a sampled position and returns the stored record. Delivery is
// at most once: a failed report is dropped, never queued.
func (c *Client) Report(ctx context.Context, pos location.Position) (*LocationRecord, error) {
	// Coordinates go on the wire as JSON numbers with the decimal's exact
	// textual representation.
	body, err := json.Marshal(map[string]json.Number{
		"latitude":  json.Number(pos.Latitude.String()),
		"longitude": json.Number(pos.Longitude.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode position: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+locationPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "report", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, c.serviceError("report", resp)
	}

	var record LocationRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode report response: %w", err)
	}

	c.logger.Debug().
		Int64("id", record.ID).
		Str("latitude", record.Latitude.String()).
		Str("longitude", record.Longitude.String()).
		Msg("Reported position")
	return &record, nil
}

// FetchLatest retrieves the most recently stored location. An empty store is
// reported as ErrNotFound, distinct from transport and service failures.
func (c *Client) FetchLatest(ctx context.Context) (*LocationRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+locationPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "fetch latest", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var record LocationRecord
		if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode fetch response: %w", err)
		}
		return &record, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, c.serviceError("fetch latest", resp)
	}
}

// serviceError builds a ServiceError from a non-success response, keeping
// the server's diagnostic message when the body parses.
func (c *Client) serviceError(op string, resp *http.Response) error {
	svcErr := &ServiceError{Op: op, StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return svcErr
	}

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Message != "" {
			svcErr.Message = apiErr.Message
		} else {
			svcErr.Message = apiErr.Error
		}
	}
	return svcErr
}
