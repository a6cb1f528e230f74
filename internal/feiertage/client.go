package feiertage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public feiertage-api.de endpoint.
	DefaultBaseURL = "https://feiertage-api.de/api/"

	defaultTimeout = 5 * time.Second
)

// Client wraps the feiertage-api.de JSON API. Every Fetch is a fresh
// passthrough call: no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new feiertage-api.de client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch retrieves the holidays for one year. land and nurDaten are only
// appended to the query when supplied, mirroring the upstream contract.
//
// Failure mapping:
//   - transport error / timeout -> ErrUnreachable
//   - non-200 upstream status   -> *StatusError with that code
//   - body not a JSON object    -> ErrMalformed
func (c *Client) Fetch(ctx context.Context, year int, land string, nurDaten *int) (*HolidaySet, error) {
	params := url.Values{}
	params.Set("jahr", strconv.Itoa(year))
	if land != "" {
		params.Set("nur_land", land)
	}
	if nurDaten != nil {
		params.Set("nur_daten", strconv.Itoa(*nurDaten))
	}

	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Upstream call failed",
			zap.String("url", reqURL),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Upstream returned error status",
			zap.Int("status", resp.StatusCode),
			zap.Int("year", year),
			zap.String("land", land))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	// The top level must be an object mapping holiday names to entries.
	// A valid-JSON array or scalar is just as unusable as garbage.
	var entries map[string]Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		c.logger.Warn("Upstream body not a holiday mapping",
			zap.Int("year", year),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if entries == nil {
		// JSON null decodes without error but is not a mapping
		return nil, fmt.Errorf("%w: body is null", ErrMalformed)
	}

	c.logger.Info("Holidays fetched",
		zap.Int("year", year),
		zap.String("land", land),
		zap.Int("count", len(entries)))

	return &HolidaySet{Raw: body, Entries: entries}, nil
}
