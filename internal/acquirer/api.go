package acquirer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/junlife-hub/house-analysis/internal/config"
	"github.com/junlife-hub/house-analysis/internal/infrastructure"
	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

// Client fetches current-period transaction rows from the Seoul
// open-data API in fixed 1000-row index windows.
type Client struct {
	httpClient *http.Client
	baseURL    string
	service    string
	pageSize   int
	logger     *slog.Logger
}

// NewClient creates an API client against the given base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		service:    config.RTMSServiceName,
		pageSize:   config.APIPageSize,
		logger:     logger.With(slog.String("component", "api_client")),
	}
}

// payload is the service-keyed body of one API page.
type payload struct {
	ListTotalCount int                `json:"list_total_count"`
	Row            []domain.RawRecord `json:"row"`
}

// FetchCurrentPeriod paginates the live API for the given year. Page p
// covers the 1-based inclusive range [1000p+1, 1000p+1000]. Pagination
// stops on a short page, a non-success status, an absent payload key, or
// after maxPages. A transport error aborts pagination and whatever was
// accumulated so far is returned; degraded data keeps the dashboard
// usable. An empty API key short-circuits to an empty result without a
// request.
func (c *Client) FetchCurrentPeriod(ctx context.Context, apiKey string, year, maxPages int) []domain.RawRecord {
	if apiKey == "" {
		c.logger.WarnContext(ctx, "no API key configured, skipping live fetch")
		return nil
	}
	if maxPages <= 0 {
		maxPages = config.DefaultMaxPages
	}

	var all []domain.RawRecord
	for page := 0; page < maxPages; page++ {
		start := page*c.pageSize + 1
		end := start + c.pageSize - 1

		rows, err := c.fetchPage(ctx, apiKey, year, start, end)
		if err != nil {
			// Partial results are acceptable; no retry.
			infrastructure.FetchPagesTotal.WithLabelValues("error").Inc()
			c.logger.WarnContext(ctx, "live fetch aborted",
				slog.Int("page", page),
				slog.String("error", err.Error()))
			return all
		}
		if rows == nil {
			// Non-success status or missing payload key: end of data.
			infrastructure.FetchPagesTotal.WithLabelValues("empty").Inc()
			return all
		}

		infrastructure.FetchPagesTotal.WithLabelValues("ok").Inc()
		all = append(all, rows...)

		if len(rows) < c.pageSize {
			break
		}
	}

	c.logger.InfoContext(ctx, "live fetch complete",
		slog.Int("year", year),
		slog.Int("rows", len(all)))

	return all
}

// fetchPage requests one index window. A nil, nil return means the
// server answered but had no rows to give (non-2xx or absent key).
func (c *Client) fetchPage(ctx context.Context, apiKey string, year, start, end int) ([]domain.RawRecord, error) {
	url := fmt.Sprintf("%s/%s/json/%s/%d/%d/%d", c.baseURL, apiKey, c.service, start, end, year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("live API returned non-success status",
			slog.Int("status", resp.StatusCode),
			slog.Int("start", start))
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	serviceBody, ok := envelope[c.service]
	if !ok {
		// The portal reports errors (bad key, out-of-range window) under
		// a RESULT key instead of the service key.
		c.logger.Warn("live API response missing payload key",
			slog.String("service", c.service),
			slog.Int("start", start))
		return nil, nil
	}

	var p payload
	if err := json.Unmarshal(serviceBody, &p); err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}
	if p.Row == nil {
		p.Row = []domain.RawRecord{}
	}

	return p.Row, nil
}
