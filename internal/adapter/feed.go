package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/amishk599/jobfeed/internal/model"
)

// DefaultFeedURL is the raw JSON export of the new-grad data science job board.
const DefaultFeedURL = "https://raw.githubusercontent.com/zapplyjobs/New-Grad-Data-Science-Jobs-2026/main/jobboard/src/data/transformed_jobs.json"

var _ model.Fetcher = (*FeedAdapter)(nil)

// FeedAdapter fetches listings from a URL serving a JSON array of objects.
type FeedAdapter struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewFeedAdapter creates an adapter for the feed at url. The client's timeout
// bounds each fetch.
func NewFeedAdapter(url string, client *http.Client, logger *slog.Logger) *FeedAdapter {
	return &FeedAdapter{
		url:    url,
		client: client,
		logger: logger,
	}
}

// FetchListings downloads the feed and extracts listings in feed order.
//
// A non-2xx status is returned as *model.HTTPError, and a body that is not
// JSON is an error as well. Valid JSON that is not an array wraps
// model.ErrSchema. Array elements that are not objects are skipped.
func (a *FeedAdapter) FetchListings(ctx context.Context) ([]model.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed fetch %s: %w", a.url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed fetch %s: %w", a.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: model.ParseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("feed fetch %s: unexpected status", a.url),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed fetch %s: reading body: %w", a.url, err)
	}

	// The whole body must be one JSON value; trailing bytes are a truncated
	// or mixed response, not a feed.
	var body json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("feed fetch %s: decoding body: %w", a.url, err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: feed %s: body is not a JSON array", model.ErrSchema, a.url)
	}

	listings := make([]model.Listing, 0, len(items))
	skipped := 0
	for i, item := range items {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			skipped++
			continue
		}
		var l model.Listing
		if err := json.Unmarshal(item, &l); err != nil {
			a.logger.Warn("skipping malformed feed entry", "index", i, "error", err)
			skipped++
			continue
		}
		listings = append(listings, l)
	}

	a.logger.Debug("feed fetched", "url", a.url, "entries", len(items), "listings", len(listings), "skipped", skipped)
	return listings, nil
}
