package naptan

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexandergillon/metromap/pkg/cache"
	apperrors "github.com/alexandergillon/metromap/pkg/errors"
)

// DefaultBaseURL is the transit authority's stop-point API.
const DefaultBaseURL = "https://api.tfl.gov.uk"

// DefaultCacheTTL is how long fetched stop-point responses stay cached.
// Stop data changes rarely.
const DefaultCacheTTL = 7 * 24 * time.Hour

// stationNameSuffix is stripped from stop-point common names.
const stationNameSuffix = "Underground Station"

// Client fetches stop points from the transit authority API, with response
// caching and retry on transient failures.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	baseURL string
	ttl     time.Duration
}

// NewClient creates a Client. Pass cache.NewNullCache() to disable caching.
func NewClient(c cache.Cache) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   c,
		baseURL: DefaultBaseURL,
		ttl:     DefaultCacheTTL,
	}
}

// NewClientWithBaseURL creates a Client against a non-default API root.
// Used by tests to point at a local server.
func NewClientWithBaseURL(c cache.Cache, baseURL string) *Client {
	client := NewClient(c)
	client.baseURL = strings.TrimSuffix(baseURL, "/")
	return client
}

// stopPoint is the subset of the API's stop-point record we consume.
type stopPoint struct {
	CommonName string `json:"commonName"`
	NaptanID   string `json:"naptanId"`
}

// StopPoints fetches the stops of one metro line and returns them as
// naptan.json entries, names cleaned of the station suffix. If refresh is
// false, a cached response is used when available.
func (c *Client) StopPoints(ctx context.Context, lineName string, refresh bool) ([]Entry, error) {
	url := fmt.Sprintf("%s/line/%s/StopPoints", c.baseURL, lineName)
	key := cache.Key("tfl-stoppoints", url)

	var body []byte
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			body = data
		}
	}

	if body == nil {
		err := cache.RetryWithBackoff(ctx, func() error {
			data, err := c.get(ctx, url)
			if err != nil {
				return err
			}
			body = data
			return nil
		})
		if err != nil {
			code := apperrors.ErrCodeNetwork
			if stderrors.Is(err, cache.ErrNotFound) {
				code = apperrors.ErrCodeNotFound
			}
			return nil, apperrors.Wrap(code, err, "fetching stop points for line %s", lineName)
		}
		_ = c.cache.Set(ctx, key, body, c.ttl)
	}

	var stops []stopPoint
	if err := json.Unmarshal(body, &stops); err != nil {
		return nil, fmt.Errorf("decode stop points for %s: %w", lineName, err)
	}

	entries := make([]Entry, 0, len(stops))
	for _, stop := range stops {
		name := strings.TrimSpace(strings.TrimSuffix(stop.CommonName, stationNameSuffix))
		entries = append(entries, Entry{
			MetroLine: lineName,
			Name:      name,
			NaptanID:  stop.NaptanID,
		})
	}
	return entries, nil
}

// FetchAll fetches stop points for every named line, in order, and returns
// the combined entry list ready to be written as naptan.json.
func (c *Client) FetchAll(ctx context.Context, lineNames []string, refresh bool) ([]Entry, error) {
	var entries []Entry
	for _, lineName := range lineNames {
		lineEntries, err := c.StopPoints(ctx, lineName, refresh)
		if err != nil {
			return nil, fmt.Errorf("fetch stop points for %s: %w", lineName, err)
		}
		entries = append(entries, lineEntries...)
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &cache.RetryableError{Err: fmt.Errorf("%w: %v", cache.ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &cache.RetryableError{Err: fmt.Errorf("%w: %v", cache.ErrNetwork, err)}
	}
	return body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code >= 500:
		return &cache.RetryableError{Err: fmt.Errorf("%w: status %d", cache.ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}
