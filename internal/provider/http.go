package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/atomicstack/integration-selector/internal/backend"
	"github.com/atomicstack/integration-selector/internal/selector"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// HTTP queries an endpoint with GET <url>?term=&page=&per_page= and parses
// the JSON body with ParseOptions.
type HTTP struct {
	endpoint   *url.URL
	path       string
	httpClient *http.Client
	throttle   *backend.Throttle
}

// NewHTTP prepares an HTTP provider.
func NewHTTP(endpoint, path string, timeout, interval time.Duration) (*HTTP, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse endpoint: unsupported scheme %q", u.Scheme)
	}
	return &HTTP{
		endpoint:   u,
		path:       path,
		httpClient: &http.Client{Timeout: timeout},
		throttle:   backend.NewThrottle(interval),
	}, nil
}

func (h *HTTP) Fetch(ctx context.Context, q selector.Query) (selector.Page, error) {
	if err := h.throttle.Wait(ctx); err != nil {
		return selector.Page{}, err
	}
	u := *h.endpoint
	params := u.Query()
	params.Set("term", q.Term)
	params.Set("page", strconv.Itoa(q.Page))
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return selector.Page{}, fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return selector.Page{}, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return selector.Page{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return selector.Page{}, fmt.Errorf("http status %d", resp.StatusCode)
	}
	return ParseOptions(body, h.path)
}
