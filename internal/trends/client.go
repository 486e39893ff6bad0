package trends

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"travel-trend-blogger/internal/model"
)

var (
	// ErrRateLimited is returned when Google Trends answers 429.
	ErrRateLimited = errors.New("trends: rate limited")
	// ErrNoRelatedWidget is returned when the explore response has no related-queries widget.
	ErrNoRelatedWidget = errors.New("trends: no related queries widget")
)

// Options configures a Client. Zero values fall back to the defaults used by
// the job: en-US, tz offset 360, US, trailing 7 days.
type Options struct {
	BaseURL   string
	Language  string
	TZOffset  *int // minutes; nil means 360, 0 is UTC
	Geo       string
	Timeframe string
	Timeout   time.Duration
}

// Client is a minimal Google Trends client for rising related queries.
// Google Trends has no public API; this follows the explore -> widgetdata
// flow the web UI uses.
type Client struct {
	baseURL   string
	hl        string
	tz        string
	geo       string
	timeframe string
	client    *http.Client

	mu     sync.Mutex
	warmed bool
}

// NewClient creates a new Google Trends client.
func NewClient(opts Options) *Client {
	if strings.TrimSpace(opts.BaseURL) == "" {
		opts.BaseURL = "https://trends.google.com"
	}
	if opts.Language == "" {
		opts.Language = "en-US"
	}
	tz := 360
	if opts.TZOffset != nil {
		tz = *opts.TZOffset
	}
	if opts.Geo == "" {
		opts.Geo = "US"
	}
	if opts.Timeframe == "" {
		opts.Timeframe = "now 7-d"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		hl:        opts.Language,
		tz:        strconv.Itoa(tz),
		geo:       opts.Geo,
		timeframe: opts.Timeframe,
		client:    &http.Client{Timeout: opts.Timeout, Jar: jar},
	}
}

type comparisonItem struct {
	Keyword string `json:"keyword"`
	Time    string `json:"time"`
	Geo     string `json:"geo"`
}

type exploreRequest struct {
	ComparisonItem []comparisonItem `json:"comparisonItem"`
	Category       int              `json:"category"`
	Property       string           `json:"property"`
}

type widget struct {
	ID      string          `json:"id"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

type exploreResponse struct {
	Widgets []widget `json:"widgets"`
}

type relatedResponse struct {
	Default struct {
		RankedList []struct {
			RankedKeyword []model.RisingQuery `json:"rankedKeyword"`
		} `json:"rankedList"`
	} `json:"default"`
}

// RisingQueries returns the "rising" related queries for seed in the
// configured region and timeframe. A nil slice with a nil error means the
// provider had no rising data.
func (c *Client) RisingQueries(ctx context.Context, seed string) ([]model.RisingQuery, error) {
	if err := c.warmup(ctx); err != nil {
		return nil, err
	}
	w, err := c.relatedWidget(ctx, seed)
	if err != nil {
		return nil, err
	}
	q := url.Values{
		"hl":    {c.hl},
		"tz":    {c.tz},
		"req":   {string(w.Request)},
		"token": {w.Token},
	}
	body, err := c.get(ctx, "/trends/api/widgetdata/relatedsearches", q)
	if err != nil {
		return nil, err
	}
	var out relatedResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("trends: decode related searches: %w", err)
	}
	// rankedList[0] is "top", rankedList[1] is "rising"
	if len(out.Default.RankedList) < 2 {
		return nil, nil
	}
	rising := out.Default.RankedList[1].RankedKeyword
	slog.Debug("trends: rising queries", "seed", seed, "count", len(rising))
	return rising, nil
}

// warmup fetches the landing page once so the jar holds the NID cookie the
// API endpoints expect.
func (c *Client) warmup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.warmed {
		return nil
	}
	endpoint := c.baseURL + "/trends/?geo=" + url.QueryEscape(c.geo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("trends: warmup: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("trends: warmup status=%d", resp.StatusCode)
	}
	c.warmed = true
	return nil
}

func (c *Client) relatedWidget(ctx context.Context, seed string) (widget, error) {
	reqBody, err := json.Marshal(exploreRequest{
		ComparisonItem: []comparisonItem{{Keyword: seed, Time: c.timeframe, Geo: c.geo}},
		Category:       0,
		Property:       "",
	})
	if err != nil {
		return widget{}, err
	}
	q := url.Values{
		"hl":  {c.hl},
		"tz":  {c.tz},
		"req": {string(reqBody)},
	}
	body, err := c.get(ctx, "/trends/api/explore", q)
	if err != nil {
		return widget{}, err
	}
	var out exploreResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return widget{}, fmt.Errorf("trends: decode explore: %w", err)
	}
	for _, w := range out.Widgets {
		if strings.HasPrefix(w.ID, "RELATED_QUERIES") {
			return w, nil
		}
	}
	return widget{}, ErrNoRelatedWidget
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	endpoint := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("trends: %s status=%d body=%s", path, resp.StatusCode, truncate(string(b), 200))
	}
	return stripXSSI(b)
}

// stripXSSI drops the ")]}'" guard Google prefixes to JSON responses.
func stripXSSI(b []byte) ([]byte, error) {
	i := bytes.IndexByte(b, '{')
	if i < 0 {
		return nil, fmt.Errorf("trends: response is not JSON: %q", truncate(string(b), 80))
	}
	return b[i:], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
