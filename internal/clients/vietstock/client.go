// Package vietstock provides a client for the vietstock corporate events feed
package vietstock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/models"
)

const (
	DefaultBaseURL   = "https://finance.vietstock.vn"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 2
	DefaultPageSize  = 20

	eventsPagePath = "/lich-su-kien.htm"
	eventsDataPath = "/data/eventstypedata"
	tokenField     = "__RequestVerificationToken"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// ErrTokenNotFound is returned when the events page carries no verification token
var ErrTokenNotFound = errors.New("verification token not found")

// Client fetches corporate events. Each FetchEvents call opens a fresh cookie session.
type Client struct {
	baseURL  string
	timeout  time.Duration
	pageSize int
	logger   *common.Logger
	limiter  *rate.Limiter
}

// ClientOption configures the vietstock client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithPageSize sets the page size used when a query leaves it empty
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithRateLimit sets requests per second
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// NewClient creates a new vietstock client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		timeout:  DefaultTimeout,
		pageSize: DefaultPageSize,
		logger:   common.NewSilentLogger(),
		limiter:  rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchEvents loads the events page for its session cookie and verification token,
// then posts the filter form and returns the first result set.
func (c *Client) FetchEvents(ctx context.Context, q models.EventQuery) ([]models.MarketEvent, error) {
	if q.PageSize == 0 {
		q.PageSize = c.pageSize
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	hc := &http.Client{Jar: jar, Timeout: c.timeout}

	token, err := c.fetchToken(ctx, hc)
	if err != nil {
		return nil, err
	}

	form := eventForm(q, token)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+eventsDataPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.baseURL+eventsPagePath)

	c.logger.Debug().
		Str("from", q.FromDate).
		Str("to", q.ToDate).
		Str("code", q.Code).
		Msg("Vietstock events request")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("events API failed: %d - %s", resp.StatusCode, string(body))
	}

	events, err := decodeEvents(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(events)).Msg("Vietstock events fetched")
	return events, nil
}

func (c *Client) fetchToken(ctx context.Context, hc *http.Client) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+eventsPagePath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create page request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to load events page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("events page failed with status: %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse events page: %w", err)
	}

	token := findToken(doc)
	if token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

// findToken walks the document for <input name="__RequestVerificationToken" value="...">.
func findToken(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "input" && attr(n, "name") == tokenField {
		return attr(n, "value")
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if token := findToken(child); token != "" {
			return token
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func eventForm(q models.EventQuery, token string) url.Values {
	eventType := q.EventTypeID
	if eventType == 0 {
		eventType = 1
	}
	catID := q.CatID
	if catID == 0 {
		catID = -1
	}
	page := q.Page
	if page == 0 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	return url.Values{
		"eventTypeID": {strconv.Itoa(eventType)},
		"channelID":   {strconv.Itoa(q.ChannelID)},
		"code":        {q.Code},
		"catID":       {strconv.Itoa(catID)},
		"fDate":       {q.FromDate},
		"tDate":       {q.ToDate},
		"page":        {strconv.Itoa(page)},
		"pageSize":    {strconv.Itoa(pageSize)},
		"orderBy":     {"Date1"},
		"orderDir":    {"DESC"},
		tokenField:    {token},
	}
}

// decodeEvents unwraps the [[event, ...], [total]] response; only the first set holds events.
func decodeEvents(r io.Reader) ([]models.MarketEvent, error) {
	var sets []json.RawMessage
	if err := json.NewDecoder(r).Decode(&sets); err != nil {
		return nil, fmt.Errorf("failed to decode events response: %w", err)
	}
	if len(sets) == 0 {
		return nil, nil
	}

	var events []models.MarketEvent
	if err := json.Unmarshal(sets[0], &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}
