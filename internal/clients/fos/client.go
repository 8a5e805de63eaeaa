// Package fos provides a client for the brokerage FOS REST API
package fos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/models"
)

const (
	DefaultSSOURL    = "https://derivativeapisso.navisoft.com.vn"
	DefaultBaseURL   = "https://derivativeapi.navisoft.com.vn"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// AuthPath is the SSO login endpoint.
	AuthPath = "/api/v1/Auth"
)

// FallbackLoginPaths are alternate login endpoints on the API host.
var FallbackLoginPaths = []string{"/api/v1/Auth", "/fos/v1/Auth/login"}

// ErrNoToken is returned when a login response carries no token in any known field.
var ErrNoToken = errors.New("login response contained no token")

// Client implements the FOSClient interface
type Client struct {
	ssoURL         string
	baseURL        string
	creds          models.Credentials
	loginFallbacks []string
	httpClient     *http.Client
	logger         *common.Logger
	limiter        *rate.Limiter

	mu    sync.Mutex
	token string
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithSSOURL sets the SSO base URL used for login
func WithSSOURL(ssoURL string) ClientOption {
	return func(c *Client) {
		c.ssoURL = ssoURL
	}
}

// WithBaseURL sets the API base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLoginFallbacks sets API-host paths tried, once each, after the SSO login fails
func WithLoginFallbacks(paths ...string) ClientOption {
	return func(c *Client) {
		c.loginFallbacks = paths
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new FOS client for one set of credentials.
// The token obtained by Login is cached for the lifetime of the client.
func NewClient(creds models.Credentials, opts ...ClientOption) *Client {
	if creds.LoginType == "" {
		creds.LoginType = "ALL"
	}
	if creds.GrantType == "" {
		creds.GrantType = "password"
	}

	c := &Client{
		ssoURL:  DefaultSSOURL,
		baseURL: DefaultBaseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is a non-200 HTTP response
type APIError struct {
	StatusCode int
	Body       string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API failed: %d - %s", e.StatusCode, e.Body)
}

// EnvelopeError is an HTTP 200 response whose envelope code is not "0"
type EnvelopeError struct {
	Code     string
	Message  string
	Endpoint string
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("API error: %s - %s", e.Code, e.Message)
}

// loginResponse covers the three shapes the auth endpoints return the token in.
type loginResponse struct {
	Token       string          `json:"token"`
	AccessToken string          `json:"accessToken"`
	Data        json.RawMessage `json:"data"`
}

func (r *loginResponse) extract() string {
	if r.Token != "" {
		return r.Token
	}
	if len(r.Data) > 0 {
		var data struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(r.Data, &data); err == nil && data.Token != "" {
			return data.Token
		}
	}
	return r.AccessToken
}

// Token returns the cached token, empty before a successful Login.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Login authenticates and caches the token. Calls after the first success are no-ops.
// The SSO endpoint is tried first, then each fallback path once; nothing is retried.
func (c *Client) Login(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	endpoints := []string{c.ssoURL + AuthPath}
	for _, p := range c.loginFallbacks {
		endpoints = append(endpoints, c.baseURL+p)
	}

	var errs []error
	for _, endpoint := range endpoints {
		token, err := c.login(ctx, endpoint)
		if err == nil {
			c.token = token
			c.logToken(endpoint, token)
			return token, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("FOS login failed")
		errs = append(errs, err)
	}

	if len(errs) == 1 {
		return "", errs[0]
	}
	return "", fmt.Errorf("login failed on all %d endpoints: %w", len(endpoints), errors.Join(errs...))
}

func (c *Client) login(ctx context.Context, endpoint string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(c.creds)
	if err != nil {
		return "", fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("url", endpoint).Str("user", c.creds.UserName).Msg("FOS login request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(b), Endpoint: endpoint}
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}

	token := lr.extract()
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (c *Client) logToken(endpoint, token string) {
	ev := c.logger.Info().Str("endpoint", endpoint).Int("token_length", len(token))
	if info, err := ParseTokenInfo(token); err == nil {
		ev = ev.Str("subject", info.Subject)
		if !info.ExpiresAt.IsZero() {
			ev = ev.Time("expires_at", info.ExpiresAt)
		}
	}
	ev.Msg("FOS login succeeded")
}

// get performs a rate-limited, authenticated GET and unwraps the envelope.
func get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, *models.Meta, error) {
	var zero T

	token, err := c.Login(ctx)
	if err != nil {
		return zero, nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return zero, nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return zero, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "text/plain")

	c.logger.Debug().Str("url", path).Str("query", query.Encode()).Msg("FOS API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return zero, nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Endpoint:   path,
		}
	}

	var env models.Envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.OK() {
		return zero, nil, &EnvelopeError{Code: env.Code, Message: env.Message, Endpoint: path}
	}

	return env.Data, env.Meta, nil
}
