// Package web reads values from the brokerage web UI through a browser page
package web

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/interfaces"
)

const (
	LoginPath = "/login"

	loginUsername = "login-input-username"
	loginPassword = "login-input-password"
	loginSubmit   = "login-action-submit"
)

// Client is a DOM reader bound to one page. Reads never fail: a missing or
// unreadable element is reported as ("", false).
type Client struct {
	page          interfaces.Page
	baseURL       string
	username      string
	password      string
	markerTimeout time.Duration
	idleTimeout   time.Duration
	logger        *common.Logger
}

// NewClient binds a web client to page.
func NewClient(page interfaces.Page, cfg common.WebConfig, logger *common.Logger) *Client {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Client{
		page:          page,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		username:      cfg.Username,
		password:      cfg.Password,
		markerTimeout: cfg.GetMarkerTimeout(),
		idleTimeout:   cfg.GetIdleTimeout(),
		logger:        logger,
	}
}

// Page returns the underlying page for page objects that drive forms.
func (c *Client) Page() interfaces.Page {
	return c.page
}

// URL joins path onto the web base URL.
func (c *Client) URL(path string) string {
	return c.baseURL + path
}

// Login signs in through the login form. The sequence is fixed and not retried.
func (c *Client) Login(ctx context.Context) error {
	if err := c.page.Navigate(ctx, c.URL(LoginPath)); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}
	if err := c.page.WaitVisible(ctx, TestID(loginUsername), c.markerTimeout); err != nil {
		return fmt.Errorf("login form not shown: %w", err)
	}
	if err := c.page.Fill(ctx, TestID(loginUsername), c.username); err != nil {
		return fmt.Errorf("failed to fill username: %w", err)
	}
	if err := c.page.Fill(ctx, TestID(loginPassword), c.password); err != nil {
		return fmt.Errorf("failed to fill password: %w", err)
	}
	if err := c.page.Click(ctx, TestID(loginSubmit)); err != nil {
		return fmt.Errorf("failed to submit login: %w", err)
	}
	if err := c.page.WaitIdle(ctx, c.idleTimeout); err != nil {
		return fmt.Errorf("login did not settle: %w", err)
	}

	c.logger.Debug().Str("user", c.username).Str("url", c.page.URL()).Msg("Web login submitted")
	return nil
}

// NavigateTo opens path and waits for the marker data-testid to become visible.
func (c *Client) NavigateTo(ctx context.Context, path, marker string) error {
	if err := c.page.Navigate(ctx, c.URL(path)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", path, err)
	}
	if err := c.page.WaitVisible(ctx, TestID(marker), c.markerTimeout); err != nil {
		return fmt.Errorf("screen %s not ready: %w", path, err)
	}
	return nil
}

// Open navigates to path and waits for the network to settle. Used by pages without a marker.
func (c *Client) Open(ctx context.Context, path string) error {
	if err := c.page.Navigate(ctx, c.URL(path)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", path, err)
	}
	return c.WaitIdle(ctx)
}

// WaitIdle waits for network activity to settle, for use after a filter query.
func (c *Client) WaitIdle(ctx context.Context) error {
	return c.page.WaitIdle(ctx, c.idleTimeout)
}

// UIValue returns the trimmed text of selector.
func (c *Client) UIValue(ctx context.Context, selector string) (string, bool) {
	text, err := c.page.Text(ctx, selector)
	if err != nil {
		c.logger.Debug().Err(err).Str("selector", selector).Msg("UI value unavailable")
		return "", false
	}
	return strings.TrimSpace(text), true
}

// TableCell returns the trimmed text of one table cell.
func (c *Client) TableCell(ctx context.Context, layout CellLayout, column string, row int) (string, bool) {
	if !layout.Repeated {
		return c.UIValue(ctx, layout.Cell(column, row))
	}
	texts, err := c.page.Texts(ctx, layout.Cell(column, row))
	if err != nil || row < 0 || row >= len(texts) {
		return "", false
	}
	return strings.TrimSpace(texts[row]), true
}

// RowCount counts elements matching selector; 0 on error.
func (c *Client) RowCount(ctx context.Context, selector string) int {
	n, err := c.page.Count(ctx, selector)
	if err != nil {
		c.logger.Debug().Err(err).Str("selector", selector).Msg("Row count unavailable")
		return 0
	}
	return n
}

// InputValue returns the trimmed value of an input.
func (c *Client) InputValue(ctx context.Context, selector string) (string, bool) {
	v, err := c.page.InputValue(ctx, selector)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Attribute returns an attribute of selector.
func (c *Client) Attribute(ctx context.Context, selector, name string) (string, bool) {
	v, err := c.page.Attribute(ctx, selector, name)
	if err != nil {
		return "", false
	}
	return v, true
}

// OptionValue returns the options of a select.
func (c *Client) OptionValue(ctx context.Context, selector string) ([]string, bool) {
	opts, err := c.page.Options(ctx, selector)
	if err != nil {
		return nil, false
	}
	return opts, true
}

// HasText reports whether text appears anywhere on the page.
func (c *Client) HasText(ctx context.Context, text string) bool {
	ok, err := c.page.HasText(ctx, text)
	return err == nil && ok
}

// Visible reports whether selector is present and visible.
func (c *Client) Visible(ctx context.Context, selector string) bool {
	ok, err := c.page.Visible(ctx, selector)
	return err == nil && ok
}

// Enabled reports whether selector is present and enabled.
func (c *Client) Enabled(ctx context.Context, selector string) bool {
	ok, err := c.page.Enabled(ctx, selector)
	return err == nil && ok
}

// Fill types value into the data-testid input.
func (c *Client) Fill(ctx context.Context, id, value string) error {
	if err := c.page.Fill(ctx, TestID(id), value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", id, err)
	}
	return nil
}

// Click clicks the data-testid element.
func (c *Client) Click(ctx context.Context, id string) error {
	if err := c.page.Click(ctx, TestID(id)); err != nil {
		return fmt.Errorf("failed to click %s: %w", id, err)
	}
	return nil
}

// Select picks the option labelled label in the data-testid select.
func (c *Client) Select(ctx context.Context, id, label string) error {
	if err := c.page.SelectOption(ctx, TestID(id), label); err != nil {
		return fmt.Errorf("failed to select %q in %s: %w", label, id, err)
	}
	return nil
}
