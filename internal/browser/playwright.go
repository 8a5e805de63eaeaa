package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/interfaces"
)

// PlaywrightBrowser drives Chromium through the playwright driver.
type PlaywrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	logger  *common.Logger
}

// NewPlaywrightBrowser starts the playwright driver and launches or attaches to Chromium.
func NewPlaywrightBrowser(ctx context.Context, cfg common.BrowserConfig, logger *common.Logger) (*PlaywrightBrowser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var b playwright.Browser
	if cfg.ControlURL != "" {
		b, err = pw.Chromium.ConnectOverCDP(cfg.ControlURL)
	} else {
		opts := playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(cfg.Headless)}
		if cfg.Bin != "" {
			opts.ExecutablePath = playwright.String(cfg.Bin)
		}
		b, err = pw.Chromium.Launch(opts)
	}
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	logger.Debug().Str("version", b.Version()).Bool("headless", cfg.Headless).Msg("Playwright browser started")

	return &PlaywrightBrowser{pw: pw, browser: b, logger: logger}, nil
}

// NewPage opens a page in its own browser context.
func (b *PlaywrightBrowser) NewPage(ctx context.Context) (interfaces.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bc, err := b.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	page, err := bc.NewPage()
	if err != nil {
		_ = bc.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &pwPage{page: page, bc: bc}, nil
}

// Close shuts the browser and stops the driver.
func (b *PlaywrightBrowser) Close() error {
	err := b.browser.Close()
	if serr := b.pw.Stop(); err == nil {
		err = serr
	}
	return err
}

type pwPage struct {
	page playwright.Page
	bc   playwright.BrowserContext
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d / time.Millisecond))
}

// present returns the first match, or an error without waiting when nothing matches.
func (p *pwPage) present(ctx context.Context, selector string) (playwright.Locator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc := p.page.Locator(selector)
	n, err := loc.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("element %s: not found", selector)
	}
	return loc.First(), nil
}

func (p *pwPage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := p.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (p *pwPage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := p.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(timeout),
	})
	if err != nil {
		return fmt.Errorf("timed out waiting for %s: %w", selector, err)
	}
	return nil
}

func (p *pwPage) WaitIdle(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: ms(timeout),
	})
}

func (p *pwPage) Text(ctx context.Context, selector string) (string, error) {
	loc, err := p.present(ctx, selector)
	if err != nil {
		return "", err
	}
	return loc.InnerText()
}

func (p *pwPage) Texts(ctx context.Context, selector string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.page.Locator(selector).AllInnerTexts()
}

func (p *pwPage) Attribute(ctx context.Context, selector, name string) (string, error) {
	loc, err := p.present(ctx, selector)
	if err != nil {
		return "", err
	}
	return loc.GetAttribute(name)
}

func (p *pwPage) InputValue(ctx context.Context, selector string) (string, error) {
	loc, err := p.present(ctx, selector)
	if err != nil {
		return "", err
	}
	return loc.InputValue()
}

func (p *pwPage) Count(ctx context.Context, selector string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.page.Locator(selector).Count()
}

func (p *pwPage) Visible(ctx context.Context, selector string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return p.page.Locator(selector).First().IsVisible()
}

func (p *pwPage) Enabled(ctx context.Context, selector string) (bool, error) {
	loc, err := p.present(ctx, selector)
	if err != nil {
		return false, err
	}
	return loc.IsEnabled()
}

func (p *pwPage) HasText(ctx context.Context, text string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	n, err := p.page.GetByText(text).Count()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (p *pwPage) Options(ctx context.Context, selector string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	texts, err := p.page.Locator(selector + " option").AllInnerTexts()
	if err != nil {
		return nil, err
	}
	for i := range texts {
		texts[i] = strings.TrimSpace(texts[i])
	}
	return texts, nil
}

func (p *pwPage) Fill(ctx context.Context, selector, value string) error {
	loc, err := p.present(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Fill(value)
}

func (p *pwPage) Click(ctx context.Context, selector string) error {
	loc, err := p.present(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Click()
}

func (p *pwPage) SelectOption(ctx context.Context, selector, label string) error {
	loc, err := p.present(ctx, selector)
	if err != nil {
		return err
	}
	_, err = loc.SelectOption(playwright.SelectOptionValues{Labels: &[]string{label}})
	return err
}

func (p *pwPage) PressEnter(ctx context.Context, selector string) error {
	loc, err := p.present(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Press("Enter")
}

func (p *pwPage) URL() string {
	return p.page.URL()
}

func (p *pwPage) Close() error {
	err := p.page.Close()
	if cerr := p.bc.Close(); err == nil {
		err = cerr
	}
	return err
}
