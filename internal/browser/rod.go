package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/interfaces"
)

// RodBrowser drives Chrome over CDP with go-rod.
type RodBrowser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	logger   *common.Logger
}

// NewRodBrowser connects to cfg.ControlURL when set, otherwise launches a local Chrome.
func NewRodBrowser(ctx context.Context, cfg common.BrowserConfig, logger *common.Logger) (*RodBrowser, error) {
	var (
		controlURL string
		l          *launcher.Launcher
		err        error
	)

	if cfg.ControlURL != "" {
		controlURL, err = launcher.ResolveURL(cfg.ControlURL)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve control url %s: %w", cfg.ControlURL, err)
		}
	} else {
		l = launcher.New().Headless(cfg.Headless)
		if cfg.Bin != "" {
			l = l.Bin(cfg.Bin)
		}
		controlURL, err = l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch chrome: %w", err)
		}
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		if l != nil {
			l.Kill()
		}
		return nil, fmt.Errorf("failed to connect to chrome: %w", err)
	}

	logger.Debug().Str("control_url", controlURL).Bool("headless", cfg.Headless).Msg("Rod browser connected")

	return &RodBrowser{browser: b, launcher: l, logger: logger}, nil
}

// NewPage opens an isolated incognito tab.
func (b *RodBrowser) NewPage(ctx context.Context) (interfaces.Page, error) {
	incognito, err := b.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("failed to create incognito context: %w", err)
	}
	page, err := incognito.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &rodPage{page: page, ctxBrowser: incognito}, nil
}

// Close shuts the browser and any process we launched.
func (b *RodBrowser) Close() error {
	err := b.browser.Close()
	if b.launcher != nil {
		b.launcher.Cleanup()
	}
	return err
}

type rodPage struct {
	page       *rod.Page
	ctxBrowser *rod.Browser
}

// now returns a page bound to ctx that fails fast when an element is absent.
func (p *rodPage) now(ctx context.Context) *rod.Page {
	return p.page.Context(ctx).Sleeper(rod.NotFoundSleeper)
}

func (p *rodPage) element(ctx context.Context, selector string) (*rod.Element, error) {
	el, err := p.now(ctx).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("element %s: %w", selector, err)
	}
	return el, nil
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	if err := p.page.Context(ctx).Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return p.page.Context(ctx).WaitLoad()
}

func (p *rodPage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	el, err := p.page.Context(ctx).Timeout(timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("timed out waiting for %s: %w", selector, err)
	}
	if err := el.Timeout(timeout).WaitVisible(); err != nil {
		return fmt.Errorf("%s never became visible: %w", selector, err)
	}
	return nil
}

func (p *rodPage) WaitIdle(ctx context.Context, timeout time.Duration) error {
	return p.page.Context(ctx).WaitIdle(timeout)
}

func (p *rodPage) Text(ctx context.Context, selector string) (string, error) {
	el, err := p.element(ctx, selector)
	if err != nil {
		return "", err
	}
	return el.Text()
}

func (p *rodPage) Texts(ctx context.Context, selector string) ([]string, error) {
	els, err := p.now(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

func (p *rodPage) Attribute(ctx context.Context, selector, name string) (string, error) {
	el, err := p.element(ctx, selector)
	if err != nil {
		return "", err
	}
	v, err := el.Attribute(name)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", fmt.Errorf("%s has no attribute %s", selector, name)
	}
	return *v, nil
}

func (p *rodPage) InputValue(ctx context.Context, selector string) (string, error) {
	el, err := p.element(ctx, selector)
	if err != nil {
		return "", err
	}
	v, err := el.Property("value")
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func (p *rodPage) Count(ctx context.Context, selector string) (int, error) {
	els, err := p.now(ctx).Elements(selector)
	if err != nil {
		return 0, err
	}
	return len(els), nil
}

func (p *rodPage) Visible(ctx context.Context, selector string) (bool, error) {
	el, err := p.element(ctx, selector)
	var notFound *rod.ElementNotFoundError
	if errors.As(err, &notFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return el.Visible()
}

func (p *rodPage) Enabled(ctx context.Context, selector string) (bool, error) {
	el, err := p.element(ctx, selector)
	if err != nil {
		return false, err
	}
	disabled, err := el.Property("disabled")
	if err != nil {
		return false, err
	}
	return !disabled.Bool(), nil
}

func (p *rodPage) HasText(ctx context.Context, text string) (bool, error) {
	body, err := p.element(ctx, "body")
	if err != nil {
		return false, err
	}
	content, err := body.Text()
	if err != nil {
		return false, err
	}
	return strings.Contains(content, text), nil
}

func (p *rodPage) Options(ctx context.Context, selector string) ([]string, error) {
	els, err := p.now(ctx).Elements(selector + " option")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			return nil, err
		}
		out = append(out, strings.TrimSpace(text))
	}
	return out, nil
}

func (p *rodPage) Fill(ctx context.Context, selector, value string) error {
	el, err := p.element(ctx, selector)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", selector, err)
	}
	return el.Input(value)
}

func (p *rodPage) Click(ctx context.Context, selector string) error {
	el, err := p.element(ctx, selector)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (p *rodPage) SelectOption(ctx context.Context, selector, label string) error {
	el, err := p.element(ctx, selector)
	if err != nil {
		return err
	}
	return el.Select([]string{label}, true, rod.SelectorTypeText)
}

func (p *rodPage) PressEnter(ctx context.Context, selector string) error {
	el, err := p.element(ctx, selector)
	if err != nil {
		return err
	}
	return el.Type(input.Enter)
}

func (p *rodPage) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (p *rodPage) Close() error {
	err := p.page.Close()
	if cerr := p.ctxBrowser.Close(); err == nil {
		err = cerr
	}
	return err
}
