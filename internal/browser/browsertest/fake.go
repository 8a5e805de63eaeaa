// Package browsertest provides an in-memory Page for exercising screen and page logic without Chrome
package browsertest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bobmcallan/brokercheck/internal/interfaces"
)

// Element is a fake DOM node addressed by its exact selector.
type Element struct {
	Text     string
	Value    string
	Attrs    map[string]string
	Hidden   bool
	Disabled bool
	Options  []string
}

// Page is a fake interfaces.Page. Selectors match exactly; Count falls back to
// 1 for a registered element unless SetCount overrides it.
type Page struct {
	mu         sync.Mutex
	elements   map[string]*Element
	counts     map[string]int
	lists      map[string][]string
	onClick    map[string]func(*Page)
	onNavigate func(*Page, string)
	url        string
	bodyText   string

	visited  []string
	clicks   []string
	filled   map[string]string
	selected map[string]string
	closed   bool
}

// New returns an empty page at about:blank.
func New() *Page {
	return &Page{
		elements: map[string]*Element{},
		counts:   map[string]int{},
		lists:    map[string][]string{},
		onClick:  map[string]func(*Page){},
		filled:   map[string]string{},
		selected: map[string]string{},
		url:      "about:blank",
	}
}

// Set registers or replaces the element at selector.
func (p *Page) Set(selector string, el Element) *Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := el
	p.elements[selector] = &cp
	return p
}

// SetText registers a visible element with text.
func (p *Page) SetText(selector, text string) *Page {
	return p.Set(selector, Element{Text: text})
}

// SetCount fixes the number of matches for selector.
func (p *Page) SetCount(selector string, n int) *Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[selector] = n
	return p
}

// SetTexts registers a selector that matches several elements, one per text.
func (p *Page) SetTexts(selector string, texts ...string) *Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lists[selector] = append([]string(nil), texts...)
	return p
}

// SetBodyText adds free text that HasText searches besides element text.
func (p *Page) SetBodyText(text string) *Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bodyText = text
	return p
}

// Remove deletes the element at selector.
func (p *Page) Remove(selector string) *Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.elements, selector)
	return p
}

// OnClick runs fn after selector is clicked.
func (p *Page) OnClick(selector string, fn func(*Page)) *Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onClick[selector] = fn
	return p
}

// OnNavigate runs fn after every navigation.
func (p *Page) OnNavigate(fn func(*Page, string)) *Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onNavigate = fn
	return p
}

// SetURL changes the current URL, as a client-side redirect would.
func (p *Page) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

// Element returns a copy of the element at selector.
func (p *Page) Element(selector string) (Element, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.elements[selector]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

// Visited lists navigated URLs in order.
func (p *Page) Visited() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.visited...)
}

// Clicks lists clicked selectors in order.
func (p *Page) Clicks() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.clicks...)
}

// Filled returns the last value typed into selector.
func (p *Page) Filled(selector string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filled[selector]
}

// Selected returns the last option chosen in selector.
func (p *Page) Selected(selector string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected[selector]
}

// Closed reports whether Close was called.
func (p *Page) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Page) lookup(selector string) (*Element, error) {
	el, ok := p.elements[selector]
	if !ok {
		return nil, fmt.Errorf("element %s: not found", selector)
	}
	return el, nil
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	p.url = url
	p.visited = append(p.visited, url)
	hook := p.onNavigate
	p.mu.Unlock()

	if hook != nil {
		hook(p, url)
	}
	return nil
}

func (p *Page) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.elements[selector]
	if !ok || el.Hidden {
		return fmt.Errorf("timed out waiting for %s after %s", selector, timeout)
	}
	return nil
}

func (p *Page) WaitIdle(ctx context.Context, timeout time.Duration) error {
	return ctx.Err()
}

func (p *Page) Text(ctx context.Context, selector string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, err := p.lookup(selector)
	if err != nil {
		return "", err
	}
	return el.Text, nil
}

func (p *Page) Texts(ctx context.Context, selector string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if list, ok := p.lists[selector]; ok {
		return append([]string(nil), list...), nil
	}
	if el, ok := p.elements[selector]; ok {
		return []string{el.Text}, nil
	}
	return nil, nil
}

func (p *Page) Attribute(ctx context.Context, selector, name string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, err := p.lookup(selector)
	if err != nil {
		return "", err
	}
	v, ok := el.Attrs[name]
	if !ok {
		return "", fmt.Errorf("%s has no attribute %s", selector, name)
	}
	return v, nil
}

func (p *Page) InputValue(ctx context.Context, selector string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, err := p.lookup(selector)
	if err != nil {
		return "", err
	}
	return el.Value, nil
}

func (p *Page) Count(ctx context.Context, selector string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n, ok := p.counts[selector]; ok {
		return n, nil
	}
	if list, ok := p.lists[selector]; ok {
		return len(list), nil
	}
	if _, ok := p.elements[selector]; ok {
		return 1, nil
	}
	return 0, nil
}

func (p *Page) Visible(ctx context.Context, selector string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.elements[selector]
	return ok && !el.Hidden, nil
}

func (p *Page) Enabled(ctx context.Context, selector string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, err := p.lookup(selector)
	if err != nil {
		return false, err
	}
	return !el.Disabled, nil
}

func (p *Page) HasText(ctx context.Context, text string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if strings.Contains(p.bodyText, text) {
		return true, nil
	}
	for _, list := range p.lists {
		for _, s := range list {
			if strings.Contains(s, text) {
				return true, nil
			}
		}
	}
	for _, el := range p.elements {
		if !el.Hidden && strings.Contains(el.Text, text) {
			return true, nil
		}
	}
	return false, nil
}

func (p *Page) Options(ctx context.Context, selector string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, err := p.lookup(selector)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), el.Options...), nil
}

func (p *Page) Fill(ctx context.Context, selector, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, err := p.lookup(selector)
	if err != nil {
		return err
	}
	if el.Disabled {
		return fmt.Errorf("%s is disabled", selector)
	}
	el.Value = value
	p.filled[selector] = value
	return nil
}

func (p *Page) Click(ctx context.Context, selector string) error {
	p.mu.Lock()
	el, err := p.lookup(selector)
	if err != nil {
		p.mu.Unlock()
		return err
	}
	if el.Disabled {
		p.mu.Unlock()
		return fmt.Errorf("%s is disabled", selector)
	}
	p.clicks = append(p.clicks, selector)
	hook := p.onClick[selector]
	p.mu.Unlock()

	if hook != nil {
		hook(p)
	}
	return nil
}

func (p *Page) SelectOption(ctx context.Context, selector, label string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, err := p.lookup(selector)
	if err != nil {
		return err
	}
	if len(el.Options) > 0 {
		found := false
		for _, o := range el.Options {
			if o == label {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s has no option %q", selector, label)
		}
	}
	el.Value = label
	p.selected[selector] = label
	return nil
}

func (p *Page) PressEnter(ctx context.Context, selector string) error {
	p.mu.Lock()
	_, err := p.lookup(selector)
	hook := p.onClick[selector+":enter"]
	p.mu.Unlock()
	if err != nil {
		return err
	}
	if hook != nil {
		hook(p)
	}
	return nil
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *Page) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Browser hands out pages built by a factory and remembers them.
type Browser struct {
	mu      sync.Mutex
	factory func() *Page
	pages   []*Page
	closed  bool
}

// NewBrowser returns a Browser whose pages come from factory.
func NewBrowser(factory func() *Page) *Browser {
	return &Browser{factory: factory}
}

func (b *Browser) NewPage(ctx context.Context) (interfaces.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := b.factory()
	b.mu.Lock()
	b.pages = append(b.pages, p)
	b.mu.Unlock()
	return p, nil
}

// Pages lists every page opened so far.
func (b *Browser) Pages() []*Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Page(nil), b.pages...)
}

func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

var (
	_ interfaces.Page    = (*Page)(nil)
	_ interfaces.Browser = (*Browser)(nil)
)
