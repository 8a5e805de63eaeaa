package interfaces

import (
	"context"
	"time"
)

// Page is a single browser tab addressed by CSS selectors.
// Reads that do not wait return an error when nothing matches.
type Page interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	WaitIdle(ctx context.Context, timeout time.Duration) error

	Text(ctx context.Context, selector string) (string, error)
	// Texts returns the text of every match in document order
	Texts(ctx context.Context, selector string) ([]string, error)
	Attribute(ctx context.Context, selector, name string) (string, error)
	InputValue(ctx context.Context, selector string) (string, error)
	Count(ctx context.Context, selector string) (int, error)
	Visible(ctx context.Context, selector string) (bool, error)
	Enabled(ctx context.Context, selector string) (bool, error)
	HasText(ctx context.Context, text string) (bool, error)
	Options(ctx context.Context, selector string) ([]string, error)

	Fill(ctx context.Context, selector, value string) error
	Click(ctx context.Context, selector string) error
	SelectOption(ctx context.Context, selector, label string) error
	PressEnter(ctx context.Context, selector string) error

	URL() string
	Close() error
}

// Browser opens isolated pages.
type Browser interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}
