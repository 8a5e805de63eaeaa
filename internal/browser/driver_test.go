package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/interfaces"
)

var (
	_ interfaces.Browser = (*RodBrowser)(nil)
	_ interfaces.Browser = (*PlaywrightBrowser)(nil)
	_ interfaces.Page    = (*rodPage)(nil)
	_ interfaces.Page    = (*pwPage)(nil)
)

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), common.BrowserConfig{Driver: "selenium"}, common.NewSilentLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown browser driver "selenium"`)
}

func TestOpen_CancelledContextPlaywright(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, common.BrowserConfig{Driver: "Playwright"}, common.NewSilentLogger())
	assert.ErrorIs(t, err, context.Canceled)
}
