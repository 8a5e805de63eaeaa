// Package browser opens pages through the configured browser driver
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/interfaces"
)

const (
	DriverRod        = "rod"
	DriverPlaywright = "playwright"
)

// Open returns a Browser for cfg.Driver. An empty driver selects rod.
func Open(ctx context.Context, cfg common.BrowserConfig, logger *common.Logger) (interfaces.Browser, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverRod:
		return NewRodBrowser(ctx, cfg, logger)
	case DriverPlaywright:
		return NewPlaywrightBrowser(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown browser driver %q (want %s or %s)", cfg.Driver, DriverRod, DriverPlaywright)
	}
}
