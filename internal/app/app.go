// Package app wires configuration, clients, the browser and the screen runner
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bobmcallan/brokercheck/internal/browser"
	"github.com/bobmcallan/brokercheck/internal/clients/fos"
	"github.com/bobmcallan/brokercheck/internal/clients/vietstock"
	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/format"
	"github.com/bobmcallan/brokercheck/internal/interfaces"
	"github.com/bobmcallan/brokercheck/internal/models"
	"github.com/bobmcallan/brokercheck/internal/pages"
	"github.com/bobmcallan/brokercheck/internal/report"
	"github.com/bobmcallan/brokercheck/internal/screens"
)

// BrowserOpener starts a browser for the configured driver.
type BrowserOpener func(ctx context.Context, cfg common.BrowserConfig, logger *common.Logger) (interfaces.Browser, error)

// App holds the initialized clients and run settings shared by every command.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	FOSClient   interfaces.FOSClient
	EventClient interfaces.EventsClient
	Env         *screens.Env
	Reports     interfaces.ReportWriter
	StartupTime time.Time

	openBrowser BrowserOpener
	mu          sync.Mutex
	browser     interfaces.Browser
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath picks the config file: the given path, BROKERCHECK_CONFIG,
// brokercheck.toml next to the binary, then config/brokercheck.toml.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("BROKERCHECK_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "brokercheck.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/brokercheck.toml" // fallback for development
		}
	}
	return configPath
}

// localPath returns the brokercheck.local.toml sibling of a config file.
func localPath(configPath string) string {
	ext := filepath.Ext(configPath)
	return strings.TrimSuffix(configPath, ext) + ".local" + ext
}

// NewApp loads configuration and builds the clients. configPath may be empty.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	configPath = ResolveConfigPath(configPath)
	config, err := common.LoadConfig(configPath, localPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative log file path to binary directory
	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(getBinaryDir(), config.Logging.FilePath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)
	a := New(config, logger)
	a.StartupTime = startupStart

	logger.Debug().Str("config", configPath).Dur("startup", time.Since(startupStart)).Msg("App initialized")
	return a, nil
}

// New builds an App from an already loaded config.
func New(config *common.Config, logger *common.Logger) *App {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	fosClient := fos.NewClient(
		models.Credentials{
			UserName:  config.API.Username,
			Password:  config.API.Password,
			LoginType: config.API.LoginType,
			GrantType: config.API.GrantType,
		},
		fos.WithSSOURL(config.API.SSOURL),
		fos.WithBaseURL(config.API.BaseURL),
		fos.WithLoginFallbacks(config.API.LoginFallbacks...),
		fos.WithRateLimit(config.API.RateLimit),
		fos.WithTimeout(config.API.GetTimeout()),
		fos.WithLogger(logger),
	)

	eventClient := vietstock.NewClient(
		vietstock.WithBaseURL(config.Events.BaseURL),
		vietstock.WithTimeout(config.Events.GetTimeout()),
		vietstock.WithPageSize(config.Events.PageSize),
		vietstock.WithLogger(logger),
	)

	loc := config.Reconcile.Location()
	env := &screens.Env{
		FOS:       fosClient,
		Events:    eventClient,
		AccountID: config.API.AccountID,
		Dates:     format.NewDates(loc),
		Now:       func() time.Time { return time.Now().In(loc) },
		MaxRows:   config.Reconcile.MaxRows,
		Logger:    logger,
	}

	return &App{
		Config:      config,
		Logger:      logger,
		FOSClient:   fosClient,
		EventClient: eventClient,
		Env:         env,
		Reports:     report.NewWriter(config.Report, logger),
		StartupTime: time.Now(),
		openBrowser: browser.Open,
	}
}

// WithBrowserOpener replaces how the app starts its browser.
func (a *App) WithBrowserOpener(open BrowserOpener) *App {
	a.openBrowser = open
	return a
}

// Browser starts the browser on first use and returns the same one afterwards.
func (a *App) Browser(ctx context.Context) (interfaces.Browser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.browser != nil {
		return a.browser, nil
	}
	b, err := a.openBrowser(ctx, a.Config.Browser, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	a.browser = b
	return b, nil
}

// Close shuts the browser down if one was started.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.browser == nil {
		return
	}
	if err := a.browser.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Browser close failed")
	}
	a.browser = nil
}

// checkRequired fails when the API or web settings a run depends on are empty.
func (a *App) checkRequired(needsAPI, needsWeb bool) error {
	var missing []string
	for _, name := range a.Config.ValidateRequired() {
		if !needsAPI && strings.HasPrefix(name, "api.") {
			continue
		}
		if !needsWeb && strings.HasPrefix(name, "web.") {
			continue
		}
		missing = append(missing, name)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Runner returns a screen runner for scenario. parallel <= 0 uses the configured value.
func (a *App) Runner(ctx context.Context, scenario screens.Scenario, parallel int) (*screens.Runner, error) {
	if parallel <= 0 {
		parallel = a.Config.Runner.Parallel
	}

	r := &screens.Runner{
		Web:      a.Config.Web,
		Enforce:  a.Config.Reconcile.Enforce(),
		Parallel: parallel,
		Reports:  a.Reports,
		Logger:   a.Logger,
	}
	if scenario.NeedsBrowser() {
		b, err := a.Browser(ctx)
		if err != nil {
			return nil, err
		}
		r.Browser = b
	}
	return r, nil
}

// RunScreens runs scenario on the named screens, or on every screen when names is empty.
func (a *App) RunScreens(ctx context.Context, names []string, scenario screens.Scenario, parallel int) ([]*models.ScreenReport, error) {
	list := screens.All(a.Env)
	if len(names) > 0 {
		var err error
		if list, err = screens.Lookup(a.Env, names...); err != nil {
			return nil, err
		}
	}

	if err := a.checkRequired(true, scenario.NeedsBrowser()); err != nil {
		return nil, err
	}
	r, err := a.Runner(ctx, scenario, parallel)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, list, scenario)
}

// RunSuites runs the named UI-only suites, or all of them when names is empty.
func (a *App) RunSuites(ctx context.Context, names []string, parallel int) ([]*models.ScreenReport, error) {
	list := pages.Suites(a.Env.Now)
	if len(names) > 0 {
		var err error
		if list, err = pages.LookupSuites(a.Env.Now, names...); err != nil {
			return nil, err
		}
	}

	if err := a.checkRequired(false, true); err != nil {
		return nil, err
	}
	r, err := a.Runner(ctx, screens.ScenarioFull, parallel)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, list, screens.ScenarioFull)
}
