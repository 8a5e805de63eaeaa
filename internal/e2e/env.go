//go:build e2e

// Package e2e runs browser tests against a headless Chrome container
package e2e

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bobmcallan/brokercheck/internal/browser"
	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/interfaces"
)

const (
	chromeImage = "chromedp/headless-shell:latest"
	chromePort  = "9222/tcp"
	// containers reach host ports through this name when HostAccessPorts is set
	hostAlias = "host.testcontainers.internal"
)

// Env is a Chrome container attached to rod, plus a local site the browser can reach.
type Env struct {
	t          *testing.T
	container  testcontainers.Container
	server     *httptest.Server
	ctx        context.Context
	cancel     context.CancelFunc
	ResultsDir string
	SiteURL    string // base URL of the local site as seen from the container
	Browser    interfaces.Browser
}

// NewEnv starts Chrome and serves site on the host. It skips unless BROKERCHECK_E2E=true.
func NewEnv(t *testing.T, site http.Handler) *Env {
	t.Helper()

	if os.Getenv("BROKERCHECK_E2E") != "true" {
		t.Skip("Browser tests disabled (set BROKERCHECK_E2E=true to enable)")
		return nil
	}

	// Create results directory with datetime prefix: {datetime}-{test-name}
	datetime := time.Now().Format("20060102-150405")
	resultsDir := filepath.Join(findProjectRoot(), "results", datetime+"-"+t.Name())
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		t.Fatalf("Failed to create results dir: %v", err)
	}

	timeout := 90 * time.Second
	if v := os.Getenv("BROKERCHECK_E2E_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			timeout = d
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	server := httptest.NewServer(site)
	_, portStr, err := net.SplitHostPort(server.Listener.Addr().String())
	if err != nil {
		server.Close()
		cancel()
		t.Fatalf("Failed to read site port: %v", err)
	}
	sitePort, _ := strconv.Atoi(portStr)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:           chromeImage,
			ExposedPorts:    []string{chromePort},
			HostAccessPorts: []int{sitePort},
			WaitingFor:      wait.ForHTTP("/json/version").WithPort(chromePort).WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		server.Close()
		cancel()
		t.Fatalf("Failed to start chrome container: %v", err)
	}

	env := &Env{
		t:          t,
		container:  container,
		server:     server,
		ctx:        ctx,
		cancel:     cancel,
		ResultsDir: resultsDir,
		SiteURL:    fmt.Sprintf("http://%s:%d", hostAlias, sitePort),
	}

	host, err := container.Host(ctx)
	if err != nil {
		env.Cleanup()
		t.Fatalf("Failed to read container host: %v", err)
	}
	mapped, err := container.MappedPort(ctx, chromePort)
	if err != nil {
		env.Cleanup()
		t.Fatalf("Failed to read chrome port: %v", err)
	}

	b, err := browser.Open(ctx, common.BrowserConfig{
		Driver:     browser.DriverRod,
		Headless:   true,
		ControlURL: fmt.Sprintf("http://%s:%s", host, mapped.Port()),
	}, common.NewSilentLogger())
	if err != nil {
		env.Cleanup()
		t.Fatalf("Failed to attach to chrome: %v", err)
	}
	env.Browser = b

	t.Logf("Chrome started (site: %s)", env.SiteURL)
	return env
}

// Context returns the test context
func (e *Env) Context() context.Context {
	return e.ctx
}

// SaveResult saves test output to the results directory
func (e *Env) SaveResult(name string, data []byte) error {
	return os.WriteFile(filepath.Join(e.ResultsDir, name), data, 0644)
}

// Cleanup closes the browser, collects container logs and tears everything down
func (e *Env) Cleanup() {
	if e == nil {
		return
	}

	if e.Browser != nil {
		if err := e.Browser.Close(); err != nil {
			e.t.Logf("Warning: failed to close browser: %v", err)
		}
	}

	e.collectLogs()

	if e.container != nil {
		if err := e.container.Terminate(context.Background()); err != nil {
			e.t.Logf("Warning: failed to terminate container: %v", err)
		}
	}
	if e.server != nil {
		e.server.Close()
	}
	if e.cancel != nil {
		e.cancel()
	}
}

// collectLogs saves container logs to results directory
func (e *Env) collectLogs() {
	if e.container == nil {
		return
	}

	reader, err := e.container.Logs(e.ctx)
	if err != nil {
		e.t.Logf("Warning: failed to get container logs: %v", err)
		return
	}
	defer reader.Close()

	logs, err := io.ReadAll(reader)
	if err != nil {
		e.t.Logf("Warning: failed to read container logs: %v", err)
		return
	}
	if err := e.SaveResult("container.log", logs); err != nil {
		e.t.Logf("Warning: failed to save logs: %v", err)
	}
}

// findProjectRoot walks up directories to find go.mod
func findProjectRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
