package common

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, "ALL", cfg.API.LoginType)
	assert.Equal(t, "password", cfg.API.GrantType)
	assert.Equal(t, "rod", cfg.Browser.Driver)
	assert.Equal(t, 10*time.Second, cfg.Web.GetMarkerTimeout())
	assert.True(t, cfg.Reconcile.Enforce())
}

func TestConfig_LoadMergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	local := filepath.Join(dir, "local.toml")

	require.NoError(t, os.WriteFile(base, []byte(`
[api]
username = "test2"
account_id = "TEST028"
timeout = "5s"

[browser]
driver = "playwright"
`), 0644))
	require.NoError(t, os.WriteFile(local, []byte(`
[api]
account_id = "TEST099"
`), 0644))

	cfg, err := LoadConfig(base, local, filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "test2", cfg.API.Username)
	assert.Equal(t, "TEST099", cfg.API.AccountID)
	assert.Equal(t, 5*time.Second, cfg.API.GetTimeout())
	assert.Equal(t, "playwright", cfg.Browser.Driver)
	// untouched defaults survive the merge
	assert.Equal(t, "https://finance.vietstock.vn", cfg.Events.BaseURL)
}

func TestConfig_LoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api\nusername ="), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BROKERCHECK_API_USERNAME", "from-env")
	t.Setenv("BROKERCHECK_BROWSER_HEADLESS", "false")
	t.Setenv("BROKERCHECK_MODE", "observe")
	t.Setenv("BROKERCHECK_PARALLEL", "8")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, "from-env", cfg.API.Username)
	assert.False(t, cfg.Browser.Headless)
	assert.False(t, cfg.Reconcile.Enforce())
	assert.Equal(t, 8, cfg.Runner.Parallel)
}

func TestConfig_InvalidTimeoutFallsBack(t *testing.T) {
	cfg := APIConfig{Timeout: "soon"}
	assert.Equal(t, 30*time.Second, cfg.GetTimeout())

	web := WebConfig{MarkerTimeout: ""}
	assert.Equal(t, 10*time.Second, web.GetMarkerTimeout())
}

func TestConfig_Location(t *testing.T) {
	rc := ReconcileConfig{Timezone: "+07:00"}
	_, offset := time.Date(2025, 6, 1, 0, 0, 0, 0, rc.Location()).Zone()
	assert.Equal(t, 7*3600, offset)

	rc = ReconcileConfig{Timezone: "not/a-zone"}
	assert.Equal(t, DefaultLocation, rc.Location())

	rc = ReconcileConfig{Timezone: "UTC"}
	assert.Equal(t, time.UTC, rc.Location())
}

func TestConfig_ValidateRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Len(t, cfg.ValidateRequired(), 5)

	cfg.API.Username = "test2"
	cfg.API.Password = "123456"
	cfg.API.AccountID = "TEST028"
	cfg.Web.Username = "linhdtt01"
	cfg.Web.Password = "123456"
	assert.Empty(t, cfg.ValidateRequired())
}

func resetVersion(t *testing.T) {
	t.Helper()
	oldV, oldB, oldC := Version, Build, GitCommit
	t.Cleanup(func() { Version, Build, GitCommit = oldV, oldB, oldC })
}

func TestVersion_LoadFileOnlyFillsDefaults(t *testing.T) {
	resetVersion(t)

	Version, Build, GitCommit = "dev", "set-by-ldflags", "unknown"
	path := filepath.Join(t.TempDir(), ".version")
	require.NoError(t, os.WriteFile(path, []byte("# build info\nversion = \"1.2.3\"\nbuild = \"2025-06-01\"\ncommit = \"abc123\"\n"), 0644))

	loadVersionFile(path)

	assert.Equal(t, "1.2.3", Version)
	assert.Equal(t, "set-by-ldflags", Build)
	assert.Equal(t, "abc123", GitCommit)
}

func TestVersion_BadFileIgnored(t *testing.T) {
	resetVersion(t)

	Version = "dev"
	path := filepath.Join(t.TempDir(), ".version")
	require.NoError(t, os.WriteFile(path, []byte("version: 1.2.3\n"), 0644))

	loadVersionFile(path)
	assert.Equal(t, "dev", Version)
}

func TestVersion_BuildSettings(t *testing.T) {
	resetVersion(t)

	Version, Build, GitCommit = "dev", "unknown", "unknown"
	applyBuildSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2025-06-18T03:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	})

	assert.Equal(t, "dev", Version)
	assert.Equal(t, "2025-06-18T03:00:00Z", Build)
	assert.Equal(t, "0123456-dirty", GitCommit)
	assert.Equal(t, "brokercheck dev (build: 2025-06-18T03:00:00Z, commit: 0123456-dirty)", GetFullVersion())
}
