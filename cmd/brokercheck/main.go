package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/brokercheck/internal/app"
	"github.com/bobmcallan/brokercheck/internal/common"
)

var (
	configPath string
	scenario   string
	parallel   int
	noBanner   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "brokercheck",
	Short: "Reconcile the brokerage web UI against its backend API",
	Long: `brokercheck logs into the brokerage REST API, opens the matching web screen in a
browser and compares every displayed value with the API response.

Scenarios:
  ping   API login and fetch only
  full   fields, table and shape checks
  kpi    fields only
  table  table only
  api    API dump with shape checks, no browser`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $BROKERCHECK_CONFIG, then brokercheck.toml)")

	runCmd.Flags().StringVar(&scenario, "scenario", "full", "scenario to run")
	runAllCmd.Flags().StringVar(&scenario, "scenario", "full", "scenario to run")
	runAllCmd.Flags().IntVar(&parallel, "parallel", 0, "screens run at once (default from config)")
	suiteCmd.Flags().IntVar(&parallel, "parallel", 0, "suites run at once (default from config)")
	for _, c := range []*cobra.Command{runCmd, runAllCmd, suiteCmd} {
		c.Flags().BoolVar(&noBanner, "no-banner", false, "skip the startup banner")
	}

	rootCmd.AddCommand(runCmd, runAllCmd, suiteCmd, screensCmd, validateRangeCmd, versionCmd)
}

// newApp loads the app and prints the banner unless disabled.
func newApp() (*app.App, error) {
	a, err := app.NewApp(configPath)
	if err != nil {
		return nil, err
	}
	if !noBanner {
		common.PrintBanner(a.Config, a.Logger)
	}
	return a, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
