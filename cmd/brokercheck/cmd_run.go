package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/brokercheck/internal/models"
	"github.com/bobmcallan/brokercheck/internal/screens"
)

// runCmd reconciles one or more named screens
var runCmd = &cobra.Command{
	Use:   "run <screen> [screen...]",
	Short: "Reconcile the named screens",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScreens,
}

// runAllCmd reconciles every screen
var runAllCmd = &cobra.Command{
	Use:   "run-all",
	Short: "Reconcile every screen",
	Args:  cobra.NoArgs,
	RunE:  runScreens,
}

// suiteCmd runs the UI-only validation suites
var suiteCmd = &cobra.Command{
	Use:   "suite [name...]",
	Short: "Run UI-only validation suites (all when no name is given)",
	RunE:  runSuites,
}

func runScreens(cmd *cobra.Command, args []string) error {
	sc, err := screens.ParseScenario(scenario)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// parallel only applies to run-all; run keeps the configured value
	p := 0
	if cmd.Name() == "run-all" {
		p = parallel
	}

	reports, runErr := a.RunScreens(cmd.Context(), args, sc, p)
	printSummary(cmd.OutOrStdout(), reports)
	return runErr
}

func runSuites(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	reports, runErr := a.RunSuites(cmd.Context(), args, parallel)
	printSummary(cmd.OutOrStdout(), reports)
	return runErr
}

// printSummary writes one line per report.
func printSummary(out io.Writer, reports []*models.ScreenReport) {
	if len(reports) == 0 {
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCREEN\tSCENARIO\tMATCHED\tMISMATCHED\tFAILED CHECKS\tRESULT")
	for _, r := range reports {
		if r == nil {
			continue
		}
		result := "PASS"
		if !r.Passed() {
			result = "FAIL"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n", r.Screen, r.Scenario, r.Matched(), r.Mismatched(), r.FailedChecks(), result)
	}
	tw.Flush()
}
