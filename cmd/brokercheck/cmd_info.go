package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/pages"
	"github.com/bobmcallan/brokercheck/internal/rules"
	"github.com/bobmcallan/brokercheck/internal/screens"
)

// screensCmd lists the reconcilable screens and UI suites
var screensCmd = &cobra.Command{
	Use:   "screens",
	Short: "List screens and suites",
	Args:  cobra.NoArgs,
	RunE:  listScreens,
}

// validateRangeCmd checks a DD/MM/YYYY date range against the filter rules
var validateRangeCmd = &cobra.Command{
	Use:   "validate-range <from> <to>",
	Short: "Check a DD/MM/YYYY date range against the history filter rules",
	Args:  cobra.ExactArgs(2),
	RunE:  validateRange,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		common.LoadVersionFromFile()
		fmt.Fprintln(cmd.OutOrStdout(), common.GetFullVersion())
	},
}

func listScreens(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Screens:")
	for _, name := range screens.Names() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintln(out, "Suites:")
	for _, name := range pages.SuiteNames() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}

func validateRange(cmd *cobra.Command, args []string) error {
	if err := rules.ValidateDMYRange(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s - %s: valid\n", args[0], args[1])
	return nil
}
