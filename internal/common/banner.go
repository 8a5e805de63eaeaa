package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the run banner to stderr.
func PrintBanner(config *Config, logger *Logger) {
	printBanner(os.Stderr, config, logger)
}

func printBanner(w io.Writer, config *Config, logger *Logger) {
	version := GetVersion()
	build := GetBuild()
	commit := GetGitCommit()

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 64
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` ___  ___  ___  _  __ ___  ___    ___  _  _  ___  ___  _  __`,
		`| _ )| _ \/ _ \| |/ /| __|| _ \  / __|| || || __|/ __|| |/ /`,
		`| _ \|   / (_) | ' < | _| |   / | (__ | __ || _|| (__ | ' < `,
		`|___/|_|_\\___/|_|\_\|___||_|_\  \___||_||_||___|\___||_|\_\`,
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "%s\n", hr)
	fmt.Fprintf(w, "\n")
	for _, line := range art {
		fmt.Fprintf(w, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "%s  API to UI reconciliation%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "%s\n", hr)
	fmt.Fprintf(w, "\n")

	kvPad := 14
	kvLines := [][2]string{
		{"Version", version},
		{"Build", build},
		{"Commit", commit},
		{"Environment", config.Environment},
		{"API", config.API.BaseURL},
		{"Web", config.Web.BaseURL},
		{"Driver", config.Browser.Driver},
		{"Mode", config.Reconcile.Mode},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(w, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "%s\n", hr)
	fmt.Fprintf(w, "\n")

	logger.Info().
		Str("version", version).
		Str("environment", config.Environment).
		Str("api", config.API.BaseURL).
		Str("web", config.Web.BaseURL).
		Str("driver", config.Browser.Driver).
		Str("mode", config.Reconcile.Mode).
		Msg("Run started")
}
