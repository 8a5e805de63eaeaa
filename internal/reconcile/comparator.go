// Package reconcile compares UI values with expected API values and collects the outcome
package reconcile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/format"
	"github.com/bobmcallan/brokercheck/internal/models"
)

// DefaultTolerance is the allowed difference for footer totals.
const DefaultTolerance = 0.01

// Comparator records comparisons for one screen run. In enforce mode Err reports
// every mismatch; in observe mode mismatches are only logged.
type Comparator struct {
	mu          sync.Mutex
	screen      string
	enforce     bool
	logger      *common.Logger
	comparisons []models.Comparison
	checks      []models.Check
}

// New creates a comparator for screen.
func New(screen string, enforce bool, logger *common.Logger) *Comparator {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Comparator{screen: screen, enforce: enforce, logger: logger}
}

// Compare checks ui against expected. ok is false when the UI element could not be read,
// which always counts as a mismatch.
func (c *Comparator) Compare(field, ui string, ok bool, expected string, policy models.Policy) bool {
	ui = strings.TrimSpace(ui)
	expected = strings.TrimSpace(expected)

	matched := ok
	if ok {
		switch policy {
		case models.PolicyContains:
			matched = strings.Contains(ui, expected)
		default:
			policy = models.PolicyExact
			matched = ui == expected
		}
	}

	c.record(models.Comparison{Field: field, UI: ui, Expected: expected, Policy: policy, Missing: !ok, Matched: matched})
	return matched
}

// CompareNumbers parses a formatted UI number and checks it lies within tolerance of expected.
func (c *Comparator) CompareNumbers(field, ui string, ok bool, expected, tolerance float64) bool {
	got, parsed := format.ParseUINumber(ui)
	matched := ok && parsed && math.Abs(got-expected) <= tolerance

	c.record(models.Comparison{
		Field:    field,
		UI:       strings.TrimSpace(ui),
		Expected: strconv.FormatFloat(expected, 'f', -1, 64),
		Policy:   models.PolicyNumeric,
		Missing:  !ok,
		Matched:  matched,
	})
	return matched
}

// Check records a non-field assertion.
func (c *Comparator) Check(name string, ok bool, detail string) bool {
	c.mu.Lock()
	c.checks = append(c.checks, models.Check{Name: name, Passed: ok, Detail: detail})
	c.mu.Unlock()

	ev := c.logger.Info()
	status := "PASS"
	if !ok {
		ev = c.logger.Warn()
		status = "FAIL"
	}
	ev.Str("screen", c.screen).Str("check", name).Str("detail", detail).Msg(status)
	return ok
}

// CheckCount records a row count equality check.
func (c *Comparator) CheckCount(name string, ui, expected int) bool {
	return c.Check(name, ui == expected, fmt.Sprintf("ui=%d expected=%d", ui, expected))
}

func (c *Comparator) record(cmp models.Comparison) {
	c.mu.Lock()
	c.comparisons = append(c.comparisons, cmp)
	c.mu.Unlock()

	if cmp.Matched {
		c.logger.Info().
			Str("screen", c.screen).
			Str("field", cmp.Field).
			Str("ui", cmp.UI).
			Str("expected", cmp.Expected).
			Msg("MATCH")
		return
	}
	c.logger.Warn().
		Str("screen", c.screen).
		Str("field", cmp.Field).
		Str("ui", cmp.UI).
		Str("expected", cmp.Expected).
		Str("policy", string(cmp.Policy)).
		Bool("missing", cmp.Missing).
		Msg("MISMATCH")
}

// Comparisons returns a copy of the recorded comparisons.
func (c *Comparator) Comparisons() []models.Comparison {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Comparison(nil), c.comparisons...)
}

// Checks returns a copy of the recorded checks.
func (c *Comparator) Checks() []models.Check {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Check(nil), c.checks...)
}

// Enforce reports whether mismatches fail the run.
func (c *Comparator) Enforce() bool {
	return c.enforce
}

// Err returns a *MismatchError listing every failure, or nil when all passed or in observe mode.
func (c *Comparator) Err() error {
	if !c.enforce {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var failed []models.Comparison
	for _, cmp := range c.comparisons {
		if !cmp.Matched {
			failed = append(failed, cmp)
		}
	}
	var failedChecks []models.Check
	for _, ch := range c.checks {
		if !ch.Passed {
			failedChecks = append(failedChecks, ch)
		}
	}
	if len(failed) == 0 && len(failedChecks) == 0 {
		return nil
	}
	return &MismatchError{Screen: c.screen, Comparisons: failed, Checks: failedChecks}
}

// MismatchError aggregates the failures of one screen run.
type MismatchError struct {
	Screen      string
	Comparisons []models.Comparison
	Checks      []models.Check
}

func (e *MismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d mismatched fields, %d failed checks", e.Screen, len(e.Comparisons), len(e.Checks))
	for _, cmp := range e.Comparisons {
		if cmp.Missing {
			fmt.Fprintf(&b, "\n  %s: not found on page (expected %q)", cmp.Field, cmp.Expected)
			continue
		}
		fmt.Fprintf(&b, "\n  %s: ui %q, expected %q (%s)", cmp.Field, cmp.UI, cmp.Expected, cmp.Policy)
	}
	for _, ch := range e.Checks {
		fmt.Fprintf(&b, "\n  %s: %s", ch.Name, ch.Detail)
	}
	return b.String()
}
