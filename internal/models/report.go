package models

import "time"

// Policy is how a UI value is compared with the expected API value.
type Policy string

const (
	PolicyExact    Policy = "exact"
	PolicyContains Policy = "contains"
	PolicyNumeric  Policy = "numeric"
)

// Comparison records one field check.
type Comparison struct {
	Field    string `json:"field"`
	UI       string `json:"ui"`
	Expected string `json:"expected"`
	Policy   Policy `json:"policy"`
	Missing  bool   `json:"missing,omitempty"` // UI element could not be read
	Matched  bool   `json:"matched"`
}

// Check records a non-field assertion such as a row count or shape rule.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// ScreenReport is the outcome of one scenario on one screen.
type ScreenReport struct {
	RunID       string        `json:"run_id"`
	Screen      string        `json:"screen"`
	Scenario    string        `json:"scenario"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	Comparisons []Comparison  `json:"comparisons"`
	Checks      []Check       `json:"checks"`
	Payload     any           `json:"payload,omitempty"` // API data for the api scenario
	Error       string        `json:"error,omitempty"`
}

// Matched counts matching comparisons.
func (r *ScreenReport) Matched() int {
	n := 0
	for _, c := range r.Comparisons {
		if c.Matched {
			n++
		}
	}
	return n
}

// Mismatched counts failing comparisons.
func (r *ScreenReport) Mismatched() int {
	return len(r.Comparisons) - r.Matched()
}

// FailedChecks counts failing checks.
func (r *ScreenReport) FailedChecks() int {
	n := 0
	for _, c := range r.Checks {
		if !c.Passed {
			n++
		}
	}
	return n
}

// Passed reports whether every comparison and check passed and no error occurred.
func (r *ScreenReport) Passed() bool {
	return r.Error == "" && r.Mismatched() == 0 && r.FailedChecks() == 0
}
