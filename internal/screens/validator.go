// Package screens defines the per-screen API-to-UI validators and runs them
package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/format"
	"github.com/bobmcallan/brokercheck/internal/interfaces"
	"github.com/bobmcallan/brokercheck/internal/models"
	"github.com/bobmcallan/brokercheck/internal/reconcile"
	"github.com/bobmcallan/brokercheck/internal/web"
)

// Scenario selects which part of a screen is exercised.
type Scenario string

const (
	ScenarioPing  Scenario = "ping"  // API login and fetch only
	ScenarioFull  Scenario = "full"  // fields, table and shape
	ScenarioKPI   Scenario = "kpi"   // fields only
	ScenarioTable Scenario = "table" // table only
	ScenarioAPI   Scenario = "api"   // API dump with shape checks
)

// Scenarios lists every scenario in display order.
var Scenarios = []Scenario{ScenarioPing, ScenarioFull, ScenarioKPI, ScenarioTable, ScenarioAPI}

// ParseScenario validates a scenario name.
func ParseScenario(s string) (Scenario, error) {
	for _, sc := range Scenarios {
		if strings.EqualFold(s, string(sc)) {
			return sc, nil
		}
	}
	return "", fmt.Errorf("unknown scenario %q", s)
}

// NeedsBrowser reports whether the scenario reads the web UI.
func (s Scenario) NeedsBrowser() bool {
	return s == ScenarioFull || s == ScenarioKPI || s == ScenarioTable
}

// Env carries the API clients and clock shared by every screen of a run.
type Env struct {
	FOS       interfaces.FOSClient
	Events    interfaces.EventsClient
	AccountID string
	Dates     *format.Dates
	Now       func() time.Time
	MaxRows   int // caps every table when > 0
	Logger    *common.Logger
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Env is shared by concurrently running screens, so unset fields resolve to
// package defaults and are never written back.
var (
	defaultDates  = format.NewDates(nil)
	defaultLogger = common.NewSilentLogger()
)

func (e *Env) dates() *format.Dates {
	if e.Dates == nil {
		return defaultDates
	}
	return e.Dates
}

func (e *Env) logger() *common.Logger {
	if e.Logger == nil {
		return defaultLogger
	}
	return e.Logger
}

// lastMonths is the API date range ending today.
func (e *Env) lastMonths(n int) models.DateRange {
	from, to := e.dates().LastMonths(e.now(), n)
	return models.DateRange{From: format.ToCompact(from), To: format.ToCompact(to)}
}

// Session is one screen run's browser page and comparator. Web is nil for
// scenarios that never open the UI.
type Session struct {
	Web     *web.Client
	Compare *reconcile.Comparator
}

// Info describes a screen.
type Info struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Path   string `json:"path"`
	Marker string `json:"marker"`
}

// Screen is a runnable validator. Run returns the fetched API data for the api scenario.
type Screen interface {
	Describe() Info
	Run(ctx context.Context, s *Session, scenario Scenario) (any, error)
}

// Field compares one KPI against a value derived from the API data.
type Field[T any] struct {
	Name     string
	ID       string // data-testid
	Policy   models.Policy
	Expected func(T) string
}

// Column compares one table column row by row. When, if set, skips rows it rejects.
type Column[T any] struct {
	Name     string
	Column   string
	Policy   models.Policy
	Expected func(data T, row int) string
	When     func(data T, row int) bool
}

// Table compares the first rows of a UI table with the API rows.
type Table[T any] struct {
	Layout     web.CellLayout
	CountBy    string // column whose cells are counted as rows
	Rows       func(T) int
	MaxRows    int
	CheckCount bool // record UI row count == API row count
	Columns    []Column[T]
}

// ScreenValidator reconciles one screen whose API data has type T.
type ScreenValidator[T any] struct {
	Name   string
	Title  string
	Path   string
	Marker string
	Policy models.Policy // default for fields and columns

	Fetch   func(ctx context.Context) (T, error)
	Prepare func(ctx context.Context, w *web.Client, data T) error // filters applied after navigation
	Fields  []Field[T]
	Table   *Table[T]
	Shape   func(T) []models.Check

	env *Env
}

func (v *ScreenValidator[T]) Describe() Info {
	return Info{Name: v.Name, Title: v.Title, Path: v.Path, Marker: v.Marker}
}

func (v *ScreenValidator[T]) Run(ctx context.Context, s *Session, scenario Scenario) (any, error) {
	data, err := v.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s data: %w", v.Name, err)
	}

	switch scenario {
	case ScenarioPing:
		s.Compare.Check("api reachable", true, v.Name)
		return nil, nil
	case ScenarioAPI:
		v.shape(s, data)
		return data, nil
	}

	if s.Web == nil {
		return nil, fmt.Errorf("scenario %s needs a browser page", scenario)
	}
	if err := s.Web.Login(ctx); err != nil {
		return nil, err
	}
	if err := s.Web.NavigateTo(ctx, v.Path, v.Marker); err != nil {
		return nil, err
	}
	if v.Prepare != nil {
		if err := v.Prepare(ctx, s.Web, data); err != nil {
			return nil, fmt.Errorf("failed to prepare %s: %w", v.Name, err)
		}
	}

	if scenario == ScenarioFull || scenario == ScenarioKPI {
		v.compareFields(ctx, s, data)
	}
	if (scenario == ScenarioFull || scenario == ScenarioTable) && v.Table != nil {
		v.compareTable(ctx, s, data)
	}
	if scenario == ScenarioFull {
		v.shape(s, data)
	}
	return nil, nil
}

func (v *ScreenValidator[T]) policy(p models.Policy) models.Policy {
	if p != "" {
		return p
	}
	if v.Policy != "" {
		return v.Policy
	}
	return models.PolicyExact
}

func (v *ScreenValidator[T]) compareFields(ctx context.Context, s *Session, data T) {
	for _, f := range v.Fields {
		ui, ok := s.Web.UIValue(ctx, web.TestID(f.ID))
		s.Compare.Compare(f.Name, ui, ok, f.Expected(data), v.policy(f.Policy))
	}
}

func (v *ScreenValidator[T]) compareTable(ctx context.Context, s *Session, data T) {
	t := v.Table
	uiRows := s.Web.RowCount(ctx, t.Layout.Rows(t.CountBy))
	apiRows := t.Rows(data)

	if t.CheckCount {
		s.Compare.CheckCount("row count", uiRows, apiRows)
	}

	n := min(uiRows, apiRows)
	limit := t.MaxRows
	if v.env != nil && v.env.MaxRows > 0 && (limit == 0 || v.env.MaxRows < limit) {
		limit = v.env.MaxRows
	}
	if limit > 0 {
		n = min(n, limit)
	}

	for i := 0; i < n; i++ {
		for _, col := range t.Columns {
			if col.When != nil && !col.When(data, i) {
				continue
			}
			ui, ok := s.Web.TableCell(ctx, t.Layout, col.Column, i)
			s.Compare.Compare(fmt.Sprintf("row %d %s", i, col.Name), ui, ok, col.Expected(data, i), v.policy(col.Policy))
		}
	}
}

func (v *ScreenValidator[T]) shape(s *Session, data T) {
	if v.Shape == nil {
		return
	}
	for _, c := range v.Shape(data) {
		s.Compare.Check(c.Name, c.Passed, c.Detail)
	}
}
