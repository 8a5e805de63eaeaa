package screens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/interfaces"
	"github.com/bobmcallan/brokercheck/internal/models"
	"github.com/bobmcallan/brokercheck/internal/reconcile"
	"github.com/bobmcallan/brokercheck/internal/web"
)

// DefaultParallel is the number of screens run at once when unset.
const DefaultParallel = 4

// Runner runs screens concurrently, one browser page per screen.
type Runner struct {
	Browser  interfaces.Browser // may be nil for ping and api scenarios
	Web      common.WebConfig
	Enforce  bool
	Parallel int
	Reports  interfaces.ReportWriter // optional
	Logger   *common.Logger
}

// Run executes scenario on every screen. Reports are returned in screen order;
// the error joins every screen failure and, in enforce mode, every mismatch.
func (r *Runner) Run(ctx context.Context, screens []Screen, scenario Scenario) ([]*models.ScreenReport, error) {
	logger := r.Logger
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	if scenario.NeedsBrowser() && r.Browser == nil {
		return nil, fmt.Errorf("scenario %s needs a browser", scenario)
	}

	runID := uuid.New().String()
	reports := make([]*models.ScreenReport, len(screens))
	errs := make([]error, len(screens))

	parallel := r.Parallel
	if parallel <= 0 {
		parallel = DefaultParallel
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, s := range screens {
		g.Go(func() error {
			reports[i], errs[i] = r.runOne(gctx, runID, s, scenario, logger)
			// screen failures are collected, never cancel siblings
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return reports, err
	}
	return reports, errors.Join(errs...)
}

func (r *Runner) runOne(ctx context.Context, runID string, s Screen, scenario Scenario, logger *common.Logger) (*models.ScreenReport, error) {
	info := s.Describe()
	log := &common.Logger{Logger: logger.With().Str("screen", info.Name).Str("run_id", runID).Logger()}

	report := &models.ScreenReport{
		RunID:     runID,
		Screen:    info.Name,
		Scenario:  string(scenario),
		StartedAt: time.Now(),
	}

	cmp := reconcile.New(info.Name, r.Enforce, log)
	session := &Session{Compare: cmp}

	var runErr error
	if scenario.NeedsBrowser() {
		page, err := r.Browser.NewPage(ctx)
		if err != nil {
			runErr = fmt.Errorf("failed to open page for %s: %w", info.Name, err)
		} else {
			defer page.Close()
			session.Web = web.NewClient(page, r.Web, log)
		}
	}

	if runErr == nil {
		log.Info().Str("scenario", string(scenario)).Msg("Screen started")
		report.Payload, runErr = s.Run(ctx, session, scenario)
	}

	report.Duration = time.Since(report.StartedAt)
	report.Comparisons = cmp.Comparisons()
	report.Checks = cmp.Checks()
	if runErr != nil {
		report.Error = runErr.Error()
	}

	log.Info().
		Int("matched", report.Matched()).
		Int("mismatched", report.Mismatched()).
		Int("failed_checks", report.FailedChecks()).
		Dur("duration", report.Duration).
		Bool("passed", report.Passed()).
		Msg("Screen finished")

	if r.Reports != nil {
		if dir, err := r.Reports.Write(report); err != nil {
			log.Warn().Err(err).Msg("Failed to write report")
		} else {
			log.Info().Str("dir", dir).Msg("Report written")
		}
	}

	if runErr != nil {
		return report, fmt.Errorf("%s: %w", info.Name, runErr)
	}
	return report, cmp.Err()
}
