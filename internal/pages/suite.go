// Package pages holds page objects for the UI-only suites: forms and filters whose
// behaviour is checked against the client-side rules rather than API data.
package pages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bobmcallan/brokercheck/internal/reconcile"
	"github.com/bobmcallan/brokercheck/internal/rules"
	"github.com/bobmcallan/brokercheck/internal/screens"
	"github.com/bobmcallan/brokercheck/internal/web"
)

// Suite runs a sequence of UI checks on one page. It satisfies screens.Screen so the
// screen runner can execute suites with the same page-per-run isolation.
type Suite struct {
	Name  string
	Title string
	Path  string
	Login bool // sign in before opening Path
	Steps func(ctx context.Context, w *web.Client, cmp *reconcile.Comparator) error
}

func (s *Suite) Describe() screens.Info {
	return screens.Info{Name: s.Name, Title: s.Title, Path: s.Path}
}

// Run ignores the scenario beyond requiring a page.
func (s *Suite) Run(ctx context.Context, sess *screens.Session, _ screens.Scenario) (any, error) {
	if sess.Web == nil {
		return nil, fmt.Errorf("suite %s needs a browser page", s.Name)
	}
	if s.Login {
		if err := sess.Web.Login(ctx); err != nil {
			return nil, err
		}
	}
	if err := sess.Web.Open(ctx, s.Path); err != nil {
		return nil, err
	}
	return nil, s.Steps(ctx, sess.Web, sess.Compare)
}

// DateFilter is a from/to date pair plus its query button.
type DateFilter struct {
	From  string
	To    string
	Query string
}

// VerifyRange enters a DD/MM/YYYY range, queries, and checks the page shows the
// message the range rule produces, or none of the range messages when it is valid.
func (f DateFilter) VerifyRange(ctx context.Context, w *web.Client, cmp *reconcile.Comparator, from, to string) error {
	if err := w.Fill(ctx, f.From, from); err != nil {
		return err
	}
	if err := w.Fill(ctx, f.To, to); err != nil {
		return err
	}
	if err := w.Click(ctx, f.Query); err != nil {
		return err
	}
	if err := w.WaitIdle(ctx); err != nil {
		return err
	}

	name := fmt.Sprintf("range %s..%s", from, to)
	err := rules.ValidateDMYRange(from, to)
	if err != nil {
		cmp.Check(name, w.HasText(ctx, err.Error()), "expected message: "+err.Error())
		return nil
	}
	shown := w.HasText(ctx, rules.MsgToBeforeFrom) || w.HasText(ctx, rules.MsgRangeTooLong)
	cmp.Check(name, !shown, "valid range must not show a range error")
	return nil
}

// verifyOptions checks a select lists exactly want.
func verifyOptions(ctx context.Context, w *web.Client, cmp *reconcile.Comparator, name, id string, want []string) {
	got, ok := w.OptionValue(ctx, web.TestID(id))
	cmp.Check(name+" options", ok && rules.SameOptions(got, want), fmt.Sprintf("got %v want %v", got, want))
}

// verifyMessages checks every violation message is on the page.
func verifyMessages(ctx context.Context, w *web.Client, cmp *reconcile.Comparator, errs []error) {
	for _, err := range errs {
		var v *rules.Violation
		name := "message"
		if errors.As(err, &v) {
			name = v.Field + " message"
		}
		cmp.Check(name, w.HasText(ctx, err.Error()), err.Error())
	}
}

// Suites lists every UI-only suite. clock supplies the time the transfer-window rules use.
func Suites(clock func() time.Time) []screens.Screen {
	if clock == nil {
		clock = time.Now
	}
	return []screens.Screen{
		LoginSuite(),
		LogoutSuite(),
		ForgotPasswordSuite(),
		OpenAccountSuite(clock),
		OrderHistorySuite(),
		CashTransferHistorySuite(),
		TransferSuite(VSDWithdrawForm, clock),
		TransferSuite(VSDDepositForm, clock),
		TransferSuite(BankTransferForm, clock),
	}
}

// SuiteNames lists the suite names in display order.
func SuiteNames() []string {
	var names []string
	for _, s := range Suites(nil) {
		names = append(names, s.Describe().Name)
	}
	return names
}

// LookupSuites returns the named suites. An unknown name is an error.
func LookupSuites(clock func() time.Time, names ...string) ([]screens.Screen, error) {
	byName := make(map[string]screens.Screen)
	for _, s := range Suites(clock) {
		byName[s.Describe().Name] = s
	}
	out := make([]screens.Screen, 0, len(names))
	for _, n := range names {
		s, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("unknown suite %q", n)
		}
		out = append(out, s)
	}
	return out, nil
}
