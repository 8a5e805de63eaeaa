package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/brokercheck/internal/format"
	"github.com/bobmcallan/brokercheck/internal/reconcile"
	"github.com/bobmcallan/brokercheck/internal/rules"
	"github.com/bobmcallan/brokercheck/internal/web"
)

// step 1
const (
	openEmail            = "open-account-input-email"
	openPhone            = "open-account-input-phone"
	openRegistrationType = "open-account-select-registrationtype"
	openContinue1        = "open-account-btn-continue-step1"
)

// step 2; the app's ids are not consistently dashed
const (
	openFullName    = "open-account-inputfullname"
	openGender      = "open-account-selectgender"
	openBirthday    = "open-accountdatepicker-birthday"
	openIDNumber    = "open-account-inputidnumber"
	openIssuePlace  = "open-account-inputissueplace"
	openIssueDate   = "open-accountdatepicker-issuedate"
	openExpiryDate  = "open-accountdatepicker-expirydate"
	openPermAddress = "open-account-inputpermanentaddress"
	openFATCA       = "open-account-selectfatca"
	openContinue2   = "open-account-btncontinue-step2"
)

// step 3
const (
	openAccountType = "open-account-checkbox-accounttypeid"
	openBrokerCare  = "open-account-input-brokercare"
	openBrokerID    = "open-account-input-brokerid"
	openFinish      = "open-account-btn-finish"
)

// OpenAccountPage drives the three-step account opening wizard.
type OpenAccountPage struct {
	w *web.Client
}

func NewOpenAccountPage(w *web.Client) *OpenAccountPage {
	return &OpenAccountPage{w: w}
}

// radio selects the input of a radio group by value.
func radio(id, value string) string {
	return fmt.Sprintf(`%s[value="%s"]`, web.TestID(id), value)
}

func dmy(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return format.ToDMY(t)
}

func (p *OpenAccountPage) FillStep1(ctx context.Context, s rules.Step1) error {
	if err := p.w.Fill(ctx, openEmail, s.Email); err != nil {
		return err
	}
	if err := p.w.Fill(ctx, openPhone, s.Phone); err != nil {
		return err
	}
	if s.RegistrationType == "" {
		return nil
	}
	return p.w.Select(ctx, openRegistrationType, s.RegistrationType)
}

func (p *OpenAccountPage) FillStep2(ctx context.Context, s rules.Step2) error {
	fills := []struct{ id, value string }{
		{openFullName, s.FullName},
		{openBirthday, dmy(s.Birthday)},
		{openIDNumber, s.IDNumber},
		{openIssuePlace, "Ha Noi"},
		{openIssueDate, dmy(s.IssueDate)},
		{openExpiryDate, dmy(s.Expiry)},
		{openPermAddress, "1 Trang Tien, Ha Noi"},
	}
	for _, f := range fills {
		if err := p.w.Fill(ctx, f.id, f.value); err != nil {
			return err
		}
	}
	if s.Gender != "" {
		if err := p.w.Page().Click(ctx, radio(openGender, s.Gender)); err != nil {
			return fmt.Errorf("failed to pick gender: %w", err)
		}
	}
	if s.FATCA != "" {
		if err := p.w.Page().Click(ctx, radio(openFATCA, s.FATCA)); err != nil {
			return fmt.Errorf("failed to pick FATCA answer: %w", err)
		}
	}
	return nil
}

func (p *OpenAccountPage) FillStep3(ctx context.Context, s rules.Step3) error {
	if len(s.AccountTypes) > 0 {
		if err := p.w.Click(ctx, openAccountType); err != nil {
			return err
		}
	}
	care := "No"
	if s.BrokerCare {
		care = "Yes"
	}
	if err := p.w.Page().Click(ctx, radio(openBrokerCare, care)); err != nil {
		return fmt.Errorf("failed to pick broker care: %w", err)
	}
	if !s.BrokerCare {
		return nil
	}
	return p.w.Fill(ctx, openBrokerID, s.BrokerID)
}

// verifyStep checks the step button is enabled exactly when the rules find no
// violation, and that every violation's message is shown.
func (p *OpenAccountPage) verifyStep(ctx context.Context, cmp *reconcile.Comparator, name, button string, errs []error) {
	enabled := p.w.Enabled(ctx, web.TestID(button))
	cmp.Check(name+" button state", enabled == (len(errs) == 0), fmt.Sprintf("enabled=%t violations=%d", enabled, len(errs)))
	verifyMessages(ctx, p.w, cmp, errs)
}

func (p *OpenAccountPage) VerifyStep1(ctx context.Context, cmp *reconcile.Comparator, s rules.Step1) error {
	if err := p.FillStep1(ctx, s); err != nil {
		return err
	}
	p.verifyStep(ctx, cmp, "step 1", openContinue1, s.Validate())
	return nil
}

func (p *OpenAccountPage) VerifyStep2(ctx context.Context, cmp *reconcile.Comparator, s rules.Step2, today time.Time) error {
	if err := p.FillStep2(ctx, s); err != nil {
		return err
	}
	p.verifyStep(ctx, cmp, "step 2", openContinue2, s.Validate(today))
	return nil
}

func (p *OpenAccountPage) VerifyStep3(ctx context.Context, cmp *reconcile.Comparator, s rules.Step3) error {
	if err := p.FillStep3(ctx, s); err != nil {
		return err
	}
	p.verifyStep(ctx, cmp, "step 3", openFinish, s.Validate())
	return nil
}

// Continue advances from step 1 or 2.
func (p *OpenAccountPage) Continue(ctx context.Context, step int) error {
	id := openContinue1
	if step == 2 {
		id = openContinue2
	}
	if err := p.w.Click(ctx, id); err != nil {
		return err
	}
	return p.w.WaitIdle(ctx)
}

// OpenAccountSuite walks the wizard with one invalid and one valid entry per step.
// The final step is validated but never submitted.
func OpenAccountSuite(clock func() time.Time) *Suite {
	return &Suite{
		Name:  "open-account",
		Title: "Open account wizard",
		Path:  "/open-account",
		Steps: func(ctx context.Context, w *web.Client, cmp *reconcile.Comparator) error {
			p := NewOpenAccountPage(w)
			today := clock()

			if err := p.VerifyStep1(ctx, cmp, rules.Step1{Email: "userdomain.com", Phone: "91234abcd", RegistrationType: rules.RegistrationTypes[0]}); err != nil {
				return err
			}
			step1 := rules.Step1{Email: "phuongta.it1@gmail.com", Phone: "0333129782", RegistrationType: rules.RegistrationTypes[0]}
			if err := p.VerifyStep1(ctx, cmp, step1); err != nil {
				return err
			}
			if err := p.Continue(ctx, 1); err != nil {
				return err
			}

			issued := today.AddDate(-2, 0, 0)
			bad := rules.Step2{FullName: "Tran Thi B", Gender: "F", Birthday: today, IDNumber: "2748347223", IssueDate: issued, Expiry: issued.AddDate(0, 0, -1), FATCA: "N"}
			if err := p.VerifyStep2(ctx, cmp, bad, today); err != nil {
				return err
			}
			good := bad
			good.Birthday = today.AddDate(-30, 0, 0)
			good.Expiry = issued.AddDate(15, 0, 0)
			if err := p.VerifyStep2(ctx, cmp, good, today); err != nil {
				return err
			}
			if err := p.Continue(ctx, 2); err != nil {
				return err
			}

			types := rules.OpenAccountTypes
			if err := p.VerifyStep3(ctx, cmp, rules.Step3{AccountTypes: types, BrokerCare: true, BrokerID: "AB@12"}); err != nil {
				return err
			}
			return p.VerifyStep3(ctx, cmp, rules.Step3{AccountTypes: types, BrokerCare: true, BrokerID: "AB12"})
		},
	}
}
