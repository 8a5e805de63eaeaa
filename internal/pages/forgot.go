package pages

import (
	"context"

	"github.com/bobmcallan/brokercheck/internal/reconcile"
	"github.com/bobmcallan/brokercheck/internal/rules"
	"github.com/bobmcallan/brokercheck/internal/web"
)

const (
	forgotUserID     = "forgotpassword-input-userid"
	forgotIdentifier = "forgotpassword-input-identifier"
	forgotConfirm    = "forgotpassword-btn-confirm"
	errorBanner      = "error-banner"
	successPopup     = "success-popup"
)

// ForgotPasswordPage drives the password reset request.
type ForgotPasswordPage struct {
	w *web.Client
}

func NewForgotPasswordPage(w *web.Client) *ForgotPasswordPage {
	return &ForgotPasswordPage{w: w}
}

func (p *ForgotPasswordPage) Fill(ctx context.Context, userID, idNumber string) error {
	if err := p.w.Fill(ctx, forgotUserID, userID); err != nil {
		return err
	}
	return p.w.Fill(ctx, forgotIdentifier, idNumber)
}

func (p *ForgotPasswordPage) ConfirmEnabled(ctx context.Context) bool {
	return p.w.Enabled(ctx, web.TestID(forgotConfirm))
}

func (p *ForgotPasswordPage) Confirm(ctx context.Context) error {
	if err := p.w.Click(ctx, forgotConfirm); err != nil {
		return err
	}
	return p.w.WaitIdle(ctx)
}

// VerifyConfirmDisabledWhenBlank checks the confirm button needs both fields.
func (p *ForgotPasswordPage) VerifyConfirmDisabledWhenBlank(ctx context.Context, cmp *reconcile.Comparator) error {
	if err := p.Fill(ctx, "", ""); err != nil {
		return err
	}
	cmp.Check("confirm disabled when blank", !p.ConfirmEnabled(ctx), "")
	return nil
}

// VerifyRequest submits userID and idNumber. Input the rules reject must show the error
// banner; accepted input must show either the success popup or the server's banner.
func (p *ForgotPasswordPage) VerifyRequest(ctx context.Context, cmp *reconcile.Comparator, userID, idNumber string) error {
	if err := p.Fill(ctx, userID, idNumber); err != nil {
		return err
	}
	if err := p.Confirm(ctx); err != nil {
		return err
	}

	banner := p.w.Visible(ctx, web.TestID(errorBanner))
	if err := rules.ValidateForgotPassword(userID, idNumber); err != nil {
		cmp.Check("reject "+userID, banner, err.Error())
		return nil
	}
	popup := p.w.Visible(ctx, web.TestID(successPopup))
	cmp.Check("accept "+userID, popup || banner, "no success popup or error banner")
	return nil
}

// ForgotPasswordSuite checks the reset form rules.
func ForgotPasswordSuite() *Suite {
	return &Suite{
		Name:  "forgot-password",
		Title: "Forgot password",
		Path:  "/forgot-password",
		Steps: func(ctx context.Context, w *web.Client, cmp *reconcile.Comparator) error {
			p := NewForgotPasswordPage(w)
			if err := p.VerifyConfirmDisabledWhenBlank(ctx, cmp); err != nil {
				return err
			}
			return p.VerifyRequest(ctx, cmp, "c040899d1", "2748347223")
		},
	}
}
