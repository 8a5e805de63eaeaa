package pages

import (
	"context"
	"strings"

	"github.com/bobmcallan/brokercheck/internal/reconcile"
	"github.com/bobmcallan/brokercheck/internal/rules"
	"github.com/bobmcallan/brokercheck/internal/web"
)

const (
	loginUsername = "login-input-username"
	loginPassword = "login-input-password"
	loginSubmit   = "login-btn-submit"
	loginToggle   = "login-action-password-togglevisibility"
)

// Link is a login page link and the path fragment it should lead to.
type Link struct {
	ID   string
	Path string
}

// LoginLinks are the footer and form links of the login page.
var LoginLinks = []Link{
	{ID: "login-link-forgotpassword", Path: "forgot-password"},
	{ID: "login-link-open-account", Path: "open-account"},
	{ID: "login-link-users-guide", Path: "users-guide"},
	{ID: "login-link-support", Path: "support"},
	{ID: "login-link-policy", Path: "privacy-policy"},
	{ID: "login-link-terms", Path: "terms"},
}

// LoginPage drives the sign-in form.
type LoginPage struct {
	w *web.Client
}

func NewLoginPage(w *web.Client) *LoginPage {
	return &LoginPage{w: w}
}

func (p *LoginPage) Open(ctx context.Context) error {
	return p.w.Open(ctx, web.LoginPath)
}

func (p *LoginPage) FillCredentials(ctx context.Context, username, password string) error {
	if err := p.w.Fill(ctx, loginUsername, username); err != nil {
		return err
	}
	return p.w.Fill(ctx, loginPassword, password)
}

// Submit clicks the login button and waits for the response.
func (p *LoginPage) Submit(ctx context.Context) error {
	if err := p.w.Click(ctx, loginSubmit); err != nil {
		return err
	}
	return p.w.WaitIdle(ctx)
}

// SubmitWithEnter presses Enter in the password field.
func (p *LoginPage) SubmitWithEnter(ctx context.Context) error {
	if err := p.w.Page().PressEnter(ctx, web.TestID(loginPassword)); err != nil {
		return err
	}
	return p.w.WaitIdle(ctx)
}

func (p *LoginPage) SubmitEnabled(ctx context.Context) bool {
	return p.w.Enabled(ctx, web.TestID(loginSubmit))
}

// PasswordType is the type attribute of the password input.
func (p *LoginPage) PasswordType(ctx context.Context) string {
	t, _ := p.w.Attribute(ctx, web.TestID(loginPassword), "type")
	return t
}

func (p *LoginPage) TogglePassword(ctx context.Context) error {
	return p.w.Click(ctx, loginToggle)
}

// ErrorShown reports whether the bad-credentials message is displayed.
func (p *LoginPage) ErrorShown(ctx context.Context) bool {
	return p.w.HasText(ctx, rules.MsgInvalidCredentials)
}

// VerifySubmitDisabledWhenBlank checks the button stays disabled while either field is empty.
func (p *LoginPage) VerifySubmitDisabledWhenBlank(ctx context.Context, cmp *reconcile.Comparator) error {
	if err := p.FillCredentials(ctx, "", "123456"); err != nil {
		return err
	}
	cmp.Check("submit disabled without username", !p.SubmitEnabled(ctx), "")

	if err := p.FillCredentials(ctx, "linhdtt01", ""); err != nil {
		return err
	}
	cmp.Check("submit disabled without password", !p.SubmitEnabled(ctx), "")
	return nil
}

// VerifyPasswordToggle clicks the eye icon times times and checks the input type
// follows the toggle after every click.
func (p *LoginPage) VerifyPasswordToggle(ctx context.Context, cmp *reconcile.Comparator, times int) error {
	var model rules.PasswordToggle
	cmp.Check("password masked", p.PasswordType(ctx) == model.InputType(), p.PasswordType(ctx))

	for i := 0; i < times; i++ {
		if err := p.TogglePassword(ctx); err != nil {
			return err
		}
		want := model.Toggle()
		got := p.PasswordType(ctx)
		cmp.Check("password toggle", got == want, "type "+got+", want "+want)
	}
	return nil
}

// VerifyRejected submits bad credentials and checks the error message appears.
func (p *LoginPage) VerifyRejected(ctx context.Context, cmp *reconcile.Comparator, username, password string) error {
	if err := p.FillCredentials(ctx, username, password); err != nil {
		return err
	}
	if err := p.Submit(ctx); err != nil {
		return err
	}
	cmp.Check("bad credentials rejected", p.ErrorShown(ctx), rules.MsgInvalidCredentials)
	return nil
}

// VerifyLinks follows every login link from a fresh login page.
func (p *LoginPage) VerifyLinks(ctx context.Context, cmp *reconcile.Comparator) error {
	for _, l := range LoginLinks {
		if err := p.Open(ctx); err != nil {
			return err
		}
		if err := p.w.Click(ctx, l.ID); err != nil {
			cmp.Check(l.ID, false, err.Error())
			continue
		}
		if err := p.w.WaitIdle(ctx); err != nil {
			return err
		}
		url := p.w.Page().URL()
		cmp.Check(l.ID, strings.Contains(url, l.Path), url)
	}
	return nil
}

// LoginSuite checks the login form without signing in.
func LoginSuite() *Suite {
	return &Suite{
		Name:  "login",
		Title: "Login form",
		Path:  web.LoginPath,
		Steps: func(ctx context.Context, w *web.Client, cmp *reconcile.Comparator) error {
			p := NewLoginPage(w)
			if err := p.VerifySubmitDisabledWhenBlank(ctx, cmp); err != nil {
				return err
			}
			if err := p.VerifyPasswordToggle(ctx, cmp, 3); err != nil {
				return err
			}
			if err := p.VerifyRejected(ctx, cmp, "WrongUser", "wrongpass"); err != nil {
				return err
			}
			return p.VerifyLinks(ctx, cmp)
		},
	}
}
