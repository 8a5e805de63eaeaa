package pages

import (
	"context"

	"github.com/bobmcallan/brokercheck/internal/reconcile"
	"github.com/bobmcallan/brokercheck/internal/rules"
	"github.com/bobmcallan/brokercheck/internal/web"
)

const (
	logoutTrigger = "logout-trigger"
	logoutStay    = "logout-btn-stay"
	logoutConfirm = "logout-btn-confirm"
	userMenu      = "user-menu"
	loginForm     = "login-form"

	logoutModalSelector = ".logout-modal"
)

// LogoutModal drives the logout confirmation dialog.
type LogoutModal struct {
	w     *web.Client
	state rules.Modal
}

func NewLogoutModal(w *web.Client) *LogoutModal {
	return &LogoutModal{w: w}
}

func (m *LogoutModal) Open(ctx context.Context) error {
	if err := m.w.Click(ctx, logoutTrigger); err != nil {
		return err
	}
	m.state.Open()
	return nil
}

func (m *LogoutModal) Visible(ctx context.Context) bool {
	return m.w.Visible(ctx, logoutModalSelector)
}

// Stay dismisses the dialog and keeps the session.
func (m *LogoutModal) Stay(ctx context.Context) error {
	if err := m.state.Cancel(); err != nil {
		return err
	}
	return m.w.Click(ctx, logoutStay)
}

// Confirm signs out.
func (m *LogoutModal) Confirm(ctx context.Context) error {
	if err := m.state.Confirm(); err != nil {
		return err
	}
	if err := m.w.Click(ctx, logoutConfirm); err != nil {
		return err
	}
	return m.w.WaitIdle(ctx)
}

func (m *LogoutModal) State() rules.ModalState {
	return m.state.State()
}

// LogoutSuite opens the logout dialog twice: once staying, once confirming.
func LogoutSuite() *Suite {
	return &Suite{
		Name:  "logout",
		Title: "Logout dialog",
		Path:  "/",
		Login: true,
		Steps: func(ctx context.Context, w *web.Client, cmp *reconcile.Comparator) error {
			m := NewLogoutModal(w)

			if err := m.Open(ctx); err != nil {
				return err
			}
			cmp.Check("modal opens", m.Visible(ctx), m.State().String())
			if err := m.Stay(ctx); err != nil {
				return err
			}
			cmp.Check("stay closes modal", !m.Visible(ctx), m.State().String())
			cmp.Check("stay keeps session", w.Visible(ctx, web.TestID(userMenu)), "")

			m = NewLogoutModal(w)
			if err := m.Open(ctx); err != nil {
				return err
			}
			if err := m.Confirm(ctx); err != nil {
				return err
			}
			cmp.Check("confirm signs out", w.Visible(ctx, web.TestID(loginForm)), w.Page().URL())
			return nil
		},
	}
}
