package rules

import "fmt"

// PasswordToggle mirrors the login form's show/hide control.
type PasswordToggle struct {
	visible bool
}

// Toggle flips visibility and returns the input type the field should now have.
func (p *PasswordToggle) Toggle() string {
	p.visible = !p.visible
	return p.InputType()
}

// InputType is "text" when visible, "password" otherwise.
func (p *PasswordToggle) InputType() string {
	if p.visible {
		return "text"
	}
	return "password"
}

// ModalState is a confirmation dialog state.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
	ModalConfirmed
	ModalCancelled
)

func (s ModalState) String() string {
	switch s {
	case ModalClosed:
		return "closed"
	case ModalOpen:
		return "open"
	case ModalConfirmed:
		return "confirmed"
	case ModalCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("ModalState(%d)", int(s))
}

// Modal is a confirm/cancel dialog such as logout or transfer confirmation.
type Modal struct {
	state ModalState
}

// State returns the current state.
func (m *Modal) State() ModalState {
	return m.state
}

// Open shows the dialog. Opening an open dialog is a no-op.
func (m *Modal) Open() {
	if m.state != ModalOpen {
		m.state = ModalOpen
	}
}

// Confirm resolves an open dialog.
func (m *Modal) Confirm() error {
	return m.resolve(ModalConfirmed)
}

// Cancel dismisses an open dialog.
func (m *Modal) Cancel() error {
	return m.resolve(ModalCancelled)
}

func (m *Modal) resolve(to ModalState) error {
	if m.state != ModalOpen {
		return fmt.Errorf("modal is %s, not open", m.state)
	}
	m.state = to
	return nil
}
