package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/brokercheck/internal/format"
	"github.com/bobmcallan/brokercheck/internal/reconcile"
	"github.com/bobmcallan/brokercheck/internal/rules"
	"github.com/bobmcallan/brokercheck/internal/web"
)

// FormIDs are the data-testids of one transfer form.
type FormIDs struct {
	Name         string
	Path         string
	Available    string
	Amount       string
	Content      string
	Reset        string
	Submit       string
	Modal        string
	ModalConfirm string
	ModalCancel  string
	Policy       rules.TransferPolicy
}

// The three transfer forms.
var (
	VSDWithdrawForm = FormIDs{
		Name:         "vsd-withdraw",
		Path:         "/cash-vsd-withdraw",
		Available:    "cash-vsd-withdraw-statavailable",
		Amount:       "cash-vsd-withdraw-inputamount",
		Content:      "cash-vsd-withdraw-inputcontent",
		Reset:        "cash-vsd-withdraw-btn-reset",
		Submit:       "cash-vsd-withdraw-btn-confirm",
		Modal:        "cash-vsd-withdraw-modal",
		ModalConfirm: "cash-vsd-withdraw-modal-btnconfirm",
		ModalCancel:  "cash-vsd-withdraw-modal-btncancel",
		Policy:       rules.VSDWithdraw,
	}
	VSDDepositForm = FormIDs{
		Name:         "vsd-deposit",
		Path:         "/vsd-deposit",
		Available:    "vsd-depositlabel-available",
		Amount:       "vsd-depositinput-amount",
		Content:      "vsd-depositinput-content",
		Reset:        "vsd-depositbtn-reset",
		Submit:       "vsd-depositbtn-confirm",
		Modal:        "vsd-depositmodal",
		ModalConfirm: "vsd-depositmodal-btn-confirm",
		ModalCancel:  "vsd-depositmodal-btn-cancel",
		Policy:       rules.VSDDeposit,
	}
	BankTransferForm = FormIDs{
		Name:         "bank-transfer",
		Path:         "/bank-transfer",
		Available:    "bank-transfer-labelavailable",
		Amount:       "bank-transfer-input-amount",
		Content:      "bank-transfer-input-content",
		Reset:        "banktransfer-action-reset",
		Submit:       "banktransfer-action-next",
		Modal:        "banktransfer-modal",
		ModalConfirm: "banktransfer-modal-btnconfirm",
		ModalCancel:  "banktransfer-modal-btncancel",
		Policy:       rules.BankTransfer,
	}
)

// TransferForm drives one transfer form and its confirmation modal.
type TransferForm struct {
	ids   FormIDs
	w     *web.Client
	modal rules.Modal
}

func NewTransferForm(w *web.Client, ids FormIDs) *TransferForm {
	return &TransferForm{ids: ids, w: w}
}

// Available reads the available balance label.
func (f *TransferForm) Available(ctx context.Context) (decimal.Decimal, bool) {
	text, ok := f.w.UIValue(ctx, web.TestID(f.ids.Available))
	if !ok {
		return decimal.Zero, false
	}
	v, ok := format.ParseUINumber(text)
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(v), true
}

func (f *TransferForm) Enter(ctx context.Context, amount decimal.Decimal, content string) error {
	if err := f.w.Fill(ctx, f.ids.Amount, amount.String()); err != nil {
		return err
	}
	return f.w.Fill(ctx, f.ids.Content, content)
}

func (f *TransferForm) Reset(ctx context.Context) error {
	return f.w.Click(ctx, f.ids.Reset)
}

// Submit clicks the form button; the modal opens when the form is accepted.
func (f *TransferForm) Submit(ctx context.Context) error {
	if err := f.w.Click(ctx, f.ids.Submit); err != nil {
		return err
	}
	if err := f.w.WaitIdle(ctx); err != nil {
		return err
	}
	if f.ModalVisible(ctx) {
		f.modal.Open()
	}
	return nil
}

func (f *TransferForm) ModalVisible(ctx context.Context) bool {
	return f.w.Visible(ctx, web.TestID(f.ids.Modal))
}

// Cancel dismisses the confirmation modal.
func (f *TransferForm) Cancel(ctx context.Context) error {
	if err := f.modal.Cancel(); err != nil {
		return err
	}
	return f.w.Click(ctx, f.ids.ModalCancel)
}

// Confirm accepts the confirmation modal and places the transfer.
func (f *TransferForm) Confirm(ctx context.Context) error {
	if err := f.modal.Confirm(); err != nil {
		return err
	}
	if err := f.w.Click(ctx, f.ids.ModalConfirm); err != nil {
		return err
	}
	return f.w.WaitIdle(ctx)
}

// VerifyRequest enters amount and content and submits at time at. A request the rules
// accept must open the modal, which is then cancelled; a rejected one must show each
// violation message and keep the modal closed.
func (f *TransferForm) VerifyRequest(ctx context.Context, cmp *reconcile.Comparator, amount decimal.Decimal, content string, at time.Time) error {
	available, ok := f.Available(ctx)
	if !ok {
		cmp.Check(f.ids.Name+" available balance", false, "not readable")
		return nil
	}
	if err := f.Enter(ctx, amount, content); err != nil {
		return err
	}
	if err := f.Submit(ctx); err != nil {
		return err
	}

	errs := f.ids.Policy.Validate(rules.TransferRequest{Amount: amount, Available: available, Content: content, At: at})
	name := fmt.Sprintf("%s amount %s", f.ids.Name, amount)
	if len(errs) == 0 {
		opened := f.ModalVisible(ctx)
		cmp.Check(name+" opens confirmation", opened, f.modal.State().String())
		if opened {
			if err := f.Cancel(ctx); err != nil {
				return err
			}
			cmp.Check(name+" cancel closes confirmation", !f.ModalVisible(ctx), f.modal.State().String())
		}
		return f.Reset(ctx)
	}

	cmp.Check(name+" blocked", !f.ModalVisible(ctx), fmt.Sprintf("%d violations", len(errs)))
	verifyMessages(ctx, f.w, cmp, errs)
	return f.Reset(ctx)
}

// TransferSuite checks a form with a zero amount, an amount above the balance, an
// over-long description, and one amount that should be accepted.
func TransferSuite(ids FormIDs, clock func() time.Time) *Suite {
	return &Suite{
		Name:  ids.Name,
		Title: "Transfer form " + ids.Name,
		Path:  ids.Path,
		Login: true,
		Steps: func(ctx context.Context, w *web.Client, cmp *reconcile.Comparator) error {
			f := NewTransferForm(w, ids)
			available, ok := f.Available(ctx)
			if !ok {
				cmp.Check(ids.Name+" available balance", false, "not readable")
				return nil
			}

			valid := ids.Policy.MinAmount.Add(decimal.NewFromInt(1000))
			cases := []struct {
				amount  decimal.Decimal
				content string
			}{
				{decimal.Zero, "brokercheck"},
				{available.Add(decimal.NewFromInt(1)), "brokercheck"},
				{valid, strings.Repeat("x", rules.MaxContentLength+1)},
				{valid, "brokercheck"},
			}
			for _, c := range cases {
				if err := f.VerifyRequest(ctx, cmp, c.amount, c.content, clock()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
