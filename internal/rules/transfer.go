package rules

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxContentLength is the longest transfer description the forms accept.
const MaxContentLength = 255

const (
	MsgVSDAmount      = "Amount must be > 50,000 and ≤ available"
	MsgAmountExceeds  = "Amount must be ≤ available"
	MsgAmountZero     = "Amount must be greater than 0"
	MsgContentTooLong = "Content should less than 255 characters"
	MsgAfterHours     = "Transactions after business hours"
	MsgNonBusinessDay = "Transactions are not allowed on non-business days"
)

// Clock is a time of day in minutes after midnight.
type Clock int

// At builds a Clock from hours and minutes.
func At(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// TransferPolicy describes one transfer form's amount and trading-window rules.
type TransferPolicy struct {
	Name string
	// MinAmount is exclusive; zero means any positive amount.
	MinAmount      decimal.Decimal
	Open           Clock
	Close          Clock // inclusive
	WeekendMessage string
}

// Forms with their windows.
var (
	VSDWithdraw = TransferPolicy{
		Name:           "vsd-withdraw",
		MinAmount:      decimal.NewFromInt(50000),
		Open:           At(8, 0),
		Close:          At(15, 55),
		WeekendMessage: MsgAfterHours,
	}
	VSDDeposit = TransferPolicy{
		Name:           "vsd-deposit",
		MinAmount:      decimal.NewFromInt(50000),
		Open:           At(8, 0),
		Close:          At(16, 0),
		WeekendMessage: MsgAfterHours,
	}
	BankTransfer = TransferPolicy{
		Name:           "bank-transfer",
		Open:           At(8, 0),
		Close:          At(16, 0),
		WeekendMessage: MsgNonBusinessDay,
	}
)

// TransferRequest is what the user entered on a transfer form.
type TransferRequest struct {
	Amount    decimal.Decimal
	Available decimal.Decimal
	Content   string
	At        time.Time
}

// ValidateAmount checks amount against the minimum and the available balance.
func (p TransferPolicy) ValidateAmount(amount, available decimal.Decimal) error {
	if p.MinAmount.IsPositive() {
		if amount.LessThanOrEqual(p.MinAmount) || amount.GreaterThan(available) {
			return violation("amount", MsgVSDAmount)
		}
		return nil
	}
	if !amount.IsPositive() {
		return violation("amount", MsgAmountZero)
	}
	if amount.GreaterThan(available) {
		return violation("amount", MsgAmountExceeds)
	}
	return nil
}

// ValidateTime checks t against the weekday trading window.
func (p TransferPolicy) ValidateTime(t time.Time) error {
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return violation("time", p.WeekendMessage)
	}
	now := At(t.Hour(), t.Minute())
	if now < p.Open || now > p.Close {
		return violation("time", MsgAfterHours)
	}
	return nil
}

// Validate runs every rule and returns the violations in field order.
func (p TransferPolicy) Validate(req TransferRequest) []error {
	var errs []error
	if err := p.ValidateAmount(req.Amount, req.Available); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateContent(req.Content); err != nil {
		errs = append(errs, err)
	}
	if err := p.ValidateTime(req.At); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// ValidateContent limits the description to MaxContentLength characters.
func ValidateContent(s string) error {
	if utf8.RuneCountInString(s) > MaxContentLength {
		return violation("content", MsgContentTooLong)
	}
	return nil
}
