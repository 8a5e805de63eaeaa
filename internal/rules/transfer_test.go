package rules

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func TestVSDAmountRule(t *testing.T) {
	available := amt(10000000)
	tests := []struct {
		name   string
		amount decimal.Decimal
		ok     bool
	}{
		{"just above minimum", amt(50001), true},
		{"minimum itself", amt(50000), false},
		{"below minimum", amt(100), false},
		{"equal to available", available, true},
		{"above available", amt(10000001), false},
		{"negative", amt(-100000), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VSDWithdraw.ValidateAmount(tt.amount, available)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, MsgVSDAmount, err.Error())
			}
		})
	}
}

func TestBankAmountRule(t *testing.T) {
	available := amt(1000000)
	assert.NoError(t, BankTransfer.ValidateAmount(amt(100), available))

	err := BankTransfer.ValidateAmount(amt(500000000), available)
	require.Error(t, err)
	assert.Equal(t, MsgAmountExceeds, err.Error())

	for _, n := range []int64{0, -100000} {
		err := BankTransfer.ValidateAmount(amt(n), available)
		require.Error(t, err)
		assert.Equal(t, MsgAmountZero, err.Error())
	}
}

func TestValidateContent(t *testing.T) {
	assert.NoError(t, ValidateContent("Nộp ký quỹ"))
	assert.NoError(t, ValidateContent(strings.Repeat("A", 255)))
	assert.NoError(t, ValidateContent(strings.Repeat("ệ", 255)))

	err := ValidateContent(strings.Repeat("A", 256))
	require.Error(t, err)
	assert.Equal(t, MsgContentTooLong, err.Error())
}

func TestTransferWindows(t *testing.T) {
	// 2024-01-10 is a Wednesday, 2024-01-13 a Saturday, 2024-01-14 a Sunday
	at := func(d, h, m int) time.Time { return time.Date(2024, 1, d, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		policy  TransferPolicy
		at      time.Time
		wantMsg string
	}{
		{"withdraw at open", VSDWithdraw, at(10, 8, 0), ""},
		{"withdraw at close", VSDWithdraw, at(10, 15, 55), ""},
		{"withdraw just after close", VSDWithdraw, at(10, 15, 56), MsgAfterHours},
		{"withdraw before open", VSDWithdraw, at(10, 7, 59), MsgAfterHours},
		{"withdraw evening", VSDWithdraw, at(10, 20, 0), MsgAfterHours},
		{"withdraw saturday", VSDWithdraw, at(13, 10, 0), MsgAfterHours},
		{"deposit at 16:00", VSDDeposit, at(10, 16, 0), ""},
		{"deposit at 18:00", VSDDeposit, at(10, 18, 0), MsgAfterHours},
		{"bank at 18:00", BankTransfer, at(10, 18, 0), MsgAfterHours},
		{"bank sunday morning", BankTransfer, at(14, 10, 0), MsgNonBusinessDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.ValidateTime(tt.at)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestTransferPolicy_ValidateCollectsAll(t *testing.T) {
	errs := VSDDeposit.Validate(TransferRequest{
		Amount:    amt(100),
		Available: amt(1000000),
		Content:   strings.Repeat("x", 300),
		At:        time.Date(2024, 1, 13, 10, 0, 0, 0, time.UTC),
	})
	require.Len(t, errs, 3)
	assert.Equal(t, MsgVSDAmount, errs[0].Error())
	assert.Equal(t, MsgContentTooLong, errs[1].Error())
	assert.Equal(t, MsgAfterHours, errs[2].Error())

	assert.Empty(t, VSDDeposit.Validate(TransferRequest{
		Amount:    amt(200000),
		Available: amt(1000000),
		Content:   "Nộp ký quỹ",
		At:        time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC),
	}))
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "15:55", VSDWithdraw.Close.String())
	assert.Equal(t, "08:00", At(8, 0).String())
}
