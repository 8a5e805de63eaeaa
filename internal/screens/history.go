package screens

import (
	"context"

	"github.com/bobmcallan/brokercheck/internal/format"
	"github.com/bobmcallan/brokercheck/internal/models"
	"github.com/bobmcallan/brokercheck/internal/web"
)

const historyRange = 3

type vsdHistory struct {
	Range        models.DateRange        `json:"range"`
	Transactions []models.VSDTransaction `json:"transactions"`
	Total        int                     `json:"total"`
}

func (h vsdHistory) txn(i int) models.VSDTransaction {
	return h.Transactions[i]
}

// vsdHistoryScreen reconciles deposit or withdrawal history; both share one
// endpoint and differ by direction and test id prefix.
func vsdHistoryScreen(env *Env, name, title, direction, prefix string) Screen {
	dates := env.dates()
	return &ScreenValidator[vsdHistory]{
		Name:   name,
		Title:  title,
		Path:   "/" + name,
		Marker: prefix + "-datepicker-fromdate",
		Policy: models.PolicyContains,
		env:    env,
		Fetch: func(ctx context.Context) (vsdHistory, error) {
			r := env.lastMonths(historyRange)
			txns, meta, err := env.FOS.GetVSDTransactions(ctx, models.VSDQuery{
				AccountID: env.AccountID,
				Range:     r,
				Direction: direction,
			})
			if err != nil {
				return vsdHistory{}, err
			}
			h := vsdHistory{Range: r, Transactions: txns, Total: len(txns)}
			if meta != nil {
				h.Total = meta.Total
			}
			return h, nil
		},
		Prepare: func(ctx context.Context, w *web.Client, h vsdHistory) error {
			from, _ := w.InputValue(ctx, web.TestID(prefix+"-datepicker-fromdate"))
			to, _ := w.InputValue(ctx, web.TestID(prefix+"-datepicker-todate"))
			status, _ := w.InputValue(ctx, web.TestID(prefix+"-dropdown-status"))
			env.logger().Info().
				Str("screen", name).
				Str("from", from).
				Str("to", to).
				Str("status", status).
				Msg("History filters")
			return nil
		},
		Table: &Table[vsdHistory]{
			Layout:  web.CellLayout{Prefix: prefix + "-col", Bracketed: true},
			CountBy: "date",
			Rows:    func(h vsdHistory) int { return len(h.Transactions) },
			Columns: []Column[vsdHistory]{
				{Name: "date", Column: "date", Expected: func(h vsdHistory, i int) string { return dates.DMY(h.txn(i).CreateTime) }},
				{Name: "beneficiary", Column: "beneficiary", Expected: func(h vsdHistory, i int) string { return h.txn(i).FullName + " - " + h.txn(i).AccountID }},
				{Name: "amount", Column: "amount", Expected: func(h vsdHistory, i int) string { return format.Currency(h.txn(i).Amount) }},
				{Name: "fee", Column: "fee", Expected: func(h vsdHistory, i int) string { return format.Currency(h.txn(i).Fee) }},
				{Name: "status", Column: "status", Expected: func(h vsdHistory, i int) string { return format.VSDState.Label(h.txn(i).State) }},
			},
		},
		Shape: func(h vsdHistory) []models.Check {
			checks := []models.Check{presentCount("transactions", len(h.Transactions))}
			for _, t := range h.Transactions {
				if t.DW != direction {
					checks = append(checks, models.Check{Name: "direction " + direction, Passed: false, Detail: t.TransactionID + " is " + t.DW})
				}
			}
			return checks
		},
	}
}

// DepositHistory reconciles VSD deposits.
func DepositHistory(env *Env) Screen {
	return vsdHistoryScreen(env, "deposit-history", "VSD deposit history", models.DirectionDeposit, "vsd-deposit-history")
}

// WithdrawalHistory reconciles VSD withdrawals.
func WithdrawalHistory(env *Env) Screen {
	return vsdHistoryScreen(env, "withdrawal-history", "VSD withdrawal history", models.DirectionWithdraw, "vsd-withdrawal-history")
}

type movements = []models.CashMovement

// BankTransferHistory reconciles today's bank transfers.
func BankTransferHistory(env *Env) Screen {
	return &ScreenValidator[movements]{
		Name:   "bank-transfer-history",
		Title:  "Bank transfer history",
		Path:   "/bank-transfer-history",
		Marker: "bank-transfer-history-datepickerfromdate",
		Policy: models.PolicyContains,
		env:    env,
		Fetch: func(ctx context.Context) (movements, error) {
			return env.FOS.GetCashMovements(ctx, models.CashMovementQuery{AccountID: env.AccountID, DataType: "INDAY"})
		},
		Table: &Table[movements]{
			Layout:  web.CellLayout{Prefix: "bank-transfer-history"},
			CountBy: "col-date",
			Rows:    func(m movements) int { return len(m) },
			Columns: []Column[movements]{
				{Name: "date", Column: "col-date", Expected: func(m movements, i int) string { return format.CompactToDMY(m[i].TransDate) }},
				{Name: "beneficiary", Column: "col-beneficiary", Expected: func(m movements, i int) string { return m[i].ToBankAccNo }},
				{Name: "amount", Column: "col-amount", Expected: func(m movements, i int) string { return format.Currency(m[i].Amount) }},
				{Name: "fee", Column: "colfee", Expected: func(m movements, i int) string { return format.CurrencyOrDash(m[i].Fee) }},
				{Name: "status", Column: "badgestatus", Expected: func(m movements, i int) string { return format.CashMovementState.Label(m[i].State) }},
				{Name: "remark", Column: "colremark", Expected: func(m movements, i int) string { return format.OrDash(m[i].Remark) }},
			},
		},
		Shape: func(m movements) []models.Check {
			return []models.Check{presentCount("movements", len(m))}
		},
	}
}
