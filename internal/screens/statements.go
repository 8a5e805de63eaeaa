package screens

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/brokercheck/internal/format"
	"github.com/bobmcallan/brokercheck/internal/models"
	"github.com/bobmcallan/brokercheck/internal/web"
)

// plRange is one month: the P/L screen opens on the last month.
const plRange = 1

// ledgerRange is three months, the default window of both cash ledgers.
const ledgerRange = 3

const ledgerRows = 5

type plData struct {
	Range     models.DateRange            `json:"range"`
	Statement *models.ProfitLossStatement `json:"statement"`
}

func (d plData) day(i int) models.ProfitLossDay {
	return d.Statement.Daily[i]
}

// PLStatement reconciles the realised P/L statement after querying the last month.
func PLStatement(env *Env) Screen {
	dates := env.dates()
	return &ScreenValidator[plData]{
		Name:   "pl-statement",
		Title:  "P/L statement",
		Path:   "/pl-statement",
		Marker: "pl-statement-field-fromdate",
		Policy: models.PolicyContains,
		env:    env,
		Fetch: func(ctx context.Context) (plData, error) {
			r := env.lastMonths(plRange)
			stmt, err := env.FOS.GetProfitLossStatement(ctx, env.AccountID, r)
			return plData{Range: r, Statement: stmt}, err
		},
		Prepare: func(ctx context.Context, w *web.Client, d plData) error {
			if err := w.Fill(ctx, "pl-statement-field-fromdate", format.CompactToDMY(d.Range.From)); err != nil {
				return err
			}
			if err := w.Fill(ctx, "pl-statement-field-todate", format.CompactToDMY(d.Range.To)); err != nil {
				return err
			}
			if err := w.Click(ctx, "pl-statement-action-query"); err != nil {
				return err
			}
			return w.WaitIdle(ctx)
		},
		Fields: []Field[plData]{
			{Name: "profit", ID: "pl-statement-kpi-profit", Expected: func(d plData) string { return format.Currency(d.Statement.IncreaseAmount) }},
			{Name: "loss", ID: "pl-statement-kpi-loss", Expected: func(d plData) string { return format.Currency(d.Statement.DecreaseAmount) }},
			{Name: "difference", ID: "pl-statement-kpi-diff", Expected: func(d plData) string { return format.Currency(d.Statement.ProfitLossDifference) }},
			{Name: "fee and tax", ID: "pl-statement-kpi-feetax", Expected: func(d plData) string { return format.Currency(d.Statement.TotalFeeTax) }},
			{Name: "net after tax", ID: "pl-statement-kpi-netaftertax", Expected: func(d plData) string { return format.Currency(d.Statement.NetProfitLossAfterTax) }},
		},
		Table: &Table[plData]{
			Layout:  web.CellLayout{Prefix: "pl-statement-col"},
			CountBy: "settlementdate",
			Rows:    func(d plData) int { return len(d.Statement.Daily) },
			Columns: []Column[plData]{
				{Name: "settlement date", Column: "settlementdate", Expected: func(d plData, i int) string { return dates.DMY(d.day(i).CashSettleDate) }},
				{Name: "type", Column: "transtype", Expected: func(d plData, i int) string { return d.day(i).TransactionType }},
				{Name: "daily increase", Column: "dailyincrease", Expected: func(d plData, i int) string { return format.Currency(d.day(i).IncreaseAmount) }},
				{Name: "daily decrease", Column: "dailydecrease", Expected: func(d plData, i int) string { return format.Currency(d.day(i).DecreaseAmount) }},
			},
		},
		Shape: func(d plData) []models.Check {
			return []models.Check{presentCount("daily rows", len(d.Statement.Daily))}
		},
	}
}

type ledgerData struct {
	Range   models.DateRange    `json:"range"`
	Balance *models.CashBalance `json:"balance"`
}

func (d ledgerData) row(i int) models.CashLedgerRow {
	return d.Balance.Rows()[i]
}

type ledgerDef struct {
	name, title, path, prefix string
	layout                    web.CellLayout
	countBy                   string
	absolute                  bool // every amount shown without sign; otherwise only decreases are
	fetch                     func(ctx context.Context, accountID string, r models.DateRange) (*models.CashBalance, error)
}

func (s ledgerDef) money(d decimal.Decimal) string {
	if s.absolute {
		return format.CurrencyAbs(d)
	}
	return format.Currency(d)
}

func ledger(env *Env, def ledgerDef) Screen {
	dates := env.dates()
	card := func(id string) string { return def.prefix + "-card-" + id }
	return &ScreenValidator[ledgerData]{
		Name:   def.name,
		Title:  def.title,
		Path:   def.path,
		Marker: card("beginningbalance"),
		Policy: models.PolicyContains,
		env:    env,
		Fetch: func(ctx context.Context) (ledgerData, error) {
			r := env.lastMonths(ledgerRange)
			b, err := def.fetch(ctx, env.AccountID, r)
			return ledgerData{Range: r, Balance: b}, err
		},
		Fields: []Field[ledgerData]{
			{Name: "beginning balance", ID: card("beginningbalance"), Expected: func(d ledgerData) string { return def.money(d.Balance.OpeningBalance) }},
			{Name: "total increase", ID: card("totalincrease"), Expected: func(d ledgerData) string { return def.money(d.Balance.IncreaseAmount) }},
			{Name: "total decrease", ID: card("totaldecrease"), Expected: func(d ledgerData) string { return format.CurrencyAbs(d.Balance.DecreaseAmount) }},
			{Name: "ending balance", ID: card("endingbalance"), Expected: func(d ledgerData) string { return def.money(d.Balance.ClosingBalance) }},
		},
		Table: &Table[ledgerData]{
			Layout:  def.layout,
			CountBy: def.countBy,
			Rows:    func(d ledgerData) int { return len(d.Balance.Rows()) },
			MaxRows: ledgerRows,
			Columns: []Column[ledgerData]{
				{Name: "date", Column: "date", Expected: func(d ledgerData, i int) string { return dates.DMY(d.row(i).CashSettleDate) }},
				{Name: "type", Column: "type", Expected: func(d ledgerData, i int) string { return d.row(i).TransactionType }},
				{Name: "description", Column: "desc", Expected: func(d ledgerData, i int) string { return d.row(i).Description }},
				{
					Name: "debit", Column: "debit",
					Expected: func(d ledgerData, i int) string { return format.CurrencyAbs(d.row(i).DecreaseAmount) },
					When:     func(d ledgerData, i int) bool { return !d.row(i).DecreaseAmount.IsZero() },
				},
				{
					Name: "credit", Column: "credit",
					Expected: func(d ledgerData, i int) string { return def.money(d.row(i).IncreaseAmount) },
					When:     func(d ledgerData, i int) bool { return !d.row(i).IncreaseAmount.IsZero() },
				},
				{Name: "total balance", Column: "totalbalance", Expected: func(d ledgerData, i int) string { return def.money(d.row(i).CumulativeBalance) }},
			},
		},
		Shape: func(d ledgerData) []models.Check {
			return []models.Check{presentCount("ledger rows", len(d.Balance.Rows()))}
		},
	}
}

// CashLimit reconciles the broker (CTCK) cash ledger.
func CashLimit(env *Env) Screen {
	return ledger(env, ledgerDef{
		name:     "cash-limit",
		title:    "Cash statement (broker)",
		path:     "/asset-cashlimit",
		prefix:   "asset-cashlimit",
		layout:   web.CellLayout{Prefix: "asset-cashlimit-col"},
		countBy:  "no",
		absolute: true,
		fetch: func(ctx context.Context, accountID string, r models.DateRange) (*models.CashBalance, error) {
			return env.FOS.GetCTCKBalance(ctx, accountID, r)
		},
	})
}

// CashStatement reconciles the depository (VSD) cash ledger.
func CashStatement(env *Env) Screen {
	return ledger(env, ledgerDef{
		name:    "cash-statement",
		title:   "Cash statement (VSD)",
		path:    "/asset",
		prefix:  "asset-cashstmt",
		layout:  web.CellLayout{Prefix: "asset-cashstmt-col", Bracketed: true},
		countBy: "no",
		fetch: func(ctx context.Context, accountID string, r models.DateRange) (*models.CashBalance, error) {
			return env.FOS.GetVSDBalance(ctx, accountID, r)
		},
	})
}
