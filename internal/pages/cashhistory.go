package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/brokercheck/internal/reconcile"
	"github.com/bobmcallan/brokercheck/internal/rules"
	"github.com/bobmcallan/brokercheck/internal/web"
)

const (
	cashHistoryType     = "cash-transfer-historydropdown-type"
	cashHistoryFromDate = "cash-transfer-historydatepicker-fromdate"
	cashHistoryToDate   = "cash-transfer-historydatepicker-todate"
	cashHistoryStatus   = "cash-transfer-historydropdown-status"
	cashHistoryQuery    = "cash-transfer-history-btnquery"

	msgNoCashTransfers = "No cash transfers found"
)

// CashTransferColumns are the cells of every cash transfer history row.
var CashTransferColumns = []string{"date", "beneficiary", "amount", "fee", "transtype", "status", "remark"}

// cashHistoryCell names a cell; rows are numbered from 1.
func cashHistoryCell(row int, column string) string {
	return web.TestID(fmt.Sprintf("cash-transfer-history-row%d-%s", row, column))
}

// CashTransferHistoryPage drives the combined cash transfer history screen.
type CashTransferHistoryPage struct {
	w *web.Client
}

func NewCashTransferHistoryPage(w *web.Client) *CashTransferHistoryPage {
	return &CashTransferHistoryPage{w: w}
}

func (p *CashTransferHistoryPage) dates() DateFilter {
	return DateFilter{From: cashHistoryFromDate, To: cashHistoryToDate, Query: cashHistoryQuery}
}

// Filter selects a transfer type and status and queries.
func (p *CashTransferHistoryPage) Filter(ctx context.Context, transferType, status string) error {
	if err := p.w.Select(ctx, cashHistoryType, transferType); err != nil {
		return err
	}
	if err := p.w.Select(ctx, cashHistoryStatus, status); err != nil {
		return err
	}
	if err := p.w.Click(ctx, cashHistoryQuery); err != nil {
		return err
	}
	return p.w.WaitIdle(ctx)
}

// Row reads every column of a row; missing cells are empty.
func (p *CashTransferHistoryPage) Row(ctx context.Context, row int) map[string]string {
	out := make(map[string]string, len(CashTransferColumns))
	for _, c := range CashTransferColumns {
		out[c], _ = p.w.UIValue(ctx, cashHistoryCell(row, c))
	}
	return out
}

// VerifyDefaults checks both dropdowns start on All.
func (p *CashTransferHistoryPage) VerifyDefaults(ctx context.Context, cmp *reconcile.Comparator) {
	for _, id := range []string{cashHistoryType, cashHistoryStatus} {
		v, _ := p.w.InputValue(ctx, web.TestID(id))
		cmp.Check(id+" default", v == "All", v)
	}
}

// VerifyFilter checks the first row matches the chosen type and status, unless
// the query returned nothing.
func (p *CashTransferHistoryPage) VerifyFilter(ctx context.Context, cmp *reconcile.Comparator, transferType, status string) error {
	if err := p.Filter(ctx, transferType, status); err != nil {
		return err
	}
	if p.w.HasText(ctx, msgNoCashTransfers) {
		return nil
	}
	row := p.Row(ctx, 1)
	if transferType != "All" {
		cmp.Check("filter type "+transferType, strings.Contains(row["transtype"], transferType), row["transtype"])
	}
	if status != "All" {
		cmp.Check("filter status "+status, strings.Contains(row["status"], status), row["status"])
	}
	return nil
}

// CashTransferHistorySuite checks the dropdowns, the date-range rules and the filters.
func CashTransferHistorySuite() *Suite {
	return &Suite{
		Name:  "cash-transfer-history",
		Title: "Cash transfer history",
		Path:  "/cash-transfer-history",
		Login: true,
		Steps: func(ctx context.Context, w *web.Client, cmp *reconcile.Comparator) error {
			p := NewCashTransferHistoryPage(w)
			p.VerifyDefaults(ctx, cmp)
			verifyOptions(ctx, w, cmp, "transfer type", cashHistoryType, rules.CashTransferTypes)
			verifyOptions(ctx, w, cmp, "status", cashHistoryStatus, rules.HistoryStatuses)

			for _, r := range historyRanges {
				if err := p.dates().VerifyRange(ctx, w, cmp, r[0], r[1]); err != nil {
					return err
				}
			}
			for _, t := range rules.CashTransferTypes[1:] {
				if err := p.VerifyFilter(ctx, cmp, t, "All"); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
