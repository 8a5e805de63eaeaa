package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/brokercheck/internal/format"
	"github.com/bobmcallan/brokercheck/internal/reconcile"
	"github.com/bobmcallan/brokercheck/internal/rules"
	"github.com/bobmcallan/brokercheck/internal/web"
)

const (
	orderSymbol   = "orderhistory-field-symbol"
	orderSide     = "orderhistory-field-side"
	orderStatus   = "orderhistory-field-status"
	orderFromDate = "orderhistory-field-fromdate"
	orderToDate   = "orderhistory-field-todate"
	orderQuery    = "orderhistory-action-query"
)

var orderRows = web.CellLayout{Prefix: "orderhistory-col"}

// OrderFooter holds the six footer totals of the order history table.
type OrderFooter struct {
	Volume        float64
	BuyVolume     float64
	SellVolume    float64
	MatchedVolume float64
	UnmatchedVol  float64
	MatchedValue  float64
}

var footerMetrics = []struct {
	id    string
	name  string
	value func(*OrderFooter) *float64
}{
	{"orderhistory-metric-totalvol", "total volume", func(f *OrderFooter) *float64 { return &f.Volume }},
	{"orderhistory-metric-totalbuy", "total buy", func(f *OrderFooter) *float64 { return &f.BuyVolume }},
	{"orderhistory-metric-totalsell", "total sell", func(f *OrderFooter) *float64 { return &f.SellVolume }},
	{"orderhistory-metric-totalmatchedvol", "total matched volume", func(f *OrderFooter) *float64 { return &f.MatchedVolume }},
	{"orderhistory-metric-totalunmatchedvol", "total unmatched volume", func(f *OrderFooter) *float64 { return &f.UnmatchedVol }},
	{"orderhistory-metric-totalmatchedvalue", "total matched value", func(f *OrderFooter) *float64 { return &f.MatchedValue }},
}

// OrderFilter is the header filter of the order history screen. Empty fields are left as they are.
type OrderFilter struct {
	Symbol string
	Side   string
	Status string
	From   string // DD/MM/YYYY
	To     string
}

// OrderHistoryPage drives the order book history screen.
type OrderHistoryPage struct {
	w *web.Client
}

func NewOrderHistoryPage(w *web.Client) *OrderHistoryPage {
	return &OrderHistoryPage{w: w}
}

func (p *OrderHistoryPage) dates() DateFilter {
	return DateFilter{From: orderFromDate, To: orderToDate, Query: orderQuery}
}

// Query applies f and runs the query.
func (p *OrderHistoryPage) Query(ctx context.Context, f OrderFilter) error {
	if f.Symbol != "" {
		if err := p.w.Fill(ctx, orderSymbol, f.Symbol); err != nil {
			return err
		}
	}
	if f.Side != "" {
		if err := p.w.Select(ctx, orderSide, f.Side); err != nil {
			return err
		}
	}
	if f.Status != "" {
		if err := p.w.Select(ctx, orderStatus, f.Status); err != nil {
			return err
		}
	}
	if f.From != "" {
		if err := p.w.Fill(ctx, orderFromDate, f.From); err != nil {
			return err
		}
	}
	if f.To != "" {
		if err := p.w.Fill(ctx, orderToDate, f.To); err != nil {
			return err
		}
	}
	if err := p.w.Click(ctx, orderQuery); err != nil {
		return err
	}
	return p.w.WaitIdle(ctx)
}

// Rows counts the table rows by their volume cells.
func (p *OrderHistoryPage) Rows(ctx context.Context) int {
	return p.w.RowCount(ctx, orderRows.Rows("vol"))
}

func (p *OrderHistoryPage) number(ctx context.Context, column string, row int) float64 {
	text, _ := p.w.TableCell(ctx, orderRows, column, row)
	v, _ := format.ParseUINumber(text)
	return v
}

// ExpectedFooter sums the visible rows the way the footer should.
func (p *OrderHistoryPage) ExpectedFooter(ctx context.Context) OrderFooter {
	var f OrderFooter
	for i, n := 0, p.Rows(ctx); i < n; i++ {
		vol := p.number(ctx, "vol", i)
		f.Volume += vol
		f.MatchedVolume += p.number(ctx, "matchedvol", i)
		f.UnmatchedVol += p.number(ctx, "unmatchedvol", i)
		f.MatchedValue += p.number(ctx, "matchedvalue", i)

		side, _ := p.w.UIValue(ctx, web.TestID(web.Indexed("orderhistory-badge-side", i)))
		switch side = strings.ToLower(side); {
		case strings.Contains(side, "buy"):
			f.BuyVolume += vol
		case strings.Contains(side, "sell"):
			f.SellVolume += vol
		}
	}
	return f
}

// VerifyFooter compares each footer metric with the row sums within tolerance.
func (p *OrderHistoryPage) VerifyFooter(ctx context.Context, cmp *reconcile.Comparator, tolerance float64) {
	if p.Rows(ctx) == 0 {
		cmp.Check("footer empty state", p.w.HasText(ctx, rules.MsgNoRecords), rules.MsgNoRecords)
		return
	}
	want := p.ExpectedFooter(ctx)
	for _, m := range footerMetrics {
		ui, ok := p.w.UIValue(ctx, web.TestID(m.id))
		cmp.CompareNumbers(m.name, ui, ok, *m.value(&want), tolerance)
	}
}

// VerifySymbolSearch queries one symbol and checks every row shows it, or the
// empty state when nothing matches.
func (p *OrderHistoryPage) VerifySymbolSearch(ctx context.Context, cmp *reconcile.Comparator, symbol string) error {
	if err := p.Query(ctx, OrderFilter{Symbol: symbol}); err != nil {
		return err
	}
	n := p.Rows(ctx)
	if n == 0 {
		cmp.Check("search "+symbol, p.w.HasText(ctx, rules.MsgNoRecords), "no rows and no empty state")
		return nil
	}
	for i := 0; i < n; i++ {
		got, _ := p.w.TableCell(ctx, orderRows, "symbol", i)
		cmp.Check(fmt.Sprintf("search %s row %d", symbol, i), strings.EqualFold(got, symbol), got)
	}
	return nil
}

// OrderHistorySuite checks the filters, date-range rules, symbol search and footer totals.
func OrderHistorySuite() *Suite {
	return &Suite{
		Name:  "order-history",
		Title: "Order history",
		Path:  "/order-history",
		Login: true,
		Steps: func(ctx context.Context, w *web.Client, cmp *reconcile.Comparator) error {
			p := NewOrderHistoryPage(w)
			verifyOptions(ctx, w, cmp, "side", orderSide, rules.OrderSides)
			verifyOptions(ctx, w, cmp, "status", orderStatus, rules.OrderStatuses)

			for _, r := range historyRanges {
				if err := p.dates().VerifyRange(ctx, w, cmp, r[0], r[1]); err != nil {
					return err
				}
			}
			for _, sym := range []string{rules.OrderSymbolValid, rules.OrderSymbolInvalid, rules.OrderSymbolDelist} {
				if err := p.VerifySymbolSearch(ctx, cmp, sym); err != nil {
					return err
				}
			}

			valid := historyRanges[0]
			if err := p.Query(ctx, OrderFilter{Side: "All", Status: "All", From: valid[0], To: valid[1]}); err != nil {
				return err
			}
			p.VerifyFooter(ctx, cmp, reconcile.DefaultTolerance)
			return nil
		},
	}
}

// historyRanges are the filter ranges every history screen is checked with:
// valid, same day, reversed, longer than three months.
var historyRanges = [][2]string{
	{"01/03/2025", "31/05/2025"},
	{"01/03/2025", "01/03/2025"},
	{"15/06/2025", "10/06/2025"},
	{"01/01/2025", "05/05/2025"},
}
