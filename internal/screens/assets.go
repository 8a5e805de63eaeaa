package screens

import (
	"context"

	"github.com/bobmcallan/brokercheck/internal/format"
	"github.com/bobmcallan/brokercheck/internal/models"
	"github.com/bobmcallan/brokercheck/internal/web"
)

type marginField = Field[*models.MarginSummary]

// Assets reconciles the asset overview KPIs.
func Assets(env *Env) Screen {
	return &ScreenValidator[*models.MarginSummary]{
		Name:   "assets",
		Title:  "Assets",
		Path:   "/asset",
		Marker: "asset-kpi-totalasset",
		Policy: models.PolicyContains,
		env:    env,
		Fetch: func(ctx context.Context) (*models.MarginSummary, error) {
			return env.FOS.GetMarginSummary(ctx, env.AccountID)
		},
		Fields: []marginField{
			{Name: "total assets", ID: "asset-kpi-totalasset", Expected: func(m *models.MarginSummary) string { return format.Currency(m.TotalAssets) }},
			{Name: "net assets", ID: "asset-kpi-netasset", Expected: func(m *models.MarginSummary) string { return format.Currency(m.NetAssets) }},
			{Name: "withdrawable cash", ID: "asset-kpi-withdrawable", Expected: func(m *models.MarginSummary) string { return format.Currency(m.WithdrawableCash) }},
			{Name: "asset utilization", ID: "asset-kpi-assetutilization", Expected: func(m *models.MarginSummary) string { return format.PercentRaw(m.AssetUtilizationRatio) }},
			{Name: "cash total", ID: "asset-metric-cashtotal", Expected: func(m *models.MarginSummary) string { return format.Currency(m.Cash) }},
			{Name: "unsettled cash", ID: "asset-metric-unsettledcash", Expected: func(m *models.MarginSummary) string { return format.CurrencyOrDash(m.UnsettledCash) }},
			{Name: "cash margin", ID: "asset-metric-cashmargin", Expected: func(m *models.MarginSummary) string { return format.Currency(m.MarginCash) }},
			{Name: "withdrawable margin", ID: "asset-progress-withdrawablemargin", Expected: func(m *models.MarginSummary) string { return format.Currency(m.WithdrawableMargin) }},
			{Name: "total fee", ID: "asset-kpi-totalfee", Expected: func(m *models.MarginSummary) string { return format.Currency(m.TotalTransactionFee) }},
			{Name: "margin fees", ID: "asset-metric-marginfees", Expected: func(m *models.MarginSummary) string { return format.Currency(m.MarginManagementFee) }},
		},
		Shape: func(m *models.MarginSummary) []models.Check {
			return []models.Check{
				nonNegative("totalAssets", m.TotalAssets),
				nonNegative("netAssets", m.NetAssets),
				within("assetUtilizationRatio", m.AssetUtilizationRatio, 0, 100),
			}
		},
	}
}

// AssetSummary reconciles the asset card.
func AssetSummary(env *Env) Screen {
	return &ScreenValidator[*models.MarginSummary]{
		Name:   "asset-summary",
		Title:  "Asset summary card",
		Path:   "/asset-card",
		Marker: "asset-metric-netassets",
		Policy: models.PolicyContains,
		env:    env,
		Fetch: func(ctx context.Context) (*models.MarginSummary, error) {
			return env.FOS.GetMarginSummary(ctx, env.AccountID)
		},
		Fields: []marginField{
			{Name: "net assets", ID: "asset-metric-netassets", Expected: func(m *models.MarginSummary) string { return format.Currency(m.NetAssets) }},
			{Name: "profit/loss", ID: "asset-metric-profitloss", Expected: func(m *models.MarginSummary) string { return format.Currency(m.ProfitLossValue) }},
			{Name: "profit percent", ID: "asset-badge-profitpercent", Expected: func(m *models.MarginSummary) string {
				return format.Percent(format.ProfitPercent(m.ProfitLossValue, m.TotalAssets))
			}},
			{Name: "margin call ratio", ID: "asset-progress-margincallratio", Expected: func(m *models.MarginSummary) string { return format.Percent(m.AssetUtilizationRatio) }},
			{Name: "margin call", ID: "asset-metric-margincall", Expected: func(m *models.MarginSummary) string { return format.Currency(m.RequiredSupplement) }},
		},
		Shape: func(m *models.MarginSummary) []models.Check {
			return []models.Check{nonNegative("netAssets", m.NetAssets)}
		},
	}
}

type positions = []models.SecurityPosition

// Portfolio reconciles open derivative positions.
func Portfolio(env *Env) Screen {
	dates := env.dates()
	return &ScreenValidator[positions]{
		Name:   "portfolio",
		Title:  "Portfolio",
		Path:   "/portfolio",
		Marker: "portfolio-kpi-totalcollateral",
		Policy: models.PolicyContains,
		env:    env,
		Fetch: func(ctx context.Context) (positions, error) {
			return env.FOS.GetSecuritiesBalance(ctx, env.AccountID)
		},
		Fields: []Field[positions]{
			{Name: "total collateral", ID: "portfolio-kpi-totalcollateral", Expected: func(p positions) string { return format.Currency(models.TotalCollateral(p)) }},
			{Name: "total P/L", ID: "portfolio-kpi-totalpl", Expected: func(p positions) string { return format.Currency(models.TotalProfitLoss(p)) }},
		},
		Table: &Table[positions]{
			Layout:     web.CellLayout{Prefix: "portfolio-col"},
			CountBy:    "symbol",
			Rows:       func(p positions) int { return len(p) },
			CheckCount: true,
			Columns: []Column[positions]{
				{Name: "symbol", Column: "symbol", Expected: func(p positions, i int) string { return p[i].Symbol }},
				{Name: "expiry", Column: "expiredate", Expected: func(p positions, i int) string { return dates.DMY(p[i].ExpirationDate) }},
				{Name: "long", Column: "long", Expected: func(p positions, i int) string { return p[i].LongPosition.String() }},
				{Name: "short", Column: "short", Expected: func(p positions, i int) string { return p[i].ShortPosition.String() }},
				{Name: "net", Column: "net", Expected: func(p positions, i int) string { return p[i].Net.String() }},
				{Name: "margin value", Column: "marginvalue", Expected: func(p positions, i int) string { return format.Currency(p[i].MarginValue) }},
				{Name: "unrealized P/L", Column: "unrealpl", Expected: func(p positions, i int) string { return format.Currency(p[i].UnrealizedProfitLoss) }},
			},
		},
		Shape: func(p positions) []models.Check {
			return []models.Check{presentCount("positions", len(p))}
		},
	}
}
