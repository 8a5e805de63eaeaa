package models

import "github.com/shopspring/decimal"

// MarginSummary is the asset snapshot from margin-summary.
type MarginSummary struct {
	Cash                      decimal.Decimal `json:"cash"`
	UnsettledCash             decimal.Decimal `json:"unsettledCash"`
	TotalTransactionFee       decimal.Decimal `json:"totalTransactionFee"`
	ExchangeTransactionFee    decimal.Decimal `json:"exchangeTransactionFee"`
	BrokerageTransactionFee   decimal.Decimal `json:"brokerageTransactionFee"`
	Tax                       decimal.Decimal `json:"tax"`
	PositionManagementFee     decimal.Decimal `json:"positionManagementFee"`
	MarginCash                decimal.Decimal `json:"marginCash"`
	MarginStockValue          decimal.Decimal `json:"marginStockValue"`
	ValidAssets               decimal.Decimal `json:"validAssets"`
	WithdrawableCash          decimal.Decimal `json:"withdrawableCash"`
	RequiredSupplement        decimal.Decimal `json:"requiredSupplement"`
	NetAssets                 decimal.Decimal `json:"netAssets"`
	MarginManagementFee       decimal.Decimal `json:"marginManagementFee"`
	InitialMargin             decimal.Decimal `json:"initialMargin"`
	TransferMargin            decimal.Decimal `json:"transferMargin"`
	ProfitLossValue           decimal.Decimal `json:"profitLossValue"`
	WithdrawableMargin        decimal.Decimal `json:"withdrawableMargin"`
	PartnershipAmount         decimal.Decimal `json:"partnershipAmount"`
	TotalAssets               decimal.Decimal `json:"totalAssets"`
	VSDAccountRatio           decimal.Decimal `json:"vsdAccountRatio"`
	AccountStatus             string          `json:"accountStatus"`
	RequiredMargin            decimal.Decimal `json:"requiredMargin"`
	PendingVSDProcessing      decimal.Decimal `json:"pendingVSDProcessing"`
	DailyPendingDepositIM     decimal.Decimal `json:"dailyPendingDepositIM"`
	DailyPendingWithdrawIM    decimal.Decimal `json:"dailyPendingWithdrawIM"`
	AssetUtilizationRatio     decimal.Decimal `json:"assetUtilizationRatio"`
	UnrealizedProfitLoss      decimal.Decimal `json:"unrealizedProfitLoss"`
	DailyPendingWithdrawalSSI decimal.Decimal `json:"dailypendingwithdrawalssi"`
	RealizedProfitLoss        decimal.Decimal `json:"realizedProfitLoss"`
	CashBuyingPower           decimal.Decimal `json:"cashBuyingPower"`
}

// SecurityPosition is one derivative position from securities-balance.
type SecurityPosition struct {
	Symbol               string          `json:"symbol"`
	IM                   decimal.Decimal `json:"im"`
	LongPosition         decimal.Decimal `json:"longPosition"`
	ShortPosition        decimal.Decimal `json:"shortPosition"`
	Net                  decimal.Decimal `json:"net"`
	WAPB                 decimal.Decimal `json:"wapb"`
	WASP                 decimal.Decimal `json:"wasp"`
	MarketPrice          decimal.Decimal `json:"marketPrice"`
	MarginValue          decimal.Decimal `json:"marginValue"`
	ProfitLossValue      decimal.Decimal `json:"profitLossValue"`
	ExpirationDate       string          `json:"expirationdate"`
	IMRatio              decimal.Decimal `json:"imRatio"`
	UnrealizedProfitLoss decimal.Decimal `json:"unrealizedProfitLoss"`
	RealizedProfitLoss   decimal.Decimal `json:"realizedProfitLoss"`
	ClosedPosition       decimal.Decimal `json:"closedPosition"`
}

// TotalCollateral sums margin value across positions.
func TotalCollateral(positions []SecurityPosition) decimal.Decimal {
	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(p.MarginValue)
	}
	return total
}

// TotalProfitLoss sums profit/loss across positions.
func TotalProfitLoss(positions []SecurityPosition) decimal.Decimal {
	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(p.ProfitLossValue)
	}
	return total
}

// ProfitLossStatement is the realised P/L statement for a date range.
type ProfitLossStatement struct {
	IncreaseAmount        decimal.Decimal `json:"increaseAmount"`
	DecreaseAmount        decimal.Decimal `json:"decreaseAmount"`
	ProfitLossDifference  decimal.Decimal `json:"profitLossDifference"`
	TotalFeeTax           decimal.Decimal `json:"totalFeeTax"`
	NetProfitLossAfterTax decimal.Decimal `json:"netProfitLossAfterTax"`
	Daily                 []ProfitLossDay `json:"profitLossStmtDailyInfos"`
}

// ProfitLossDay is one settlement row of a P/L statement.
type ProfitLossDay struct {
	CashSettleDate  string          `json:"cashSettledate"`
	TransactionType string          `json:"transactionType"`
	IncreaseAmount  decimal.Decimal `json:"increaseAmount"`
	DecreaseAmount  decimal.Decimal `json:"decreaseAmount"`
	DescriptionVN   string          `json:"descriptionVN"`
	DescriptionEN   string          `json:"descriptionEN"`
}

// CashBalance is a cash ledger for a date range. The broker (ctck-balance) and
// depository (vsd-balance) endpoints share this shape under different row keys.
type CashBalance struct {
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	IncreaseAmount decimal.Decimal `json:"increaseAmount"`
	DecreaseAmount decimal.Decimal `json:"decreaseAmount"`
	CTCKDaily      []CashLedgerRow `json:"ctckDailyBalanceInfos,omitempty"`
	VSDDaily       []CashLedgerRow `json:"vsdDailyBalanceInfos,omitempty"`
}

// Rows returns whichever ledger the endpoint populated.
func (b *CashBalance) Rows() []CashLedgerRow {
	if len(b.CTCKDaily) > 0 {
		return b.CTCKDaily
	}
	return b.VSDDaily
}

// CashLedgerRow is one movement in a cash ledger.
type CashLedgerRow struct {
	CashSettleDate    string          `json:"cashSettledate"`
	TransactionType   string          `json:"transactionType"`
	IncreaseAmount    decimal.Decimal `json:"increaseAmount"`
	DecreaseAmount    decimal.Decimal `json:"decreaseAmount"`
	CumulativeBalance decimal.Decimal `json:"cumulativeBalance"`
	Description       string          `json:"description"`
	DescriptionEN     string          `json:"descriptionEN"`
}
