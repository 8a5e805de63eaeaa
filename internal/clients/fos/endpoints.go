package fos

import (
	"context"
	"net/url"

	"github.com/bobmcallan/brokercheck/internal/models"
)

const (
	pathBankAccounts      = "/fos/v1/AccountQuery/get-account-bank"
	pathUserInfo          = "/fos/v1/User/user-info"
	pathMarginSummary     = "/fos/v1/Asset/margin-summary"
	pathSecuritiesBalance = "/fos/v1/Asset/securities-balance"
	pathProfitLossStmt    = "/fos/v1/Asset/profit-loss-stmt"
	pathCTCKBalance       = "/fos/v1/Asset/ctck-balance"
	pathVSDBalance        = "/fos/v1/Asset/vsd-balance"
	pathTransactVSD       = "/fos/v1/Cash/transactvsd"
	pathCashMovement      = "/fos/v1/Cash/query-cash-movement-ssi"
)

func ranged(key, accountID string, r models.DateRange) url.Values {
	return url.Values{
		key:        {accountID},
		"fromDate": {r.From},
		"toDate":   {r.To},
	}
}

// GetBankAccounts returns the bank accounts linked to accountID
func (c *Client) GetBankAccounts(ctx context.Context, accountID string) ([]models.BankAccount, error) {
	data, _, err := get[[]models.BankAccount](ctx, c, pathBankAccounts, url.Values{"accountId": {accountID}})
	return data, err
}

// GetUserInfo returns the account holder profile
func (c *Client) GetUserInfo(ctx context.Context, accountID string) (*models.UserInfo, error) {
	data, _, err := get[models.UserInfo](ctx, c, pathUserInfo, url.Values{"accountId": {accountID}})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// GetMarginSummary returns the asset and margin snapshot
func (c *Client) GetMarginSummary(ctx context.Context, accountID string) (*models.MarginSummary, error) {
	data, _, err := get[models.MarginSummary](ctx, c, pathMarginSummary, url.Values{"acctNo": {accountID}})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// GetSecuritiesBalance returns open derivative positions
func (c *Client) GetSecuritiesBalance(ctx context.Context, accountID string) ([]models.SecurityPosition, error) {
	data, _, err := get[[]models.SecurityPosition](ctx, c, pathSecuritiesBalance, url.Values{"acctNo": {accountID}})
	return data, err
}

// GetProfitLossStatement returns the realised P/L statement for r
func (c *Client) GetProfitLossStatement(ctx context.Context, accountID string, r models.DateRange) (*models.ProfitLossStatement, error) {
	data, _, err := get[models.ProfitLossStatement](ctx, c, pathProfitLossStmt, ranged("accountId", accountID, r))
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// GetCTCKBalance returns the broker cash ledger for r
func (c *Client) GetCTCKBalance(ctx context.Context, accountID string, r models.DateRange) (*models.CashBalance, error) {
	data, _, err := get[models.CashBalance](ctx, c, pathCTCKBalance, ranged("accountId", accountID, r))
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// GetVSDBalance returns the depository cash ledger for r
func (c *Client) GetVSDBalance(ctx context.Context, accountID string, r models.DateRange) (*models.CashBalance, error) {
	data, _, err := get[models.CashBalance](ctx, c, pathVSDBalance, ranged("accountId", accountID, r))
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// GetVSDTransactions returns depository transfers. The endpoint mixes deposits and
// withdrawals, so a Direction filter is applied here and meta.total recomputed.
func (c *Client) GetVSDTransactions(ctx context.Context, q models.VSDQuery) ([]models.VSDTransaction, *models.Meta, error) {
	params := ranged("acctNo", q.AccountID, q.Range)
	params.Set("status", q.Status)
	params.Set("dataType", "HIST")

	data, meta, err := get[[]models.VSDTransaction](ctx, c, pathTransactVSD, params)
	if err != nil {
		return nil, nil, err
	}

	if q.Direction == "" {
		return data, meta, nil
	}

	filtered := make([]models.VSDTransaction, 0, len(data))
	for _, txn := range data {
		if txn.DW == q.Direction {
			filtered = append(filtered, txn)
		}
	}

	if meta == nil {
		meta = &models.Meta{}
	}
	meta.Total = len(filtered)

	c.logger.Debug().
		Str("direction", q.Direction).
		Int("before", len(data)).
		Int("after", len(filtered)).
		Msg("Filtered VSD transactions")

	return filtered, meta, nil
}

// GetCashMovements returns bank transfer history
func (c *Client) GetCashMovements(ctx context.Context, q models.CashMovementQuery) ([]models.CashMovement, error) {
	params := url.Values{
		"accountId":     {q.AccountID},
		"valueFromDate": {q.Range.From},
		"valueToDate":   {q.Range.To},
		"recordState":   {q.RecordState},
		"dataType":      {q.DataType},
	}
	data, _, err := get[[]models.CashMovement](ctx, c, pathCashMovement, params)
	return data, err
}
