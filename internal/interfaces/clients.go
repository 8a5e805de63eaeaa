// Package interfaces defines service contracts for brokercheck
package interfaces

import (
	"context"

	"github.com/bobmcallan/brokercheck/internal/models"
)

// FOSClient provides access to the brokerage REST API
type FOSClient interface {
	// Login authenticates once and caches the bearer token
	Login(ctx context.Context) (string, error)

	GetBankAccounts(ctx context.Context, accountID string) ([]models.BankAccount, error)
	GetUserInfo(ctx context.Context, accountID string) (*models.UserInfo, error)
	GetMarginSummary(ctx context.Context, accountID string) (*models.MarginSummary, error)
	GetSecuritiesBalance(ctx context.Context, accountID string) ([]models.SecurityPosition, error)
	GetProfitLossStatement(ctx context.Context, accountID string, r models.DateRange) (*models.ProfitLossStatement, error)
	GetCTCKBalance(ctx context.Context, accountID string, r models.DateRange) (*models.CashBalance, error)
	GetVSDBalance(ctx context.Context, accountID string, r models.DateRange) (*models.CashBalance, error)

	// GetVSDTransactions returns depository transfers, filtered by direction when set
	GetVSDTransactions(ctx context.Context, q models.VSDQuery) ([]models.VSDTransaction, *models.Meta, error)

	GetCashMovements(ctx context.Context, q models.CashMovementQuery) ([]models.CashMovement, error)
}

// EventsClient provides access to the market events feed
type EventsClient interface {
	FetchEvents(ctx context.Context, q models.EventQuery) ([]models.MarketEvent, error)
}

// ReportWriter persists the outcome of one screen run and returns where it went
type ReportWriter interface {
	Write(report *models.ScreenReport) (string, error)
}
