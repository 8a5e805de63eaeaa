package models

import "github.com/shopspring/decimal"

// Transfer directions on transactvsd.
const (
	DirectionDeposit  = "D"
	DirectionWithdraw = "W"
)

// VSDTransaction is one depository deposit or withdrawal.
type VSDTransaction struct {
	TransactionID string          `json:"transactionId"`
	FullName      string          `json:"fullName"`
	Fee           decimal.Decimal `json:"fee"`
	FeeType       string          `json:"feeType"`
	AccountID     string          `json:"accountId"`
	CustodyID     string          `json:"custodyId"`
	ValueDate     string          `json:"valueDate"` // "6/26/2025 12:00:00 AM"
	State         string          `json:"state"`
	SettleStatus  string          `json:"settleStatus"`
	Amount        decimal.Decimal `json:"amount"`
	TransType     string          `json:"transType"`
	Remark        string          `json:"remark"`
	FeeAmount     decimal.Decimal `json:"feeAmount"`
	DW            string          `json:"dw"`
	CreateTime    string          `json:"createTime"` // ISO 8601 without zone
}

// CashMovement is one bank transfer from query-cash-movement-ssi.
type CashMovement struct {
	TransID         string          `json:"transId"`
	TransDate       string          `json:"transDate"` // YYYYMMDD
	ValueDate       string          `json:"valueDate"`
	ClientID        string          `json:"clientId"`
	AccountID       string          `json:"accountId"`
	TransactionCode string          `json:"transactionCode"`
	AccountName     string          `json:"accountName"`
	ToBankAccNo     string          `json:"toBankAccNo"`
	ToBankAccName   string          `json:"toBankAccName"`
	BankName        string          `json:"bankName"`
	ToBankName      string          `json:"toBankName"`
	CWType          string          `json:"cwType"`
	Amount          decimal.Decimal `json:"amount"`
	Fee             decimal.Decimal `json:"fee"`
	State           string          `json:"state"`
	Remark          string          `json:"remark"`
	CreateTime      string          `json:"createTime"`
}

// VSDQuery filters transactvsd.
type VSDQuery struct {
	AccountID string
	Range     DateRange
	Status    string
	Direction string // D or W; empty keeps both
}

// CashMovementQuery filters query-cash-movement-ssi.
type CashMovementQuery struct {
	AccountID   string
	Range       DateRange
	RecordState string
	DataType    string
}
