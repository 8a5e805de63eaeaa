package screens

import (
	"context"

	"github.com/bobmcallan/brokercheck/internal/format"
	"github.com/bobmcallan/brokercheck/internal/models"
	"github.com/bobmcallan/brokercheck/internal/web"
)

// BankAccount reconciles the linked bank accounts table.
func BankAccount(env *Env) Screen {
	return &ScreenValidator[[]models.BankAccount]{
		Name:   "bank-account",
		Title:  "Bank accounts",
		Path:   "/bank-account",
		Marker: "account-info-col-bankname[0]",
		Policy: models.PolicyExact,
		env:    env,
		Fetch: func(ctx context.Context) ([]models.BankAccount, error) {
			return env.FOS.GetBankAccounts(ctx, env.AccountID)
		},
		Table: &Table[[]models.BankAccount]{
			Layout:     web.CellLayout{Prefix: "account-info-col", Bracketed: true},
			CountBy:    "bankname",
			Rows:       func(d []models.BankAccount) int { return len(d) },
			CheckCount: true,
			Columns: []Column[[]models.BankAccount]{
				{Name: "bank name", Column: "bankname", Expected: func(d []models.BankAccount, i int) string { return d[i].BankName }},
				{Name: "account number", Column: "bankaccno", Expected: func(d []models.BankAccount, i int) string { return format.MaskAccount(d[i].BankAccNo) }},
			},
		},
		Shape: func(d []models.BankAccount) []models.Check {
			return []models.Check{presentCount("bank accounts", len(d))}
		},
	}
}

// UserInfo reconciles the account holder profile.
func UserInfo(env *Env) Screen {
	return &ScreenValidator[*models.UserInfo]{
		Name:   "user-info",
		Title:  "User info",
		Path:   "/user-info",
		Marker: "account-info-field-phone",
		Policy: models.PolicyExact,
		env:    env,
		Fetch: func(ctx context.Context) (*models.UserInfo, error) {
			return env.FOS.GetUserInfo(ctx, env.AccountID)
		},
		Fields: []Field[*models.UserInfo]{
			{Name: "phone", ID: "account-info-field-phone", Expected: func(u *models.UserInfo) string { return u.Phone }},
			{Name: "email", ID: "account-info-field-email", Expected: func(u *models.UserInfo) string { return u.Email }},
			{Name: "address", ID: "account-info-field-address", Expected: func(u *models.UserInfo) string { return u.Address }},
			{Name: "full name", ID: "account-info-field-fullname", Expected: func(u *models.UserInfo) string { return u.Name }},
			{Name: "user id", ID: "account-info-field-userid", Expected: func(u *models.UserInfo) string { return u.UserID }},
			{Name: "status", ID: "account-info-badge-status", Expected: func(u *models.UserInfo) string { return format.UserStatus.Label(u.StatusText) }},
			{Name: "id number", ID: "account-info-field-idnumber", Expected: func(u *models.UserInfo) string { return u.IDNumber }},
			{Name: "issue date", ID: "account-info-field-issuedate", Expected: func(u *models.UserInfo) string { return format.DMYToCompact(u.IDIssueDate) }},
			{Name: "issue place", ID: "account-info-field-issueplace", Expected: func(u *models.UserInfo) string { return u.IDIssuePlace }},
			{Name: "other name", ID: "account-info-field-othername", Expected: func(u *models.UserInfo) string { return u.NameOther }},
			{Name: "broker name", ID: "account-info-field-brokername", Expected: func(u *models.UserInfo) string { return u.BrokerName }},
			{Name: "branch name", ID: "account-info-field-branchname", Expected: func(u *models.UserInfo) string { return u.BranchName }},
		},
		Shape: func(u *models.UserInfo) []models.Check {
			return []models.Check{{Name: "user id present", Passed: u.UserID != "", Detail: u.UserID}}
		},
	}
}
