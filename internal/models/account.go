package models

// BankAccount is one linked bank account from get-account-bank.
type BankAccount struct {
	BankAccNo     string  `json:"bankAccNo"`
	BankAccName   string  `json:"bankAccName"`
	IsDefault     string  `json:"isDefault"` // Y or N
	Description   *string `json:"description"`
	BankName      string  `json:"bankName"`
	BankNameOther *string `json:"bankNameOther"`
	BankID        string  `json:"bankId"`
	BankBranchID  string  `json:"bankBranchId"`
}

// UserInfo is the account holder profile from user-info.
type UserInfo struct {
	UserID           string  `json:"userId"`
	Name             string  `json:"name"`
	NameOther        string  `json:"nameOther"`
	IDNumber         string  `json:"idNumber"`
	IDIssueDate      string  `json:"idIssueDate"` // DD/MM/YYYY
	IDIssuePlace     string  `json:"idIssuePlace"`
	Address          string  `json:"address"`
	Phone            string  `json:"phone"`
	Mobile           *string `json:"mobile"`
	Email            string  `json:"email"`
	RegistrationType string  `json:"registrationType"`
	BrokerName       string  `json:"brokerName"`
	BranchName       string  `json:"branchName"`
	StatusText       string  `json:"statusText"`
}
