package rules

// Dropdown option lists, in display order.
var (
	OrderSides         = []string{"All", "Buy", "Sell"}
	OrderStatuses      = []string{"All", "Pending", "Completed", "Rejected", "Failed"}
	CashTransferTypes  = []string{"All", "To sub", "To bank", "VSD Withdraw", "VSD Deposit"}
	HistoryStatuses    = []string{"All", "Pending", "Completed", "Rejected"}
	RegistrationTypes  = []string{"Online", "At counter"}
	OpenAccountTypes   = []string{"Derivative"}
	OrderSymbolValid   = "VNM"
	OrderSymbolInvalid = "BBB"
	OrderSymbolDelist  = "XYZ"
)

// SameOptions reports whether got lists exactly want, in order.
func SameOptions(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
