package format

// StatusTable maps short API codes to UI labels.
type StatusTable map[string]string

// Label returns the label for code, or code itself when unmapped.
func (t StatusTable) Label(code string) string {
	if label, ok := t[code]; ok {
		return label
	}
	return code
}

// VSDState labels depository deposit and withdrawal states.
var VSDState = StatusTable{
	"PI": "Active",
	"R":  "Completed",
	"PO": "Pending",
	"C":  "Rejected",
}

// CashMovementState labels bank transfer states.
var CashMovementState = StatusTable{
	"A":  "Thành công",
	"PI": "Chờ duyệt thêm mới",
	"PR": "Chờ duyệt từ chối",
	"PC": "Chờ duyệt hủy",
	"R":  "Đã từ chối",
	"D":  "Đã xóa",
}

// UserStatus labels the account status text.
var UserStatus = StatusTable{
	"Hoạt động":       "Active",
	"Không hoạt động": "Inactive",
}

// YesNo labels Y/N flags.
var YesNo = StatusTable{
	"Y": "Yes",
	"N": "No",
}
