package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTables_DocumentedLabels(t *testing.T) {
	tables := map[string]struct {
		table StatusTable
		want  map[string]string
	}{
		"vsd": {VSDState, map[string]string{"PI": "Active", "R": "Completed", "PO": "Pending", "C": "Rejected"}},
		"cash movement": {CashMovementState, map[string]string{
			"A": "Thành công", "PI": "Chờ duyệt thêm mới", "PR": "Chờ duyệt từ chối",
			"PC": "Chờ duyệt hủy", "R": "Đã từ chối", "D": "Đã xóa",
		}},
		"user":   {UserStatus, map[string]string{"Hoạt động": "Active", "Không hoạt động": "Inactive"}},
		"yes/no": {YesNo, map[string]string{"Y": "Yes", "N": "No"}},
	}

	for name, tc := range tables {
		t.Run(name, func(t *testing.T) {
			for code, label := range tc.want {
				assert.Equal(t, label, tc.table.Label(code))
			}
		})
	}
}

func TestStatusTables_IdentityFallback(t *testing.T) {
	for _, code := range []string{"", "X", "pi", "UNKNOWN", "Tạm khóa"} {
		assert.Equal(t, code, VSDState.Label(code))
		assert.Equal(t, code, CashMovementState.Label(code))
		assert.Equal(t, code, UserStatus.Label(code))
	}
}
