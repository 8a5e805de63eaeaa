package reconcile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/models"
)

func TestCompare_Policies(t *testing.T) {
	tests := []struct {
		name     string
		ui       string
		ok       bool
		expected string
		policy   models.Policy
		want     bool
	}{
		{"exact trims", "  Vietcombank ", true, "Vietcombank", models.PolicyExact, true},
		{"exact differs", "Vietcombank", true, "VCB", models.PolicyExact, false},
		{"contains unit suffix", "1.234.568 VND", true, "1.234.568", models.PolicyContains, true},
		{"contains absent", "1.234.567 VND", true, "1.234.568", models.PolicyContains, false},
		{"missing never matches", "", false, "", models.PolicyExact, false},
		{"missing contains", "", false, "0", models.PolicyContains, false},
		{"empty policy is exact", "0", true, "0", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("assets", true, nil)
			assert.Equal(t, tt.want, c.Compare("field", tt.ui, tt.ok, tt.expected, tt.policy))
			require.Len(t, c.Comparisons(), 1)
			assert.Equal(t, !tt.ok, c.Comparisons()[0].Missing)
		})
	}
}

func TestCompareNumbers_Tolerance(t *testing.T) {
	c := New("order-history", true, nil)

	assert.True(t, c.CompareNumbers("total", "1.500.000", true, 1500000, DefaultTolerance))
	assert.True(t, c.CompareNumbers("avg", "12.005", true, 12.01, DefaultTolerance))
	assert.False(t, c.CompareNumbers("qty", "1.500.001", true, 1500000, DefaultTolerance))
	assert.False(t, c.CompareNumbers("blank", "—", true, 0, DefaultTolerance))
	assert.False(t, c.CompareNumbers("gone", "", false, 0, DefaultTolerance))

	got := c.Comparisons()
	assert.Equal(t, models.PolicyNumeric, got[0].Policy)
	assert.Equal(t, "1500000", got[0].Expected)
}

func TestErr_EnforceAggregates(t *testing.T) {
	c := New("user-info", true, nil)
	c.Compare("phone", "0901", true, "0901", models.PolicyExact)
	c.Compare("email", "a@x.vn", true, "b@x.vn", models.PolicyExact)
	c.Compare("address", "", false, "Ha Noi", models.PolicyExact)
	c.CheckCount("row count", 2, 3)

	err := c.Err()
	require.Error(t, err)

	var mm *MismatchError
	require.True(t, errors.As(err, &mm))
	assert.Equal(t, "user-info", mm.Screen)

	want := []models.Comparison{
		{Field: "email", UI: "a@x.vn", Expected: "b@x.vn", Policy: models.PolicyExact},
		{Field: "address", Expected: "Ha Noi", Policy: models.PolicyExact, Missing: true},
	}
	if diff := cmp.Diff(want, mm.Comparisons); diff != "" {
		t.Errorf("failed comparisons mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, mm.Checks, 1)
	assert.Equal(t, "ui=2 expected=3", mm.Checks[0].Detail)

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "user-info: 2 mismatched fields, 1 failed checks"))
	assert.Contains(t, msg, `address: not found on page (expected "Ha Noi")`)
	assert.Contains(t, msg, `email: ui "a@x.vn", expected "b@x.vn" (exact)`)
}

func TestErr_ObserveOnlyLogs(t *testing.T) {
	var buf bytes.Buffer
	c := New("assets", false, common.NewLoggerWithOutput("info", &buf))

	c.Compare("total assets", "1", true, "2", models.PolicyContains)
	c.Compare("net assets", "2", true, "2", models.PolicyContains)

	assert.NoError(t, c.Err())
	assert.False(t, c.Enforce())

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"message":"MISMATCH"`)
	assert.Contains(t, out, `"message":"MATCH"`)
	assert.Contains(t, out, `"field":"total assets"`)
}

func TestErr_AllPassed(t *testing.T) {
	c := New("bank-account", true, nil)
	c.Compare("bank", "VCB", true, "VCB", models.PolicyExact)
	c.Check("shape", true, "")
	assert.NoError(t, c.Err())
}
