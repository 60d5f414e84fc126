package employee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestPlanRaiseSelectsHalfOpenRange(t *testing.T) {
	lines, err := PlanRaise(DemoRoster(), RaiseRequest{MinSalary: dec("16000"), MaxSalary: dec("18000"), Percent: dec("3.2")})
	require.NoError(t, err)

	got := map[int64]string{}
	for _, line := range lines {
		got[line.EmployeeID] = line.NewSalary.String()
	}
	// 16000 is included, 18000 is excluded, 15500 is below the range.
	assert.Equal(t, map[int64]string{12: "16512", 13: "17080"}, got)
}

func TestPlanRaiseEmptyRangeIsNotAnError(t *testing.T) {
	lines, err := PlanRaise(DemoRoster(), RaiseRequest{MinSalary: dec("1000000"), MaxSalary: dec("2000000"), Percent: dec("5")})
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRaiseRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  RaiseRequest
	}{
		{name: "missing fields", req: RaiseRequest{}},
		{name: "min equals max", req: RaiseRequest{MinSalary: dec("100"), MaxSalary: dec("100"), Percent: dec("5")}},
		{name: "min above max", req: RaiseRequest{MinSalary: dec("200"), MaxSalary: dec("100"), Percent: dec("5")}},
		{name: "zero percent", req: RaiseRequest{MinSalary: dec("0"), MaxSalary: dec("100"), Percent: dec("0")}},
		{name: "percent above cap", req: RaiseRequest{MinSalary: dec("0"), MaxSalary: dec("100"), Percent: dec("20.5")}},
		{name: "negative min", req: RaiseRequest{MinSalary: dec("-1"), MaxSalary: dec("100"), Percent: dec("5")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.req.Validate(), ErrInvalid)
		})
	}

	require.NoError(t, RaiseRequest{MinSalary: dec("0"), MaxSalary: dec("100"), Percent: dec("20")}.Validate())
}
