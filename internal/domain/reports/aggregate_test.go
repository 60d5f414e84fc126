package reports

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/domain/employee"
)

func staff(id int64, salary int64, title, division *string) employee.Employee {
	return employee.Employee{
		ID:        id,
		FirstName: "E",
		LastName:  "Mployee",
		Salary:    decimal.NewFromInt(salary),
		JobTitle:  title,
		Division:  division,
	}
}

func strPtr(s string) *string { return &s }

func TestAggregateByJobTitleEntertainers(t *testing.T) {
	roster := []employee.Employee{
		staff(1, 18000, strPtr("Entertainer"), nil),
		staff(2, 16000, strPtr("Entertainer"), nil),
	}

	rows := AggregateByJobTitle(roster)
	require.Len(t, rows, 1)
	assert.Equal(t, "Entertainer", rows[0].Key)
	assert.Equal(t, 2, rows[0].EmployeeCount)
	assert.Equal(t, "2833", rows[0].DisplayTotal().String())
	assert.False(t, rows[0].TotalMonthlyPay.Equal(rows[0].DisplayTotal()), "internal total stays unrounded")
}

func TestAggregateGroupsMissingCategoryUnderEmptyKey(t *testing.T) {
	roster := []employee.Employee{
		staff(1, 12000, nil, strPtr("HQ")),
		staff(2, 24000, strPtr(""), strPtr("HQ")),
		staff(3, 36000, strPtr("Pilot"), nil),
	}

	byTitle := AggregateByKey(roster, ByJobTitle)
	require.Contains(t, byTitle, "")
	assert.Equal(t, 2, byTitle[""].EmployeeCount)
	assert.True(t, byTitle[""].TotalMonthlyPay.Equal(decimal.NewFromInt(3000)))

	rows := AggregateByDivision(roster)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0].Key)
	assert.Equal(t, "HQ", rows[1].Key)
}

func TestAggregateTotalsMatchRoster(t *testing.T) {
	roster := employee.DemoRoster()
	want := decimal.Zero
	for _, emp := range roster {
		want = want.Add(emp.MonthlySalary())
	}

	for name, rows := range map[string][]Row{
		"job title": AggregateByJobTitle(roster),
		"division":  AggregateByDivision(roster),
	} {
		t.Run(name, func(t *testing.T) {
			count := 0
			for _, row := range rows {
				assert.Positive(t, row.EmployeeCount)
				count += row.EmployeeCount
			}
			assert.Equal(t, len(roster), count)
			assert.True(t, GrandTotal(rows).Equal(want), "grand total %s != %s", GrandTotal(rows), want)
		})
	}
}

func TestAggregateEmptyRoster(t *testing.T) {
	assert.Empty(t, AggregateByJobTitle(nil))
	assert.Empty(t, PercentOfTotal(nil))
}

func TestPercentOfTotal(t *testing.T) {
	rows := AggregateByDivision(employee.DemoRoster())
	shares := PercentOfTotal(rows)
	require.Len(t, shares, len(rows))

	sum := decimal.Zero
	for i, share := range shares {
		assert.Equal(t, rows[i].Key, share.Key)
		sum = sum.Add(share.Percent)
	}
	assert.True(t, sum.Sub(hundred).Abs().LessThan(decimal.RequireFromString("0.000001")), "shares sum to %s", sum)
}

func TestPercentOfTotalZeroGrandTotal(t *testing.T) {
	rows := AggregateByJobTitle([]employee.Employee{
		staff(1, 0, strPtr("Volunteer"), nil),
		staff(2, 0, strPtr("Intern"), nil),
	})
	for _, share := range PercentOfTotal(rows) {
		assert.True(t, share.Percent.IsZero())
	}
}
