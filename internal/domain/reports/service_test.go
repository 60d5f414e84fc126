package reports

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
)

type staticRoster []employee.Employee

func (s staticRoster) ListEmployees(context.Context) ([]employee.Employee, error) {
	return s, nil
}

func TestServicePayBy(t *testing.T) {
	svc := NewService(staticRoster(employee.DemoRoster()))
	admin := auth.Viewer{UserID: 1, Role: auth.RoleAdmin}

	report, err := svc.PayBy(context.Background(), admin, DimensionJobTitle)
	require.NoError(t, err)
	assert.Equal(t, 15, report.EmployeeCount)

	var entertainers Line
	for _, line := range report.Lines {
		if line.Key == "Entertainer" {
			entertainers = line
		}
	}
	assert.Equal(t, 3, entertainers.EmployeeCount)
	assert.Equal(t, "4213", entertainers.TotalMonthlyPay)
	assert.Equal(t, "100.00", report.PercentTotal)

	_, err = svc.PayBy(context.Background(), auth.Viewer{Role: auth.RoleEmployee}, DimensionDivision)
	require.ErrorIs(t, err, auth.ErrForbidden)
}

func TestBuildWithUnpaidRoster(t *testing.T) {
	roster := employee.DemoRoster()[:2]
	for i := range roster {
		roster[i].Salary = decimal.Zero
	}

	report, err := Build(DimensionDivision, roster)
	require.NoError(t, err)
	assert.Equal(t, "0", report.GrandTotal)
	assert.Equal(t, "0.00", report.PercentTotal)
	require.Len(t, report.Lines, 1)
	assert.Equal(t, "0.00", report.Lines[0].PercentOfTotal)
}

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("division")
	require.NoError(t, err)
	assert.Equal(t, DimensionDivision, d)

	_, err = ParseDimension("salary")
	require.ErrorIs(t, err, ErrUnknownDimension)

	_, err = Build("salary", nil)
	require.ErrorIs(t, err, ErrUnknownDimension)
}
