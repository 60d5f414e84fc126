package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ems/internal/domain/employee"
)

// Generate derives the pay statement of emp for period. The gross is the full
// monthly salary (annual / 12) for every period, including semi-monthly ones.
// Nothing is rounded here; see Statement.View for display values.
func Generate(emp employee.Employee, period Period) (Statement, error) {
	if emp.ID <= 0 {
		return Statement{}, fmt.Errorf("%w: employee id must be positive", ErrInvalidEmployee)
	}
	if emp.Salary.IsNegative() {
		return Statement{}, fmt.Errorf("%w: employee %d has a negative salary", ErrInvalidEmployee, emp.ID)
	}
	if err := period.Validate(); err != nil {
		return Statement{}, err
	}

	gross := emp.MonthlySalary()
	deductions := DeductionsFor(gross)

	return Statement{
		EmployeeID:     emp.ID,
		EmployeeName:   emp.FullName(),
		Period:         period,
		GrossPay:       gross,
		Deductions:     deductions,
		NetPay:         gross.Sub(deductions.Total()),
		TaxWithholding: deductions.FederalTax.Add(deductions.StateTax),
	}, nil
}

// DeductionsFor applies the fixed rates to a monthly gross amount.
func DeductionsFor(gross decimal.Decimal) Deductions {
	return Deductions{
		FederalTax:        gross.Mul(FederalTaxRate),
		StateTax:          gross.Mul(StateTaxRate),
		MedicareTax:       gross.Mul(MedicareRate),
		SocialSecurityTax: gross.Mul(SocialSecurityRate),
		Retirement:        gross.Mul(RetirementRate),
		HealthInsurance:   HealthInsuranceFlat,
		Other:             OtherDeductionsFlat,
	}
}
