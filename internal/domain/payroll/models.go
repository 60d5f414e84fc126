package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Period is a pay period. Start, End and PayDate are calendar dates at
// midnight UTC with Start <= End <= PayDate.
type Period struct {
	Start   time.Time `json:"startDate"`
	End     time.Time `json:"endDate"`
	PayDate time.Time `json:"payDate"`
}

func (p Period) Validate() error {
	switch {
	case p.Start.IsZero() || p.End.IsZero() || p.PayDate.IsZero():
		return fmt.Errorf("%w: start, end and pay dates are required", ErrInvalidPeriod)
	case p.End.Before(p.Start):
		return fmt.Errorf("%w: end %s is before start %s", ErrInvalidPeriod, p.End.Format(dateLayout), p.Start.Format(dateLayout))
	case p.PayDate.Before(p.End):
		return fmt.Errorf("%w: pay date %s is before end %s", ErrInvalidPeriod, p.PayDate.Format(dateLayout), p.End.Format(dateLayout))
	}
	return nil
}

// Deductions holds the seven withholding lines of a statement.
type Deductions struct {
	FederalTax        decimal.Decimal `json:"federalTax"`
	StateTax          decimal.Decimal `json:"stateTax"`
	MedicareTax       decimal.Decimal `json:"medicareTax"`
	SocialSecurityTax decimal.Decimal `json:"socialSecurityTax"`
	Retirement        decimal.Decimal `json:"retirement"`
	HealthInsurance   decimal.Decimal `json:"healthInsurance"`
	Other             decimal.Decimal `json:"otherDeductions"`
}

func (d Deductions) Total() decimal.Decimal {
	return decimal.Sum(d.FederalTax, d.StateTax, d.MedicareTax, d.SocialSecurityTax, d.Retirement, d.HealthInsurance, d.Other)
}

// Statement is a derived pay statement, identified by EmployeeID and
// Period.PayDate. Amounts are kept at full precision.
type Statement struct {
	EmployeeID     int64           `json:"employeeId"`
	EmployeeName   string          `json:"employeeName"`
	Period         Period          `json:"period"`
	GrossPay       decimal.Decimal `json:"grossPay"`
	Deductions     Deductions      `json:"deductions"`
	NetPay         decimal.Decimal `json:"netPay"`
	TaxWithholding decimal.Decimal `json:"taxWithholding"`
}
