package payroll

import (
	"github.com/shopspring/decimal"
)

// StatementView is a statement rounded to cents for display. Every output
// surface (JSON, CSV, PDF, CLI) renders statements through it.
type StatementView struct {
	EmployeeID        int64  `json:"employeeId" csv:"employee_id"`
	EmployeeName      string `json:"employeeName" csv:"employee_name"`
	StartDate         string `json:"startDate" csv:"start_date"`
	EndDate           string `json:"endDate" csv:"end_date"`
	PayDate           string `json:"payDate" csv:"pay_date"`
	GrossPay          string `json:"grossPay" csv:"gross_pay"`
	FederalTax        string `json:"federalTax" csv:"federal_tax"`
	StateTax          string `json:"stateTax" csv:"state_tax"`
	MedicareTax       string `json:"medicareTax" csv:"medicare_tax"`
	SocialSecurityTax string `json:"socialSecurityTax" csv:"social_security_tax"`
	Retirement        string `json:"retirement" csv:"retirement"`
	HealthInsurance   string `json:"healthInsurance" csv:"health_insurance"`
	OtherDeductions   string `json:"otherDeductions" csv:"other_deductions"`
	TotalDeductions   string `json:"totalDeductions" csv:"total_deductions"`
	NetPay            string `json:"netPay" csv:"net_pay"`
	TaxWithholding    string `json:"taxWithholding" csv:"tax_withholding"`
}

func (s Statement) View() StatementView {
	return StatementView{
		EmployeeID:        s.EmployeeID,
		EmployeeName:      s.EmployeeName,
		StartDate:         s.Period.Start.Format(dateLayout),
		EndDate:           s.Period.End.Format(dateLayout),
		PayDate:           s.Period.PayDate.Format(dateLayout),
		GrossPay:          money(s.GrossPay),
		FederalTax:        money(s.Deductions.FederalTax),
		StateTax:          money(s.Deductions.StateTax),
		MedicareTax:       money(s.Deductions.MedicareTax),
		SocialSecurityTax: money(s.Deductions.SocialSecurityTax),
		Retirement:        money(s.Deductions.Retirement),
		HealthInsurance:   money(s.Deductions.HealthInsurance),
		OtherDeductions:   money(s.Deductions.Other),
		TotalDeductions:   money(s.Deductions.Total()),
		NetPay:            money(s.NetPay),
		TaxWithholding:    money(s.TaxWithholding),
	}
}

func Views(statements []Statement) []StatementView {
	out := make([]StatementView, 0, len(statements))
	for _, s := range statements {
		out = append(out, s.View())
	}
	return out
}

func money(value decimal.Decimal) string {
	return value.StringFixed(DisplayPlaces)
}
