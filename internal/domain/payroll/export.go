package payroll

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/jung-kurt/gofpdf"
)

// WriteCSV renders statements as a CSV register with a header row.
func WriteCSV(w io.Writer, statements []Statement) error {
	return gocsv.Marshal(Views(statements), w)
}

// WritePDF renders a single pay statement as an A4 document.
func WritePDF(w io.Writer, stmt Statement) error {
	v := stmt.View()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Pay statement %d %s", v.EmployeeID, v.PayDate), false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Pay Statement")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (#%d)", v.EmployeeName, v.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", v.StartDate, v.EndDate))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pay date: %s", v.PayDate))
	pdf.Ln(10)

	lines := []struct {
		label, amount string
		bold          bool
	}{
		{"Gross pay", v.GrossPay, true},
		{"Federal tax", v.FederalTax, false},
		{"State tax", v.StateTax, false},
		{"Medicare", v.MedicareTax, false},
		{"Social security", v.SocialSecurityTax, false},
		{"Retirement", v.Retirement, false},
		{"Health insurance", v.HealthInsurance, false},
		{"Other deductions", v.OtherDeductions, false},
		{"Total deductions", v.TotalDeductions, true},
		{"Tax withholding", v.TaxWithholding, false},
		{"Net pay", v.NetPay, true},
	}
	for _, line := range lines {
		style := ""
		if line.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 12)
		pdf.CellFormat(70, 8, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, line.amount, "", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}
