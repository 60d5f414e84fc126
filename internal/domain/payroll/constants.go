package payroll

import "github.com/shopspring/decimal"

// Fixed rates applied to monthly gross pay. They are not configurable and do
// not model any real jurisdiction.
var (
	FederalTaxRate      = decimal.RequireFromString("0.15")
	StateTaxRate        = decimal.RequireFromString("0.05")
	MedicareRate        = decimal.RequireFromString("0.0145")
	SocialSecurityRate  = decimal.RequireFromString("0.062")
	RetirementRate      = decimal.RequireFromString("0.05")
	HealthInsuranceFlat = decimal.NewFromInt(150)
	OtherDeductionsFlat = decimal.Zero
)

const (
	// FirstPeriodEndDay closes the first semi-monthly period.
	FirstPeriodEndDay = 15

	// DisplayPlaces is the number of decimal places shown for statement amounts.
	DisplayPlaces = 2

	dateLayout = "2006-01-02"
)
