package payroll

import (
	"fmt"
	"time"
)

// PeriodsForMonth returns the two semi-monthly periods of a month: the 1st to
// the 15th paid on the 15th, and the 16th to the last day paid on the last day.
func PeriodsForMonth(year int, month time.Month) ([]Period, error) {
	if year < 1 {
		return nil, fmt.Errorf("%w: year %d is out of range", ErrInvalidPeriod, year)
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d is out of range", ErrInvalidPeriod, int(month))
	}

	first := date(year, month, 1)
	mid := date(year, month, FirstPeriodEndDay)
	last := first.AddDate(0, 1, -1)

	return []Period{
		{Start: first, End: mid, PayDate: mid},
		{Start: mid.AddDate(0, 0, 1), End: last, PayDate: last},
	}, nil
}

// PeriodForPayDate finds the semi-monthly period paid on payDate.
func PeriodForPayDate(payDate time.Time) (Period, error) {
	periods, err := PeriodsForMonth(payDate.Year(), payDate.Month())
	if err != nil {
		return Period{}, err
	}
	day := date(payDate.Year(), payDate.Month(), payDate.Day())
	for _, p := range periods {
		if p.PayDate.Equal(day) {
			return p, nil
		}
	}
	return Period{}, fmt.Errorf("%w: %s is not a pay date", ErrInvalidPeriod, day.Format(dateLayout))
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
