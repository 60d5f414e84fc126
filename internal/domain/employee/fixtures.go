package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemoRoster is the sample workforce loaded by the seeder and by the CLI when
// no roster file is given.
func DemoRoster() []Employee {
	type row struct {
		first, last, hired string
		salary             int64
		ssn, title, div    string
	}
	rows := []row{
		{"Snoopy", "Beagle", "2022-08-01", 45000, "111-11-1111", "Chief Info. Officer", "HQ"},
		{"Charlie", "Brown", "2022-07-01", 48000, "111-22-1111", "Chief Exec. Officer", "HQ"},
		{"Lucy", "Doctor", "2022-07-03", 55000, "111-33-1111", "Medical Director", "Medical"},
		{"Peppermint", "Patti", "2022-08-02", 98000, "111-44-1111", "Senior Developer", "Engineering"},
		{"Linus", "Blanket", "2022-09-01", 43000, "111-55-1111", "Software Engineer", "Engineering"},
		{"PigPin", "Dusty", "2022-10-01", 33000, "111-66-1111", "Junior Developer", "Engineering"},
		{"Scooby", "Doo", "1973-07-03", 78000, "111-77-1111", "Detective", "Security"},
		{"Shaggy", "Rodgers", "1973-07-11", 77000, "111-88-1111", "Security Officer", "Security"},
		{"Velma", "Dinkley", "1973-07-21", 82000, "111-99-1111", "Research Scientist", "R&D"},
		{"Daphne", "Blake", "1973-07-30", 59000, "111-00-1111", "Marketing Manager", "Marketing"},
		{"Bugs", "Bunny", "1934-07-01", 18000, "222-11-1111", "Entertainer", "Entertainment"},
		{"Daffy", "Duck", "1935-04-01", 16000, "333-11-1111", "Entertainer", "Entertainment"},
		{"Porky", "Pig", "1935-08-12", 16550, "444-11-1111", "Entertainer", "Entertainment"},
		{"Elmer", "Fudd", "1934-08-01", 15500, "555-11-1111", "Hunting Guide", "Outdoor"},
		{"Marvin", "Martian", "1937-05-01", 28000, "777-11-1111", "Space Explorer", "Space"},
	}

	out := make([]Employee, 0, len(rows))
	for i, r := range rows {
		hired, _ := time.Parse(DateLayout, r.hired)
		title, div := r.title, r.div
		out = append(out, Employee{
			ID:        int64(i + 1),
			FirstName: r.first,
			LastName:  r.last,
			Email:     r.first + "@example.com",
			HireDate:  hired,
			Salary:    decimal.NewFromInt(r.salary),
			JobTitle:  &title,
			Division:  &div,
			SSN:       r.ssn,
		})
	}
	return out
}
