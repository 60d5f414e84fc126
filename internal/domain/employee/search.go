package employee

import (
	"strconv"
	"strings"
	"time"
)

type SearchField string

const (
	SearchByName     SearchField = "name"
	SearchByID       SearchField = "id"
	SearchBySSN      SearchField = "ssn"
	SearchByHireDate SearchField = "hire_date"
)

var SearchFields = []SearchField{SearchByName, SearchByID, SearchBySSN, SearchByHireDate}

// Search filters roster by one field. Names match case-insensitively on any
// part of "first last", SSNs match on any substring, ids and hire dates match
// exactly. No match yields an empty slice.
func Search(roster []Employee, field SearchField, query string) ([]Employee, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ValidationErrors{{Field: "q", Message: "is required"}}
	}

	var match func(Employee) bool
	switch field {
	case SearchByName:
		needle := strings.ToLower(query)
		match = func(e Employee) bool {
			return strings.Contains(strings.ToLower(e.FirstName+" "+e.LastName), needle)
		}
	case SearchByID:
		id, err := strconv.ParseInt(query, 10, 64)
		if err != nil {
			return nil, ValidationErrors{{Field: "q", Message: "must be a numeric employee id"}}
		}
		match = func(e Employee) bool { return e.ID == id }
	case SearchBySSN:
		match = func(e Employee) bool { return strings.Contains(e.SSN, query) }
	case SearchByHireDate:
		day, err := time.Parse(DateLayout, query)
		if err != nil {
			return nil, ValidationErrors{{Field: "q", Message: "must be a date in YYYY-MM-DD format"}}
		}
		match = func(e Employee) bool {
			y1, m1, d1 := e.HireDate.Date()
			y2, m2, d2 := day.Date()
			return y1 == y2 && m1 == m2 && d1 == d2
		}
	default:
		return nil, ValidationErrors{{Field: "field", Message: "must be one of name, id, ssn, hire_date"}}
	}

	out := make([]Employee, 0)
	for _, emp := range roster {
		if match(emp) {
			out = append(out, emp)
		}
	}
	return out, nil
}
