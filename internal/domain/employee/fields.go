package employee

// RedactSensitive masks fields that only administrators may read in full.
func RedactSensitive(emp Employee) Employee {
	emp.SSN = MaskSSN(emp.SSN)
	return emp
}

// MaskSSN keeps the last four characters of an SSN for display. Values too
// short to hide anything else are masked in full.
func MaskSSN(ssn string) string {
	keep := 4
	if len(ssn) <= keep {
		keep = 0
	}
	masked := make([]byte, len(ssn))
	for i := range ssn {
		switch {
		case i >= len(ssn)-keep:
			masked[i] = ssn[i]
		case ssn[i] == '-':
			masked[i] = '-'
		default:
			masked[i] = '*'
		}
	}
	return string(masked)
}
