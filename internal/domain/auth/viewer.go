package auth

import "ems/internal/domain/employee"

// Viewer is the caller on whose behalf data is read. It is passed explicitly
// to every operation that narrows results by identity.
type Viewer struct {
	UserID     int64  `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
}

func (v Viewer) IsAdmin() bool {
	return v.Role == RoleAdmin
}

// CanView reports whether the viewer may see data belonging to employeeID.
// Admins see everyone; employees only themselves.
func (v Viewer) CanView(employeeID int64) bool {
	if v.IsAdmin() {
		return true
	}
	return v.Role == RoleEmployee && v.EmployeeID != nil && *v.EmployeeID == employeeID
}

// FilterRoster keeps the entries the viewer is allowed to see.
func FilterRoster(v Viewer, roster []employee.Employee) []employee.Employee {
	if v.IsAdmin() {
		return roster
	}
	out := make([]employee.Employee, 0, 1)
	for _, emp := range roster {
		if v.CanView(emp.ID) {
			out = append(out, emp)
		}
	}
	return out
}

// RequireAdmin returns ErrForbidden for anyone but an admin.
func RequireAdmin(v Viewer) error {
	if !v.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
