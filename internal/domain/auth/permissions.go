package auth

import "context"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

const (
	PermEmployeesRead  = "employees.read"
	PermEmployeesWrite = "employees.write"
	PermPayrollRead    = "payroll.read"
	PermPayrollWrite   = "payroll.write"
	PermReportsRead    = "reports.read"
)

var Roles = []string{RoleAdmin, RoleEmployee}

var RolePermissions = map[string][]string{
	RoleAdmin: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermPayrollRead,
		PermPayrollWrite,
		PermReportsRead,
	},
	// Employees read payroll and their own record; the handlers narrow
	// the data to the caller.
	RoleEmployee: {
		PermEmployeesRead,
		PermPayrollRead,
	},
}

func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

// StaticPermissions answers permission checks from RolePermissions.
type StaticPermissions struct{}

func (StaticPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	for _, granted := range RolePermissions[role] {
		if granted == permission {
			return true, nil
		}
	}
	return false, nil
}
