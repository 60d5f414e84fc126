package auth

import (
	"context"
	"testing"
)

func TestRolePermissionsCoverEveryRole(t *testing.T) {
	for _, role := range Roles {
		perms, ok := RolePermissions[role]
		if !ok || len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
	}
}

func TestStaticPermissions(t *testing.T) {
	tests := []struct {
		role string
		perm string
		want bool
	}{
		{RoleAdmin, PermEmployeesWrite, true},
		{RoleAdmin, PermReportsRead, true},
		{RoleEmployee, PermPayrollRead, true},
		{RoleEmployee, PermEmployeesRead, true},
		{RoleEmployee, PermEmployeesWrite, false},
		{RoleEmployee, PermReportsRead, false},
		{RoleEmployee, PermPayrollWrite, false},
		{"intruder", PermPayrollRead, false},
	}

	for _, tc := range tests {
		t.Run(tc.role+"/"+tc.perm, func(t *testing.T) {
			got, err := StaticPermissions{}.HasPermission(context.Background(), tc.role, tc.perm)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
