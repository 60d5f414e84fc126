package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/domain/employee"
)

func int64Ptr(v int64) *int64 { return &v }

func TestViewerCanView(t *testing.T) {
	admin := Viewer{UserID: 1, Role: RoleAdmin}
	self := Viewer{UserID: 2, Role: RoleEmployee, EmployeeID: int64Ptr(11)}
	unlinked := Viewer{UserID: 3, Role: RoleEmployee}

	assert.True(t, admin.CanView(11))
	assert.True(t, admin.CanView(12))
	assert.True(t, self.CanView(11))
	assert.False(t, self.CanView(12))
	assert.False(t, unlinked.CanView(11))
}

func TestFilterRoster(t *testing.T) {
	roster := employee.DemoRoster()

	all := FilterRoster(Viewer{Role: RoleAdmin}, roster)
	assert.Len(t, all, len(roster))

	own := FilterRoster(Viewer{Role: RoleEmployee, EmployeeID: int64Ptr(11)}, roster)
	require.Len(t, own, 1)
	assert.Equal(t, "Bugs", own[0].FirstName)

	none := FilterRoster(Viewer{Role: RoleEmployee, EmployeeID: int64Ptr(999)}, roster)
	assert.Empty(t, none)
}

func TestRequireAdmin(t *testing.T) {
	require.NoError(t, RequireAdmin(Viewer{Role: RoleAdmin}))
	require.ErrorIs(t, RequireAdmin(Viewer{Role: RoleEmployee}), ErrForbidden)
}
