package employee_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/domain/employee"
	"ems/internal/platform/config"
	cryptoutil "ems/internal/platform/crypto"
	"ems/internal/platform/db"
)

func newTestStore(t *testing.T) (*employee.Store, *sql.DB) {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Connect(ctx, config.Config{DBDriver: config.DriverSQLite, DatabaseURL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(ctx, conn, config.DriverSQLite))

	crypto, err := cryptoutil.New("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	return employee.NewStore(conn, crypto), conn
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store, conn := newTestStore(t)
	roster := employee.DemoRoster()

	snoopy := roster[0]
	snoopy.ID = 0
	id, err := store.CreateEmployee(ctx, snoopy, &employee.Login{Username: "Snoopy@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	charlie := roster[1]
	charlie.ID = 0
	charlie.JobTitle = nil
	id2, err := store.CreateEmployee(ctx, charlie, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2)

	got, err := store.GetEmployee(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Snoopy", got.FirstName)
	assert.Equal(t, "111-11-1111", got.SSN)
	assert.True(t, got.Salary.Equal(decimal.NewFromInt(45000)))
	assert.Equal(t, roster[0].HireDate, got.HireDate)
	assert.Equal(t, "Chief Info. Officer", got.JobTitleValue())

	var stored []byte
	require.NoError(t, conn.QueryRow("SELECT ssn_enc FROM employees WHERE id = 1").Scan(&stored))
	assert.NotContains(t, string(stored), "111-11-1111")

	var username string
	require.NoError(t, conn.QueryRow("SELECT username FROM users WHERE employee_id = 1").Scan(&username))
	assert.Equal(t, "snoopy@example.com", username)

	got2, err := store.GetEmployee(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, got2.JobTitle)

	got.Salary = decimal.RequireFromString("46000.50")
	got.Division = nil
	require.NoError(t, store.UpdateEmployee(ctx, got))
	updated, err := store.GetEmployee(ctx, 1)
	require.NoError(t, err)
	assert.True(t, updated.Salary.Equal(decimal.RequireFromString("46000.5")))
	assert.Nil(t, updated.Division)

	list, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)

	require.NoError(t, store.DeleteEmployee(ctx, 1))
	_, err = store.GetEmployee(ctx, 1)
	require.ErrorIs(t, err, employee.ErrNotFound)
	var logins int
	require.NoError(t, conn.QueryRow("SELECT COUNT(1) FROM users").Scan(&logins))
	assert.Equal(t, 0, logins)
}

func TestStoreRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	emp := employee.DemoRoster()[0]

	_, err := store.CreateEmployee(ctx, emp, nil)
	require.NoError(t, err)

	emp.ID = 0
	_, err = store.CreateEmployee(ctx, emp, nil)
	require.ErrorIs(t, err, employee.ErrDuplicateEmail)
}

func TestStoreUpdateRenamesLogin(t *testing.T) {
	ctx := context.Background()
	store, conn := newTestStore(t)
	ann := employee.DemoRoster()[0]
	ann.ID = 0
	ann.Email = "ann@example.com"
	id, err := store.CreateEmployee(ctx, ann, &employee.Login{Username: ann.Email, PasswordHash: "hash"})
	require.NoError(t, err)

	ann.ID = id
	ann.Email = "Ann.New@example.com"
	require.NoError(t, store.UpdateEmployee(ctx, ann))

	var username string
	require.NoError(t, conn.QueryRow("SELECT username FROM users WHERE employee_id = $1", id).Scan(&username))
	assert.Equal(t, "ann.new@example.com", username)

	bob := employee.DemoRoster()[1]
	bob.ID = 0
	bob.Email = "ann@example.com"
	_, err = store.CreateEmployee(ctx, bob, &employee.Login{Username: bob.Email, PasswordHash: "hash"})
	require.NoError(t, err, "the old address is free once the login moved")
}

func TestStoreTellsDuplicateLoginFromDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store, conn := newTestStore(t)
	_, err := conn.Exec(`INSERT INTO users (id, username, password_hash, role) VALUES (1, 'carol@example.com', 'hash', 'admin')`)
	require.NoError(t, err)

	carol := employee.DemoRoster()[2]
	carol.ID = 0
	carol.Email = "carol@example.com"
	_, err = store.CreateEmployee(ctx, carol, &employee.Login{Username: carol.Email, PasswordHash: "hash"})
	require.ErrorIs(t, err, employee.ErrDuplicateLogin)

	id, err := store.CreateEmployee(ctx, carol, nil)
	require.NoError(t, err)

	patti := employee.DemoRoster()[3]
	patti.ID = 0
	pid, err := store.CreateEmployee(ctx, patti, &employee.Login{Username: patti.Email, PasswordHash: "hash"})
	require.NoError(t, err)
	patti.ID = pid
	patti.Email = "carol@example.com"
	require.ErrorIs(t, store.UpdateEmployee(ctx, patti), employee.ErrDuplicateEmail)

	_, err = conn.Exec(`INSERT INTO users (id, username, password_hash, role) VALUES (99, 'dave@example.com', 'hash', 'admin')`)
	require.NoError(t, err)
	patti.Email = "dave@example.com"
	require.ErrorIs(t, store.UpdateEmployee(ctx, patti), employee.ErrDuplicateLogin)
	stored, err := store.GetEmployee(ctx, pid)
	require.NoError(t, err)
	assert.NotEqual(t, "dave@example.com", stored.Email, "a rejected rename leaves the record untouched")

	carol.ID = id
	carol.Email = "dave@example.com"
	require.NoError(t, store.UpdateEmployee(ctx, carol), "an employee without a login renames freely")
}

func TestStoreMissingRows(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.GetEmployee(ctx, 42)
	require.ErrorIs(t, err, employee.ErrNotFound)

	emp := employee.DemoRoster()[0]
	emp.ID = 42
	require.ErrorIs(t, store.UpdateEmployee(ctx, emp), employee.ErrNotFound)
	require.ErrorIs(t, store.DeleteEmployee(ctx, 42), employee.ErrNotFound)
}

func TestServiceApplyRaiseIsAtomic(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	for _, emp := range employee.DemoRoster() {
		_, err := store.CreateEmployee(ctx, emp, nil)
		require.NoError(t, err)
	}
	svc := employee.NewService(store)

	min, max, pct := decimal.NewFromInt(15000), decimal.NewFromInt(17000), decimal.NewFromInt(10)
	lines, err := svc.ApplyRaise(ctx, employee.RaiseRequest{MinSalary: &min, MaxSalary: &max, Percent: &pct})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	elmer, err := store.GetEmployee(ctx, 14)
	require.NoError(t, err)
	assert.True(t, elmer.Salary.Equal(decimal.NewFromInt(17050)), elmer.Salary.String())

	bugs, err := store.GetEmployee(ctx, 11)
	require.NoError(t, err)
	assert.True(t, bugs.Salary.Equal(decimal.NewFromInt(18000)))

	err = store.UpdateSalaries(ctx, []employee.RaiseLine{
		{EmployeeID: 11, NewSalary: decimal.NewFromInt(1)},
		{EmployeeID: 999, NewSalary: decimal.NewFromInt(1)},
	})
	require.ErrorIs(t, err, employee.ErrNotFound)
	bugs, err = store.GetEmployee(ctx, 11)
	require.NoError(t, err)
	assert.True(t, bugs.Salary.Equal(decimal.NewFromInt(18000)), "failed batch must roll back")
}

func TestServiceSearchUsesStoredRoster(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	for _, emp := range employee.DemoRoster() {
		_, err := store.CreateEmployee(ctx, emp, nil)
		require.NoError(t, err)
	}

	found, err := employee.NewService(store).Search(ctx, employee.SearchByName, "velma")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(9), found[0].ID)
}
