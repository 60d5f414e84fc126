package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	cryptoutil "ems/internal/platform/crypto"
	"ems/internal/platform/dbutil"
)

// employeeLoginRole matches the auth package's employee role.
const employeeLoginRole = "employee"

const employeeColumns = `id, first_name, last_name, email, CAST(hire_date AS TEXT), CAST(salary AS TEXT), job_title, division, ssn_enc`

type Store struct {
	DB     *sql.DB
	Crypto *cryptoutil.Service
}

func NewStore(db *sql.DB, crypto *cryptoutil.Service) *Store {
	return &Store{DB: db, Crypto: crypto}
}

var _ StoreAPI = (*Store)(nil)

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Employee, 0)
	for rows.Next() {
		emp, err := s.scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	emp, err := s.scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

// CreateEmployee assigns the next free id unless emp.ID is already set and
// optionally creates an employee login in the same transaction.
func (s *Store) CreateEmployee(ctx context.Context, emp Employee, login *Login) (int64, error) {
	ssnEnc, err := s.Crypto.EncryptString(emp.SSN)
	if err != nil {
		return 0, fmt.Errorf("encrypt ssn: %w", err)
	}

	err = dbutil.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if emp.ID == 0 {
			next, err := dbutil.NextID(ctx, tx, "employees")
			if err != nil {
				return err
			}
			emp.ID = next
		}
		if _, err := tx.ExecContext(ctx, `
      INSERT INTO employees (id, first_name, last_name, email, hire_date, salary, job_title, division, ssn_enc)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, emp.ID, emp.FirstName, emp.LastName, emp.Email, emp.HireDate.Format(DateLayout), emp.Salary.String(),
			nullString(emp.JobTitle), nullString(emp.Division), ssnEnc); err != nil {
			return err
		}
		if login == nil {
			return nil
		}
		userID, err := dbutil.NextID(ctx, tx, "users")
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
      INSERT INTO users (id, username, password_hash, role, employee_id)
      VALUES ($1, $2, $3, $4, $5)
    `, userID, strings.ToLower(strings.TrimSpace(login.Username)), login.PasswordHash, employeeLoginRole, emp.ID)
		return err
	})
	if err != nil {
		return 0, classifyWriteError(err)
	}
	return emp.ID, nil
}

// UpdateEmployee rewrites the record and renames any login bound to it, so
// the employee signs in with the new email.
func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) error {
	ssnEnc, err := s.Crypto.EncryptString(emp.SSN)
	if err != nil {
		return fmt.Errorf("encrypt ssn: %w", err)
	}
	err = dbutil.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
      UPDATE employees
      SET first_name = $1, last_name = $2, email = $3, hire_date = $4, salary = $5,
          job_title = $6, division = $7, ssn_enc = $8, updated_at = CURRENT_TIMESTAMP
      WHERE id = $9
    `, emp.FirstName, emp.LastName, emp.Email, emp.HireDate.Format(DateLayout), emp.Salary.String(),
			nullString(emp.JobTitle), nullString(emp.Division), ssnEnc, emp.ID)
		if err != nil {
			return err
		}
		if err := expectOneRow(res); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `UPDATE users SET username = $1 WHERE employee_id = $2`,
			strings.ToLower(strings.TrimSpace(emp.Email)), emp.ID)
		return err
	})
	if err != nil {
		return classifyWriteError(err)
	}
	return nil
}

// classifyWriteError turns unique violations into the domain error naming the
// clashing value. Other conflicts, such as two creates racing for one id, pass
// through wrapped.
func classifyWriteError(err error) error {
	switch {
	case dbutil.IsUniqueViolationOn(err, "employees", "email"):
		return ErrDuplicateEmail
	case dbutil.IsUniqueViolationOn(err, "users", "username"):
		return ErrDuplicateLogin
	case dbutil.IsUniqueViolation(err):
		return fmt.Errorf("write employee: %w", err)
	}
	return err
}

// DeleteEmployee removes the record and any login bound to it.
func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	return dbutil.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE employee_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return expectOneRow(res)
	})
}

// UpdateSalaries applies every line or none of them.
func (s *Store) UpdateSalaries(ctx context.Context, lines []RaiseLine) error {
	if len(lines) == 0 {
		return nil
	}
	return dbutil.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, line := range lines {
			res, err := tx.ExecContext(ctx, `
        UPDATE employees SET salary = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2
      `, line.NewSalary.String(), line.EmployeeID)
			if err != nil {
				return fmt.Errorf("update salary for employee %d: %w", line.EmployeeID, err)
			}
			if err := expectOneRow(res); err != nil {
				return fmt.Errorf("update salary for employee %d: %w", line.EmployeeID, err)
			}
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanEmployee(row rowScanner) (Employee, error) {
	var emp Employee
	var hireDate, salary string
	var jobTitle, division sql.NullString
	var ssnEnc []byte
	if err := row.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &hireDate, &salary, &jobTitle, &division, &ssnEnc); err != nil {
		return Employee{}, err
	}

	parsed, err := parseStoredDate(hireDate)
	if err != nil {
		return Employee{}, fmt.Errorf("employee %d hire date: %w", emp.ID, err)
	}
	emp.HireDate = parsed
	emp.Salary, err = decimal.NewFromString(salary)
	if err != nil {
		return Employee{}, fmt.Errorf("employee %d salary: %w", emp.ID, err)
	}
	if jobTitle.Valid {
		emp.JobTitle = &jobTitle.String
	}
	if division.Valid {
		emp.Division = &division.String
	}
	emp.SSN, err = s.Crypto.DecryptString(ssnEnc)
	if err != nil {
		return Employee{}, fmt.Errorf("employee %d ssn: %w", emp.ID, err)
	}
	return emp, nil
}

// parseStoredDate accepts the plain date Postgres renders for DATE columns
// as well as anything longer that starts with one.
func parseStoredDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	return time.Parse(DateLayout, value)
}

func nullString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func expectOneRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
