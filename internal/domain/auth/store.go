package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ems/internal/platform/dbutil"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	EmployeeID   *int64
}

func (u User) Viewer() Viewer {
	return Viewer{UserID: u.ID, Username: u.Username, Role: u.Role, EmployeeID: u.EmployeeID}
}

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (User, error) {
	var out User
	var employeeID sql.NullInt64
	err := s.DB.QueryRowContext(ctx, `
    SELECT id, username, password_hash, role, employee_id
    FROM users
    WHERE username = $1
  `, strings.ToLower(strings.TrimSpace(username))).Scan(&out.ID, &out.Username, &out.PasswordHash, &out.Role, &employeeID)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	if employeeID.Valid {
		out.EmployeeID = &employeeID.Int64
	}
	return out, nil
}

func (s *Store) UserExists(ctx context.Context, userID int64) (bool, error) {
	var count int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE id = $1", userID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser stores u with the next free id and returns it.
func (s *Store) CreateUser(ctx context.Context, u User) (int64, error) {
	var id int64
	err := dbutil.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		next, err := dbutil.NextID(ctx, tx, "users")
		if err != nil {
			return err
		}
		id = next
		_, err = tx.ExecContext(ctx, `
      INSERT INTO users (id, username, password_hash, role, employee_id)
      VALUES ($1, $2, $3, $4, $5)
    `, id, strings.ToLower(strings.TrimSpace(u.Username)), u.PasswordHash, u.Role, u.EmployeeID)
		return err
	})
	if dbutil.IsUniqueViolationOn(err, "users", "username") {
		return 0, ErrDuplicateUsername
	}
	return id, err
}
