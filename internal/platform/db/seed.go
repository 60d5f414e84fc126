package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/platform/config"
	cryptoutil "ems/internal/platform/crypto"
)

// Seed creates the bootstrap admin account and, when enabled, the demo
// roster. It is safe to run on every start.
func Seed(ctx context.Context, conn *sql.DB, cfg config.Config, crypto *cryptoutil.Service) error {
	users := auth.NewStore(conn)
	if err := ensureAdminUser(ctx, users, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if cfg.SeedDemoRoster {
		if err := ensureDemoRoster(ctx, employee.NewStore(conn, crypto), cfg.SeedEmployeePassword); err != nil {
			return fmt.Errorf("seed roster: %w", err)
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, users *auth.Store, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	_, err := users.FindUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, auth.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := users.CreateUser(ctx, auth.User{Username: username, PasswordHash: hash, Role: auth.RoleAdmin}); err != nil {
		return err
	}
	slog.Info("seeded admin user", "username", username)
	return nil
}

// ensureDemoRoster loads the demo employees into an empty table. With a
// password configured each employee also gets a login named after their email.
func ensureDemoRoster(ctx context.Context, store *employee.Store, password string) error {
	existing, err := store.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	var hash string
	if strings.TrimSpace(password) != "" {
		if hash, err = auth.HashPassword(password); err != nil {
			return err
		}
	}

	for _, emp := range employee.DemoRoster() {
		var login *employee.Login
		if hash != "" {
			login = &employee.Login{Username: emp.Email, PasswordHash: hash}
		}
		if _, err := store.CreateEmployee(ctx, emp, login); err != nil {
			return fmt.Errorf("employee %d: %w", emp.ID, err)
		}
	}
	slog.Info("seeded demo roster", "employees", len(employee.DemoRoster()), "logins", hash != "")
	return nil
}
