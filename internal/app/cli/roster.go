package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"ems/internal/domain/employee"
	"ems/internal/platform/config"
	cryptoutil "ems/internal/platform/crypto"
	"ems/internal/platform/db"
)

// loadRoster reads employees from a JSON roster file, or from the configured
// database when path is empty.
func loadRoster(ctx context.Context, path string) ([]employee.Employee, error) {
	if path != "" {
		return readRosterFile(path)
	}

	cfg := config.Load()
	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	conn, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return employee.NewStore(conn, crypto).ListEmployees(ctx)
}

func readRosterFile(path string) ([]employee.Employee, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []employee.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}

	out := make([]employee.Employee, 0, len(records))
	seen := make(map[int64]int, len(records))
	var maxID int64
	for i, rec := range records {
		emp, err := rec.ToEmployee()
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
		if emp.ID > 0 {
			if first, dup := seen[emp.ID]; dup {
				return nil, fmt.Errorf("roster entry %d: id %d already used by entry %d", i, emp.ID, first)
			}
			seen[emp.ID] = i
			maxID = max(maxID, emp.ID)
		}
		out = append(out, emp)
	}

	// Entries without an id are numbered after the highest explicit one.
	for i := range out {
		if out[i].ID <= 0 {
			maxID++
			out[i].ID = maxID
		}
	}
	return out, nil
}
