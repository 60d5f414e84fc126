package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"ems/internal/app/server"
	"ems/internal/platform/config"
)

// TestPostgresJourney runs read-only checks against a real Postgres when
// TEST_DATABASE_URL is set. The database may already hold data, so nothing
// here depends on row counts.
func TestPostgresJourney(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig()
	cfg.DBDriver = config.DriverPostgres
	cfg.DatabaseURL = dsn
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)
	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	client := ts.Client()

	raw(t, client, ts.URL+"/readyz", "", http.StatusOK)
	token := login(t, client, ts.URL, adminUser, adminPassword)

	var periods struct {
		Periods []struct {
			PayDate string `json:"payDate"`
		} `json:"periods"`
	}
	decode(t, request(t, client, http.MethodGet, ts.URL+"/api/v1/payroll/periods?year=2024&month=2", token, nil, nil, http.StatusOK), &periods)
	if len(periods.Periods) != 2 || periods.Periods[1].PayDate != "2024-02-29" {
		t.Fatalf("unexpected periods: %+v", periods.Periods)
	}

	request(t, client, http.MethodGet, ts.URL+"/api/v1/employees", token, nil, nil, http.StatusOK)
	request(t, client, http.MethodGet, ts.URL+"/api/v1/payroll/statements?year=2024&month=2", token, nil, nil, http.StatusOK)
	request(t, client, http.MethodGet, ts.URL+"/api/v1/reports/pay-by-division", token, nil, nil, http.StatusOK)
}
