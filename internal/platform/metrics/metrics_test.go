package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecord(t *testing.T) {
	c := New()
	c.Record(http.MethodGet, "/api/v1/employees", http.StatusOK, 15*time.Millisecond)
	c.Record(http.MethodGet, "/api/v1/employees", http.StatusOK, 5*time.Millisecond)
	c.Record(http.MethodPost, "/api/v1/auth/login", http.StatusTooManyRequests, time.Millisecond)
	c.StatementsGenerated(30)
	c.StatementsGenerated(0)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.requests.WithLabelValues(http.MethodGet, "/api/v1/employees", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.rateLimited))
	assert.Equal(t, float64(30), testutil.ToFloat64(c.statements))
}

func TestCollectorHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.Record(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `ems_http_requests_total{method="GET",route="unmatched",status="404"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.Record(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	c.StatementsGenerated(3)
}
