package observability

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordRequest(t *testing.T) {
	m := NewMetrics("rentcar")

	m.RecordRequest("/login", "POST", 200, 5*time.Millisecond)
	m.RecordRequest("/login", "POST", 200, 7*time.Millisecond)
	m.RecordRequest("/login", "POST", 401, 3*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("/login", "POST", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("/login", "POST", "401")))
}

func TestMetrics_RecordError(t *testing.T) {
	m := NewMetrics("rentcar")
	m.RecordError("/register", "POST", "DUPLICATE_EMAIL")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorCount.WithLabelValues("/register", "POST", "DUPLICATE_EMAIL")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("rentcar")
	m.RecordRequest("/api/stats", "GET", 200, time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `rentcar_http_requests_total{method="GET",route="/api/stats",status="200"} 1`))
}
