package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	m := New()
	m.PendingTransfers.Set(3)
	m.PendingTransferBoxes.Set(42)
	m.HTTPRequests.WithLabelValues("/api/v1/lots", http.MethodGet, "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "fulfillment_transfers_pending 3")
	assert.Contains(t, string(body), "fulfillment_transfers_pending_boxes 42")
	assert.Contains(t, string(body), `fulfillment_http_requests_total{code="200",method="GET",route="/api/v1/lots"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMetrics_InstancesDoNotShareRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = New()
		_ = New()
	})
}
