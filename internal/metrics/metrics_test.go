package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "/api/ads/:id", EndpointLabel("/api/ads/5f1c"))
	assert.Equal(t, "/api/ads/", EndpointLabel("/api/ads/"))
	assert.Equal(t, "/api/ads", EndpointLabel("/api/ads"))
	assert.Equal(t, "/api/login", EndpointLabel("/api/login"))
}

func backendCount(t *testing.T, method, endpoint, status string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, BackendRequests.WithLabelValues(method, endpoint, status).Write(&m))
	return m.GetCounter().GetValue()
}

func TestTrackBackendCall(t *testing.T) {
	before := backendCount(t, "GET", "/api/metrics-test", "200")
	done := TrackBackendCall("GET", "/api/metrics-test")
	done("200")
	assert.Equal(t, before+1, backendCount(t, "GET", "/api/metrics-test", "200"))
}
