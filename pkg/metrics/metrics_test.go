package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })
	// registering twice on the same registry is a programming error
	require.Panics(t, func() { RegisterCollectors(reg) })
}

func TestObserveGeneration(t *testing.T) {
	before := testutil.ToFloat64(Generations.WithLabelValues("success"))
	ObserveGeneration("success", 1500*time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(Generations.WithLabelValues("success")))
}

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/documents", "200"))
	ObserveHTTPRequest("GET", "/api/documents", "200", 10*time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/documents", "200")))
}
