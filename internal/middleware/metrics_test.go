package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travel-log/internal/metrics"
	"github.com/pkordes/travel-log/internal/middleware"
)

// TestMetrics_countsByRoutePattern verifies that requests are labelled with the
// chi route pattern, not the raw path, so ids do not explode label cardinality.
func TestMetrics_countsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.NewMetrics())
	r.Get("/metrics-test/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/{id}", "204")
	before := promtest.ToFloat64(counter)

	for _, path := range []string{"/metrics-test/1", "/metrics-test/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, before+2, promtest.ToFloat64(counter))
}

// TestMetrics_implicitOK verifies that a handler which never calls WriteHeader
// is counted as 200.
func TestMetrics_implicitOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.NewMetrics())
	r.Get("/metrics-test-ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test-ok", "200")
	before := promtest.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test-ok", nil))

	assert.Equal(t, before+1, promtest.ToFloat64(counter))
}
