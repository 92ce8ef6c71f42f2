// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("POST", "/detect", 200)
	m.ObserveRequest("POST", "/detect", 200)
	m.ObserveRequest("GET", "/health", 200)
	m.ObserveRequest("POST", "/detect", 401)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/detect", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/detect", "401")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.HTTPRequestsTotal))
}

func TestObserveDetection(t *testing.T) {
	m := New()

	m.ObserveDetection("HUMAN", 20*time.Millisecond)
	m.ObserveDetection("AI_GENERATED", 300*time.Millisecond)
	m.ObserveDetection("HUMAN", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DetectionsTotal.WithLabelValues("HUMAN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DetectionsTotal.WithLabelValues("AI_GENERATED")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.DetectDuration))
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveRequest("GET", "/", 200)

	assert.Equal(t, 0, testutil.CollectAndCount(b.HTTPRequestsTotal))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/health", 200)
	m.ObserveDetection("HUMAN", 50*time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `audspoof_http_requests_total{method="GET",path="/health",status="200"} 1`)
	assert.Contains(t, string(body), `audspoof_detections_total{classification="HUMAN"} 1`)
	assert.Contains(t, string(body), "audspoof_detect_duration_seconds_bucket")
	assert.Contains(t, string(body), "go_goroutines")
}
