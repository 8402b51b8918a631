package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGeneration(t *testing.T) {
	m := NewMetrics()

	m.RecordGeneration("Main dish", OutcomeSuccess)
	m.RecordGeneration("Main dish", OutcomeSuccess)
	m.RecordGeneration("", OutcomeEmptyInput)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations.WithLabelValues("Main dish", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("none", OutcomeEmptyInput)))
}

func TestObserveCompletion(t *testing.T) {
	m := NewMetrics()

	m.ObserveCompletion(150*time.Millisecond, nil)
	m.ObserveCompletion(2*time.Second, errors.New("boom"))

	assert.Equal(t, 2, testutil.CollectAndCount(m.completionDuration))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordGeneration("Salad", OutcomeSuccess)
		m.ObserveCompletion(time.Second, nil)
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, p := range []string{"/items/1", "/items/2", "/nowhere"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/items/:id", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "gastroguide_http_requests_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
