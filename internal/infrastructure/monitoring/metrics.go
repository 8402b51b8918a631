package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gastroguide"

// 生成結果標籤
const (
	OutcomeSuccess      = "success"
	OutcomeEmptyInput   = "empty_input"
	OutcomeInvalidInput = "invalid_input"
	OutcomeUpstreamFail = "upstream_error"
)

// Metrics Prometheus 指標，使用獨立的 registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	generations        *prometheus.CounterVec
	completionDuration *prometheus.HistogramVec
}

// NewMetrics 創建指標並註冊到新的 registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		generations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "recipe",
				Name:      "generations_total",
				Help:      "Total number of recipe generation attempts",
			},
			[]string{"dish_type", "outcome"},
		),
		completionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "recipe",
				Name:      "completion_duration_seconds",
				Help:      "Duration of text completion calls in seconds",
				Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 90},
			},
			[]string{"outcome"},
		),
	}
}

// Registry 回傳底層 registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler /metrics 端點
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordGeneration 記錄一次生成；dishType 在輸入無效時為空
func (m *Metrics) RecordGeneration(dishType, outcome string) {
	if m == nil {
		return
	}
	if dishType == "" {
		dishType = "none"
	}
	m.generations.WithLabelValues(dishType, outcome).Inc()
}

// ObserveCompletion 記錄生成服務呼叫耗時
func (m *Metrics) ObserveCompletion(d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeUpstreamFail
	}
	m.completionDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// Middleware HTTP 請求指標中間件，路徑使用路由模板避免標籤爆量
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
