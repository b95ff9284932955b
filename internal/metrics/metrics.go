// Package metrics описывает метрики Prometheus сервиса.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик, зарегистрированных в собственном реестре.
type Metrics struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	catalogRequests *prometheus.CounterVec
	plansGenerated  prometheus.Counter
	slotsSkipped    prometheus.Counter
}

// New создаёт реестр с метриками рантайма и метриками сервиса.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		catalogRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mealdb_requests_total",
			Help: "Calls to the external recipe catalog by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		plansGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meal_plans_generated_total",
			Help: "Meal plans generated and persisted.",
		}),
		slotsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meal_plan_slots_skipped_total",
			Help: "Meal slots left empty because no recipe could be proposed.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.catalogRequests,
		m.plansGenerated,
		m.slotsSkipped,
	)
	return m
}

// Handler отдаёт метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает реестр, например для проверок в тестах.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP учитывает обработанный HTTP запрос.
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// CatalogRequest учитывает обращение к внешнему каталогу.
func (m *Metrics) CatalogRequest(endpoint, outcome string) {
	m.catalogRequests.WithLabelValues(endpoint, outcome).Inc()
}

// PlanGenerated учитывает сохранённый план и пропущенные слоты.
func (m *Metrics) PlanGenerated(skipped int) {
	m.plansGenerated.Inc()
	m.slotsSkipped.Add(float64(skipped))
}
