package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	TicketsCreated  *prometheus.CounterVec
	TicketsCalled   *prometheus.CounterVec
	ConflictRetries *prometheus.CounterVec
	NoShowCancelled *prometheus.CounterVec

	serviceName string
}

// New регистрирует метрики в глобальном registry prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном registry (для тестов)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"service", "operation", "status"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUse: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdle: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		TicketsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "turnos_tickets_created_total",
			Help: "Tickets created by registration channel",
		}, []string{"service", "channel", "enqueued"}),

		TicketsCalled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "turnos_tickets_called_total",
			Help: "Tickets dispatched to the counter",
		}, []string{"service", "recall"}),

		ConflictRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "turnos_conflict_retries_total",
			Help: "Transactions retried after a numbering or position conflict",
		}, []string{"service", "operation"}),

		NoShowCancelled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "turnos_no_show_cancelled_total",
			Help: "Called tickets cancelled by the no-show worker",
		}, []string{"service"}),
	}
}

// ServiceName возвращает имя сервиса, используемое в label "service"
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// TicketCreated учитывает созданный талон
func (m *Metrics) TicketCreated(channel string, enqueued bool) {
	if m == nil {
		return
	}
	m.TicketsCreated.WithLabelValues(m.serviceName, channel, boolLabel(enqueued)).Inc()
}

// TicketCalled учитывает вызов талона
func (m *Metrics) TicketCalled(recall bool) {
	if m == nil {
		return
	}
	m.TicketsCalled.WithLabelValues(m.serviceName, boolLabel(recall)).Inc()
}

// ConflictRetry учитывает повтор транзакции после конфликта
func (m *Metrics) ConflictRetry(operation string) {
	if m == nil {
		return
	}
	m.ConflictRetries.WithLabelValues(m.serviceName, operation).Inc()
}

// NoShow учитывает талоны, отмененные по неявке
func (m *Metrics) NoShow(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.NoShowCancelled.WithLabelValues(m.serviceName).Add(float64(count))
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
