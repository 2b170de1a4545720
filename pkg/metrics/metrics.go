package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
// Все методы безопасны для вызова на nil-получателе (метрики выключены)
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbQueryErrors     *prometheus.CounterVec
	dbOpenConnections *prometheus.GaugeVec
	dbInUse           *prometheus.GaugeVec
	dbIdle            *prometheus.GaugeVec
	dbWaitCount       *prometheus.GaugeVec

	cancellationsTotal  *prometheus.CounterVec
	refundsTotal        *prometheus.CounterVec
	refundAmountTotal   *prometheus.CounterVec
	refundOutcomesTotal *prometheus.CounterVec
	slotOperationsTotal *prometheus.CounterVec
	notificationsTotal  *prometheus.CounterVec
}

// New создает и регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики с явным registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),
		dbInUse: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),
		dbIdle: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),
		dbWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),

		cancellationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_cancellations_total",
			Help:        "Booking cancellations by actor type and refund outcome",
			ConstLabels: constLabels,
		}, []string{"actor_type", "refund_initiated"}),
		refundsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "refunds_initiated_total",
			Help:        "Refund records created by refund type",
			ConstLabels: constLabels,
		}, []string{"refund_type"}),
		refundAmountTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "refunds_initiated_amount_total",
			Help:        "Sum of initiated refund amounts",
			ConstLabels: constLabels,
		}, []string{"refund_type"}),
		refundOutcomesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "refunds_processed_total",
			Help:        "Refund processing outcomes",
			ConstLabels: constLabels,
		}, []string{"status"}),
		slotOperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "time_slot_operations_total",
			Help:        "Time slot operations by kind and result",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),
		notificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notification deliveries by channel and result",
			ConstLabels: constLabels,
		}, []string{"channel", "result"}),
	}
}

// RecordHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordDBQuery фиксирует выполнение SQL запроса
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordDBStats обновляет метрики пула соединений
func (m *Metrics) RecordDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues().Set(float64(stats.OpenConnections))
	m.dbInUse.WithLabelValues().Set(float64(stats.InUse))
	m.dbIdle.WithLabelValues().Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues().Set(float64(stats.WaitCount))
}

// RecordCancellation фиксирует успешную отмену бронирования
func (m *Metrics) RecordCancellation(actorType string, refundInitiated bool) {
	if m == nil {
		return
	}
	initiated := "false"
	if refundInitiated {
		initiated = "true"
	}
	m.cancellationsTotal.WithLabelValues(actorType, initiated).Inc()
}

// RecordRefundInitiated фиксирует создание записи о возврате
func (m *Metrics) RecordRefundInitiated(refundType string, amount float64) {
	if m == nil {
		return
	}
	m.refundsTotal.WithLabelValues(refundType).Inc()
	m.refundAmountTotal.WithLabelValues(refundType).Add(amount)
}

// RecordRefundOutcome фиксирует итог обработки возврата
func (m *Metrics) RecordRefundOutcome(status string) {
	if m == nil {
		return
	}
	m.refundOutcomesTotal.WithLabelValues(status).Inc()
}

// RecordSlotOperation фиксирует операцию над временными слотами
func (m *Metrics) RecordSlotOperation(operation, result string) {
	if m == nil {
		return
	}
	m.slotOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordNotification фиксирует попытку доставки уведомления
func (m *Metrics) RecordNotification(channel string, success bool) {
	if m == nil {
		return
	}
	result := "success"
	if !success {
		result = "failure"
	}
	m.notificationsTotal.WithLabelValues(channel, result).Inc()
}
