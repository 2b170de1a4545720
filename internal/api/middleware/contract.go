package middleware

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HTTPMetrics интерфейс для записи метрик HTTP запросов
type HTTPMetrics interface {
	RecordHTTPRequest(method, route, status string, duration time.Duration)
}
