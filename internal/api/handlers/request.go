package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/ulule/limiter/v3"
)

// PathInt64 разбирает положительный числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

// ClientIP адрес клиента с учетом X-Forwarded-For и X-Real-IP
func ClientIP(r *http.Request) *string {
	ip := limiter.GetIP(r, limiter.Options{TrustForwardHeader: true})
	if ip == nil {
		return nil
	}
	s := ip.String()
	return &s
}
