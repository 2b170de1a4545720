package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
)

const (
	rateLimitPrefix   = "rainbowpaws:rate_limit"
	msgTooManyRequest = "слишком много запросов, попробуйте позже"
)

// RateLimit ограничивает частоту изменяющих запросов
// Ключ - ID пользователя, для анонимных запросов - IP адрес
// rate в формате ulule/limiter: "<limit>-<period>", например "60-M"
// При client == nil счетчики хранятся в памяти процесса
func RateLimit(rate string, client *redis.Client, logger Logger) (func(http.Handler) http.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	var store limiter.Store
	if client != nil {
		store, err = redisstore.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: rateLimitPrefix})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}

	mw := stdlib.NewMiddleware(
		limiter.New(store, parsed),
		stdlib.WithKeyGetter(func(r *http.Request) string {
			if userID, ok := GetUserID(r.Context()); ok {
				return "user:" + strconv.FormatInt(userID, 10)
			}
			return "ip:" + limiter.GetIP(r).String()
		}),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("%s %s - Rate limit reached", r.Method, r.URL.Path)
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequest)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("%s %s - Rate limiter store error: %v", r.Method, r.URL.Path, err)
			handlers.RespondInternalError(w)
		}),
	)

	return mw.Handler, nil
}
