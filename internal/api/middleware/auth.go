package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

// Заголовки, которые выставляет API gateway после аутентификации
const (
	HeaderUserID     = "X-User-ID"
	HeaderUserRole   = "X-User-Role"
	HeaderProviderID = "X-Provider-ID"
)

const msgInvalidIdentity = "некорректные данные пользователя"

type contextKey string

const actorKey contextKey = "actor"

// Auth извлекает вызывающего из заголовков gateway
// Запрос без X-User-ID пропускается анонимно: публичные маршруты его не требуют,
// защищенные обработчики отвечают 401 сами
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawUserID := r.Header.Get(HeaderUserID)
			if rawUserID == "" {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := parseActor(rawUserID, r.Header.Get(HeaderUserRole), r.Header.Get(HeaderProviderID))
			if err != nil {
				logger.Warn("%s %s - Invalid identity headers: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidIdentity)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func parseActor(rawUserID, rawRole, rawProviderID string) (domain.Actor, error) {
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Actor{}, errInvalidUserID
	}

	role := domain.ActorCustomer
	if rawRole != "" {
		role = domain.ActorType(rawRole)
	}
	// Системный вызывающий не приходит через HTTP
	if !role.IsValid() || role == domain.ActorSystem {
		return domain.Actor{}, errInvalidRole
	}

	actor := domain.Actor{ID: userID, Type: role}

	if role == domain.ActorProvider {
		providerID, err := strconv.ParseInt(rawProviderID, 10, 64)
		if err != nil || providerID <= 0 {
			return domain.Actor{}, errInvalidProviderID
		}
		actor.ProviderID = &providerID
	}

	return actor, nil
}

// WithActor кладет вызывающего в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor возвращает вызывающего из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetUserID возвращает ID вызывающего из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	if !ok {
		return 0, false
	}
	return actor.ID, true
}
