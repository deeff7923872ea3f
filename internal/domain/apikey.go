package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// APIKey ключ доступа к API с дневной квотой запросов
type APIKey struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Token      string     `json:"-" db:"token"` // bearer-токен, наружу не отдаём
	Name       string     `json:"name" db:"name"`
	DailyLimit int        `json:"daily_limit" db:"daily_limit"`
	Active     bool       `json:"active" db:"active"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty" db:"last_used_at"`
}

// ChartRequest журнальная запись о запросе расчёта.
// Сама карта не сохраняется - только параметры запроса и исход.
type ChartRequest struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	APIKeyID   *uuid.UUID `json:"api_key_id,omitempty" db:"api_key_id"`
	Endpoint   string     `json:"endpoint" db:"endpoint"`
	BirthDate  string     `json:"birth_date" db:"birth_date"`
	BirthTime  string     `json:"birth_time" db:"birth_time"`
	Latitude   float64    `json:"latitude" db:"latitude"`
	Longitude  float64    `json:"longitude" db:"longitude"`
	Timezone   string     `json:"timezone" db:"timezone"` // резолвнутая зона (пустая при ошибке резолва)
	Status     string     `json:"status" db:"status"`     // success | error
	ErrorKind  string     `json:"error_kind,omitempty" db:"error_kind"`
	DurationMs int64      `json:"duration_ms" db:"duration_ms"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

const (
	RequestStatusSuccess = "success"
	RequestStatusError   = "error"
)

// Endpoint'ы, под которыми запросы учитываются в журнале и квоте
const (
	EndpointNatalChart = "charts/natal"
	EndpointPositions  = "data/positions"
)

type apiKeyCtxKey struct{}

// ContextWithAPIKey кладёт ключ в контекст запроса (делает auth-middleware)
func ContextWithAPIKey(ctx context.Context, key *APIKey) context.Context {
	return context.WithValue(ctx, apiKeyCtxKey{}, key)
}

// APIKeyFromContext достаёт ключ из контекста; nil - запрос без аутентификации
func APIKeyFromContext(ctx context.Context) *APIKey {
	key, ok := ctx.Value(apiKeyCtxKey{}).(*APIKey)
	if !ok {
		return nil
	}
	return key
}

type requestIDCtxKey struct{}

// ContextWithRequestID кладёт серверный request_id в контекст.
// Тот же uuid становится id журнальной записи и возвращается клиенту
func ContextWithRequestID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, id)
}

// RequestIDFromContext достаёт request_id; uuid.Nil, если middleware не отработал
func RequestIDFromContext(ctx context.Context) uuid.UUID {
	id, ok := ctx.Value(requestIDCtxKey{}).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
