package service

import (
	"context"
	"time"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

// IEphemerisService интерфейс для астрономических расчётов на заданный момент UTC
type IEphemerisService interface {
	// BodyLongitude возвращает геоцентрическую эклиптическую долготу тела в градусах [0, 360)
	BodyLongitude(ctx context.Context, instant time.Time, body domain.Body) (float64, error)
	// BodyLongitudes возвращает долготы всех перечисленных тел
	BodyLongitudes(ctx context.Context, instant time.Time, bodies []domain.Body) (map[domain.Body]float64, error)
	// SiderealTime возвращает видимое гринвичское звёздное время в часах [0, 24)
	SiderealTime(ctx context.Context, instant time.Time) (float64, error)
	// TrueObliquity возвращает истинное наклонение эклиптики в градусах
	TrueObliquity(ctx context.Context, instant time.Time) (float64, error)
}
