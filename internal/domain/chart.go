package domain

import (
	"fmt"
	"time"
)

// Границы допустимых координат запроса (WGS 84, север и восток положительные)
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// BirthQuery запрос на расчёт карты: локальные дата/время рождения и место.
// Timezone опционален: при пустом значении зона резолвится по координатам.
type BirthQuery struct {
	Date      string  `json:"date"`      // YYYY-MM-DD
	Time      string  `json:"time"`      // HH:MM или HH:MM:SS
	Latitude  float64 `json:"latitude"`  // градусы, [-90, 90]
	Longitude float64 `json:"longitude"` // градусы, [-180, 180], восток положителен
	Timezone  string  `json:"timezone,omitempty"`
}

// Validate проверяет обязательные поля и диапазоны координат
func (q *BirthQuery) Validate() error {
	if q.Date == "" {
		return NewMissingFieldError("date")
	}
	if q.Time == "" {
		return NewMissingFieldError("time")
	}
	if q.Latitude < MinLatitude || q.Latitude > MaxLatitude {
		return NewParseError("latitude", fmt.Sprintf("latitude %.4f is out of range [-90, 90]", q.Latitude))
	}
	if q.Longitude < MinLongitude || q.Longitude > MaxLongitude {
		return NewParseError("longitude", fmt.Sprintf("longitude %.4f is out of range [-180, 180]", q.Longitude))
	}
	return nil
}

// ResolvedMoment момент рождения после разрешения таймзоны.
// UTC детерминированно выводится из локального времени и исторических правил зоны.
type ResolvedMoment struct {
	Timezone string    `json:"timezone"` // IANA идентификатор, например Europe/Moscow
	Local    time.Time `json:"local_datetime"`
	UTC      time.Time `json:"utc_datetime"`
}

// EclipticPosition позиция тела на эклиптике: долгота, знак, градус внутри знака
// и номер дома по whole-sign системе. House проставляется один раз после расчёта асцендента.
type EclipticPosition struct {
	Longitude float64 `json:"longitude"` // [0, 360)
	Sign      string  `json:"sign"`
	Degree    float64 `json:"degree"` // [0, 30)
	House     int     `json:"house,omitempty"` // [1, 12], 0 - дома не считались
}

// AscendantPoint восходящий градус эклиптики. Дома не имеет:
// в whole-sign системе его знак по определению задаёт первый дом.
type AscendantPoint struct {
	Longitude float64 `json:"longitude"` // [0, 360)
	Sign      string  `json:"sign"`
	Degree    float64 `json:"degree"` // [0, 30)
}

// Chart рассчитанная натальная карта. После сборки не мутирует -
// это единственный внешне видимый артефакт запроса.
type Chart struct {
	Ascendant AscendantPoint            `json:"ascendant"`
	Planets   map[Body]EclipticPosition `json:"planets"`
	Moment    ResolvedMoment            `json:"meta"`
}

// BodyPositions позиции тел без асцендента и домов (эндпоинт data/positions)
type BodyPositions struct {
	Planets map[Body]EclipticPosition `json:"planets"`
	Moment  ResolvedMoment            `json:"meta"`
}
