package chart

import (
	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

// NatalChartRequest тело запроса POST /v1/charts/natal.
// Координаты через указатели: нулевая широта и долгота валидны,
// отличить их от отсутствующего поля иначе нельзя
type NatalChartRequest struct {
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Timezone  string   `json:"timezone"`
}

func (r *NatalChartRequest) toQuery() (domain.BirthQuery, error) {
	if r.Latitude == nil {
		return domain.BirthQuery{}, domain.NewMissingFieldError("latitude")
	}
	if r.Longitude == nil {
		return domain.BirthQuery{}, domain.NewMissingFieldError("longitude")
	}

	return domain.BirthQuery{
		Date:      r.Date,
		Time:      r.Time,
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
		Timezone:  r.Timezone,
	}, nil
}

// PositionsRequest тело запроса POST /v1/data/positions.
// Координаты нужны только для вывода зоны, поэтому обязательна
// либо зона, либо пара широта-долгота
type PositionsRequest struct {
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Timezone  string   `json:"timezone"`
}

func (r *PositionsRequest) toQuery() (domain.BirthQuery, error) {
	if r.Timezone == "" && (r.Latitude == nil || r.Longitude == nil) {
		return domain.BirthQuery{}, domain.NewMissingFieldError("timezone")
	}

	query := domain.BirthQuery{
		Date:     r.Date,
		Time:     r.Time,
		Timezone: r.Timezone,
	}
	if r.Latitude != nil {
		query.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		query.Longitude = *r.Longitude
	}
	return query, nil
}

// Response конверт успешного ответа
type Response struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id,omitempty"`
	Data      any    `json:"data"`
}

// ErrorResponse конверт ошибки: code дублирует HTTP-статус,
// error несёт машинно-читаемые детали
type ErrorResponse struct {
	Status    string       `json:"status"`
	Code      int          `json:"code"`
	Message   string       `json:"message"`
	RequestID string       `json:"request_id,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail вид ошибки и, для ошибок разбора, имя поля запроса
// либо, для ошибок эфемерид, небесное тело
type ErrorDetail struct {
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
	Body  string `json:"body,omitempty"`
}
