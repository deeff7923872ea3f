package domain

import (
	"errors"
	"fmt"
)

// ErrCacheMiss ключ отсутствует в кэше, вычислить заново
var ErrCacheMiss = errors.New("cache miss")

// ErrorKind машинно-читаемый вид ошибки расчёта карты.
// Все виды терминальны для запроса: ошибки детерминированы входом и не ретраятся.
type ErrorKind string

const (
	// ErrKindParse дата/время/координаты не распарсились или вне диапазона
	ErrKindParse ErrorKind = "parse_error"
	// ErrKindMissingField обязательное поле запроса отсутствует
	ErrKindMissingField ErrorKind = "missing_field"
	// ErrKindTimezoneResolution координаты не резолвятся в таймзону
	ErrKindTimezoneResolution ErrorKind = "timezone_resolution"
	// ErrKindPolarLatitude широта слишком близка к полюсу для формулы асцендента
	ErrKindPolarLatitude ErrorKind = "polar_latitude"
	// ErrKindEphemerisLookup бэкенд эфемерид не смог рассчитать величину
	ErrKindEphemerisLookup ErrorKind = "ephemeris_lookup"
	// ErrKindQuotaExceeded дневная квота API-ключа исчерпана
	ErrKindQuotaExceeded ErrorKind = "quota_exceeded"
)

// ChartError ошибка расчёта карты с достаточным контекстом для исправления запроса:
// какой вид, какое поле запроса или какое тело не рассчиталось
type ChartError struct {
	Kind  ErrorKind
	Field string // поле запроса (parse_error, missing_field)
	Body  Body   // небесное тело (ephemeris_lookup)
	Msg   string
	Err   error
}

func (e *ChartError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s [field=%s]: %s", e.Kind, e.Field, e.Msg)
	case e.Body != "":
		return fmt.Sprintf("%s [body=%s]: %s", e.Kind, e.Body, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

func (e *ChartError) Unwrap() error {
	return e.Err
}

// NewParseError ошибка разбора поля запроса
func NewParseError(field, msg string) *ChartError {
	return &ChartError{Kind: ErrKindParse, Field: field, Msg: msg}
}

// NewMissingFieldError отсутствует обязательное поле запроса
func NewMissingFieldError(field string) *ChartError {
	return &ChartError{Kind: ErrKindMissingField, Field: field, Msg: "required field is missing"}
}

// NewTimezoneResolutionError координаты или идентификатор не резолвятся в зону
func NewTimezoneResolutionError(msg string, err error) *ChartError {
	return &ChartError{Kind: ErrKindTimezoneResolution, Msg: msg, Err: err}
}

// NewPolarLatitudeError широта в полярной зоне, формула асцендента вырождается
func NewPolarLatitudeError(latitude float64) *ChartError {
	return &ChartError{
		Kind:  ErrKindPolarLatitude,
		Field: "latitude",
		Msg:   fmt.Sprintf("latitude %.4f is too close to the pole for ascendant computation", latitude),
	}
}

// NewEphemerisLookupError бэкенд эфемерид не рассчитал величину для тела
func NewEphemerisLookupError(body Body, err error) *ChartError {
	return &ChartError{Kind: ErrKindEphemerisLookup, Body: body, Msg: "ephemeris lookup failed", Err: err}
}

// NewQuotaExceededError дневная квота ключа исчерпана
func NewQuotaExceededError(limit int) *ChartError {
	return &ChartError{Kind: ErrKindQuotaExceeded, Msg: fmt.Sprintf("daily request limit of %d exceeded", limit)}
}

// AsChartError извлекает ChartError из цепочки ошибок
func AsChartError(err error) (*ChartError, bool) {
	var chartErr *ChartError
	if errors.As(err, &chartErr) {
		return chartErr, true
	}
	return nil, false
}

// KindOf возвращает вид ошибки или пустую строку для нетипизированных ошибок
func KindOf(err error) ErrorKind {
	if chartErr, ok := AsChartError(err); ok {
		return chartErr.Kind
	}
	return ""
}
