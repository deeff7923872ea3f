package moment

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	// Встроенная база зон, чтобы тесты не зависели от zoneinfo на машине
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

type stubResolver struct {
	zone string
	err  error
}

func (s *stubResolver) Resolve(lat, lon float64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.zone, nil
}

func testService(resolver *stubResolver) *Service {
	return &Service{
		resolver: resolver,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func birthQuery(date, clock, zone string) domain.BirthQuery {
	return domain.BirthQuery{
		Date:      date,
		Time:      clock,
		Latitude:  55.7558,
		Longitude: 37.6173,
		Timezone:  zone,
	}
}

func TestResolveExplicitZone(t *testing.T) {
	svc := testService(&stubResolver{zone: "Etc/GMT"})

	m, err := svc.Resolve(context.Background(), birthQuery("2024-06-15", "12:00", "Europe/Moscow"))
	require.NoError(t, err)

	assert.Equal(t, "Europe/Moscow", m.Timezone)
	assert.True(t, m.UTC.Equal(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, 12, m.Local.Hour())
	assert.Equal(t, 0, m.Local.Minute())
}

func TestResolveWithSeconds(t *testing.T) {
	svc := testService(&stubResolver{zone: "Etc/GMT"})

	m, err := svc.Resolve(context.Background(), birthQuery("2024-01-01", "09:00:30", "Asia/Tokyo"))
	require.NoError(t, err)

	assert.True(t, m.UTC.Equal(time.Date(2024, time.January, 1, 0, 0, 30, 0, time.UTC)))
}

func TestResolveViaCoordinates(t *testing.T) {
	svc := testService(&stubResolver{zone: "Asia/Tokyo"})

	m, err := svc.Resolve(context.Background(), birthQuery("2024-01-01", "09:00", ""))
	require.NoError(t, err)

	assert.Equal(t, "Asia/Tokyo", m.Timezone)
	assert.True(t, m.UTC.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestResolveAutumnFold(t *testing.T) {
	svc := testService(&stubResolver{zone: "Etc/GMT"})

	// 2024-11-03 01:30 в Нью-Йорке случается дважды, берётся первое
	// прохождение стрелок (EDT, UTC-4)
	m, err := svc.Resolve(context.Background(), birthQuery("2024-11-03", "01:30", "America/New_York"))
	require.NoError(t, err)

	assert.True(t, m.UTC.Equal(time.Date(2024, time.November, 3, 5, 30, 0, 0, time.UTC)))
	_, off := m.Local.Zone()
	assert.Equal(t, -4*3600, off)
}

func TestResolveSpringGap(t *testing.T) {
	svc := testService(&stubResolver{zone: "Etc/GMT"})

	// 2024-03-10 02:30 в Нью-Йорке не существовало, стрелки сдвигаются
	// вперёд на час провала: 03:30 EDT
	m, err := svc.Resolve(context.Background(), birthQuery("2024-03-10", "02:30", "America/New_York"))
	require.NoError(t, err)

	assert.True(t, m.UTC.Equal(time.Date(2024, time.March, 10, 7, 30, 0, 0, time.UTC)))
	assert.Equal(t, 3, m.Local.Hour())
	assert.Equal(t, 30, m.Local.Minute())
	_, off := m.Local.Zone()
	assert.Equal(t, -4*3600, off)
}

func TestResolveHalfHourFold(t *testing.T) {
	svc := testService(&stubResolver{zone: "Etc/GMT"})

	// Лорд-Хау переводит часы на полчаса: 2024-04-07 01:45 случается
	// дважды, первое прохождение идёт по летнему смещению +11
	m, err := svc.Resolve(context.Background(), birthQuery("2024-04-07", "01:45", "Australia/Lord_Howe"))
	require.NoError(t, err)

	assert.True(t, m.UTC.Equal(time.Date(2024, time.April, 6, 14, 45, 0, 0, time.UTC)))
}

func TestResolveDeterministic(t *testing.T) {
	svc := testService(&stubResolver{zone: "Etc/GMT"})

	cases := []struct {
		zone  string
		date  string
		clock string
	}{
		{"Asia/Kolkata", "1995-08-20", "06:15"},
		{"America/Sao_Paulo", "1985-01-10", "23:45"},
		{"Pacific/Auckland", "2001-12-25", "00:30"},
	}

	for _, tc := range cases {
		t.Run(tc.zone, func(t *testing.T) {
			q := birthQuery(tc.date, tc.clock, tc.zone)

			first, err := svc.Resolve(context.Background(), q)
			require.NoError(t, err)
			second, err := svc.Resolve(context.Background(), q)
			require.NoError(t, err)

			assert.True(t, first.UTC.Equal(second.UTC))
			// Локальное и UTC представления указывают на один момент
			assert.True(t, first.Local.Equal(first.UTC))
			// Настенные часы сохранены
			assert.Equal(t, tc.date, first.Local.Format("2006-01-02"))
			assert.Equal(t, tc.clock, first.Local.Format("15:04"))
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		query    domain.BirthQuery
		resolver *stubResolver
		kind     domain.ErrorKind
		field    string
	}{
		{
			name:     "missing date",
			query:    birthQuery("", "12:00", "UTC"),
			resolver: &stubResolver{zone: "Etc/GMT"},
			kind:     domain.ErrKindMissingField,
			field:    "date",
		},
		{
			name:     "missing time",
			query:    birthQuery("2024-01-01", "", "UTC"),
			resolver: &stubResolver{zone: "Etc/GMT"},
			kind:     domain.ErrKindMissingField,
			field:    "time",
		},
		{
			name:     "month out of range",
			query:    birthQuery("1990-13-01", "12:00", "UTC"),
			resolver: &stubResolver{zone: "Etc/GMT"},
			kind:     domain.ErrKindParse,
			field:    "date",
		},
		{
			name:     "wrong date format",
			query:    birthQuery("15.06.1990", "12:00", "UTC"),
			resolver: &stubResolver{zone: "Etc/GMT"},
			kind:     domain.ErrKindParse,
			field:    "date",
		},
		{
			name:     "wrong clock format",
			query:    birthQuery("1990-06-15", "7am", "UTC"),
			resolver: &stubResolver{zone: "Etc/GMT"},
			kind:     domain.ErrKindParse,
			field:    "time",
		},
		{
			name:     "hour out of range",
			query:    birthQuery("1990-06-15", "25:00", "UTC"),
			resolver: &stubResolver{zone: "Etc/GMT"},
			kind:     domain.ErrKindParse,
			field:    "time",
		},
		{
			name: "latitude out of range",
			query: domain.BirthQuery{
				Date: "1990-06-15", Time: "12:00",
				Latitude: 91, Longitude: 0, Timezone: "UTC",
			},
			resolver: &stubResolver{zone: "Etc/GMT"},
			kind:     domain.ErrKindParse,
			field:    "latitude",
		},
		{
			name:     "unknown explicit zone",
			query:    birthQuery("1990-06-15", "12:00", "Atlantis/Central"),
			resolver: &stubResolver{zone: "Etc/GMT"},
			kind:     domain.ErrKindTimezoneResolution,
		},
		{
			name:     "resolver failure",
			query:    birthQuery("1990-06-15", "12:00", ""),
			resolver: &stubResolver{err: domain.NewTimezoneResolutionError("no polygon matched", nil)},
			kind:     domain.ErrKindTimezoneResolution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testService(tt.resolver)

			_, err := svc.Resolve(context.Background(), tt.query)
			require.Error(t, err)

			chartErr, ok := domain.AsChartError(err)
			require.True(t, ok, "expected ChartError, got %T", err)
			assert.Equal(t, tt.kind, chartErr.Kind)
			if tt.field != "" {
				assert.Equal(t, tt.field, chartErr.Field)
			}
		})
	}
}
