package chart

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/primary/http/middlewares"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

type fakeChartUseCase struct {
	chart     *domain.Chart
	positions *domain.BodyPositions
	err       error

	lastQuery domain.BirthQuery
	calls     int
}

func (f *fakeChartUseCase) NatalChart(_ context.Context, query domain.BirthQuery) (*domain.Chart, error) {
	f.calls++
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.chart, nil
}

func (f *fakeChartUseCase) BodyPositions(_ context.Context, query domain.BirthQuery) (*domain.BodyPositions, error) {
	f.calls++
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.positions, nil
}

func testRouter(uc *fakeChartUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middlewares.RequestID())

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	New(uc, nil, log).RegisterRoutes(router)

	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func testChart() *domain.Chart {
	return &domain.Chart{
		Ascendant: domain.AscendantPoint{Longitude: 11.38, Sign: "Aries", Degree: 11.38},
		Planets: map[domain.Body]domain.EclipticPosition{
			domain.BodySun: {Longitude: 280.37, Sign: "Capricorn", Degree: 10.37, House: 10},
		},
		Moment: domain.ResolvedMoment{Timezone: "UTC"},
	}
}

func TestNatalChartEndpoint(t *testing.T) {
	uc := &fakeChartUseCase{chart: testChart()}
	router := testRouter(uc)

	rec := postJSON(router, "/v1/charts/natal",
		`{"date":"2000-01-01","time":"12:00","latitude":0,"longitude":0,"timezone":"UTC"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status    string `json:"status"`
		RequestID string `json:"request_id"`
		Data      struct {
			Ascendant domain.AscendantPoint                     `json:"ascendant"`
			Planets   map[domain.Body]domain.EclipticPosition   `json:"planets"`
			Meta      domain.ResolvedMoment                     `json:"meta"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Aries", resp.Data.Ascendant.Sign)
	assert.Equal(t, 10, resp.Data.Planets[domain.BodySun].House)
	assert.Equal(t, "UTC", resp.Data.Meta.Timezone)

	// request_id из конверта совпадает с заголовком ответа
	require.NotEmpty(t, resp.RequestID)
	assert.Equal(t, rec.Header().Get(middlewares.RequestIDHeader), resp.RequestID)

	// Нулевые координаты дошли до use case как валидные значения
	assert.Equal(t, 0.0, uc.lastQuery.Latitude)
	assert.Equal(t, 0.0, uc.lastQuery.Longitude)
}

func TestNatalChartErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		usecaseErr error
		wantStatus int
		wantKind   string
		wantField  string
		wantCalls  int
	}{
		{
			name:       "malformed json",
			body:       `{"date":`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "parse_error",
		},
		{
			name:       "missing latitude",
			body:       `{"date":"2000-01-01","time":"12:00","longitude":37.62,"timezone":"Europe/Moscow"}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "missing_field",
			wantField:  "latitude",
		},
		{
			name:       "missing longitude",
			body:       `{"date":"2000-01-01","time":"12:00","latitude":55.75,"timezone":"Europe/Moscow"}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "missing_field",
			wantField:  "longitude",
		},
		{
			name:       "polar latitude",
			body:       `{"date":"2000-01-01","time":"12:00","latitude":89.9999,"longitude":0,"timezone":"UTC"}`,
			usecaseErr: domain.NewPolarLatitudeError(89.9999),
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "polar_latitude",
			wantField:  "latitude",
			wantCalls:  1,
		},
		{
			name:       "timezone resolution",
			body:       `{"date":"2000-01-01","time":"12:00","latitude":0,"longitude":0,"timezone":"Mars/Olympus"}`,
			usecaseErr: domain.NewTimezoneResolutionError(`unknown timezone "Mars/Olympus"`, nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "timezone_resolution",
			wantCalls:  1,
		},
		{
			name:       "quota exceeded",
			body:       `{"date":"2000-01-01","time":"12:00","latitude":0,"longitude":0,"timezone":"UTC"}`,
			usecaseErr: domain.NewQuotaExceededError(100),
			wantStatus: http.StatusTooManyRequests,
			wantKind:   "quota_exceeded",
			wantCalls:  1,
		},
		{
			name:       "ephemeris failure",
			body:       `{"date":"2000-01-01","time":"12:00","latitude":0,"longitude":0,"timezone":"UTC"}`,
			usecaseErr: domain.NewEphemerisLookupError(domain.BodyMars, io.ErrUnexpectedEOF),
			wantStatus: http.StatusInternalServerError,
			wantKind:   "ephemeris_lookup",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeChartUseCase{err: tt.usecaseErr}
			router := testRouter(uc)

			rec := postJSON(router, "/v1/charts/natal", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.NotEmpty(t, resp.Message)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantKind, resp.Error.Kind)
			assert.Equal(t, tt.wantField, resp.Error.Field)

			// Ошибки разбора не должны доходить до use case
			assert.Equal(t, tt.wantCalls, uc.calls)
		})
	}
}

func TestPositionsEndpoint(t *testing.T) {
	uc := &fakeChartUseCase{
		positions: &domain.BodyPositions{
			Planets: map[domain.Body]domain.EclipticPosition{
				domain.BodySun: {Longitude: 280.37, Sign: "Capricorn", Degree: 10.37},
			},
			Moment: domain.ResolvedMoment{Timezone: "UTC"},
		},
	}
	router := testRouter(uc)

	rec := postJSON(router, "/v1/data/positions",
		`{"date":"2000-01-01","time":"12:00","timezone":"UTC"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Planets map[domain.Body]domain.EclipticPosition `json:"planets"`
			Meta    domain.ResolvedMoment                   `json:"meta"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Capricorn", resp.Data.Planets[domain.BodySun].Sign)

	// Дома не считаются, в JSON поле house опускается
	assert.NotContains(t, rec.Body.String(), `"house"`)
}

func TestPositionsRequireZoneOrCoordinates(t *testing.T) {
	t.Run("neither zone nor coordinates", func(t *testing.T) {
		uc := &fakeChartUseCase{}
		router := testRouter(uc)

		rec := postJSON(router, "/v1/data/positions", `{"date":"2000-01-01","time":"12:00"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "missing_field", resp.Error.Kind)
		assert.Equal(t, "timezone", resp.Error.Field)
		assert.Zero(t, uc.calls)
	})

	t.Run("coordinates without zone", func(t *testing.T) {
		uc := &fakeChartUseCase{positions: &domain.BodyPositions{}}
		router := testRouter(uc)

		rec := postJSON(router, "/v1/data/positions",
			`{"date":"2000-01-01","time":"12:00","latitude":55.75,"longitude":37.62}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 55.75, uc.lastQuery.Latitude)
	})
}
