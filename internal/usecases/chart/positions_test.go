package chart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

func TestBodyPositions(t *testing.T) {
	svc := New(&fakeMoment{moment: j2000Moment()}, j2000Ephemeris(), nil, nil, testLogger())

	positions, err := svc.BodyPositions(context.Background(), greenwichQuery())
	require.NoError(t, err)
	require.Len(t, positions.Planets, len(domain.Bodies))

	sun := positions.Planets[domain.BodySun]
	assert.InDelta(t, 280.37, sun.Longitude, 1e-9)
	assert.Equal(t, "Capricorn", sun.Sign)
	assert.InDelta(t, 10.37, sun.Degree, 1e-9)
	assert.Zero(t, sun.House) // дома без асцендента не считаются

	assert.Equal(t, "UTC", positions.Moment.Timezone)
}

func TestBodyPositionsPolarLatitude(t *testing.T) {
	// позиции не зависят от асцендента и считаются на любой широте
	svc := New(&fakeMoment{moment: j2000Moment()}, j2000Ephemeris(), nil, nil, testLogger())

	query := greenwichQuery()
	query.Latitude = 89.9999

	positions, err := svc.BodyPositions(context.Background(), query)
	require.NoError(t, err)
	require.NotNil(t, positions)
}

func TestBodyPositionsJournalEndpoint(t *testing.T) {
	repo := &fakeRequestRepo{}
	svc := New(&fakeMoment{moment: j2000Moment()}, j2000Ephemeris(), repo, nil, testLogger())

	_, err := svc.BodyPositions(context.Background(), greenwichQuery())
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, domain.EndpointPositions, repo.rows[0].Endpoint)
	assert.Equal(t, domain.RequestStatusSuccess, repo.rows[0].Status)
}

func TestBodyPositionsQuota(t *testing.T) {
	// квота общая для обоих эндпоинтов
	repo := &fakeRequestRepo{dayCount: 5}
	key := &domain.APIKey{ID: uuid.New(), DailyLimit: 5}
	svc := New(&fakeMoment{moment: j2000Moment()}, j2000Ephemeris(), repo, nil, testLogger())

	ctx := domain.ContextWithAPIKey(context.Background(), key)
	_, err := svc.BodyPositions(ctx, greenwichQuery())
	require.Error(t, err)
	assert.Equal(t, domain.ErrKindQuotaExceeded, domain.KindOf(err))

	require.Len(t, repo.txRows, 1)
	assert.Equal(t, domain.EndpointPositions, repo.txRows[0].Endpoint)
}
