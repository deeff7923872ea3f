package middlewares

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

type fakeAPIKeyRepo struct {
	key *domain.APIKey

	lastUsedCalls int
	lastUsedID    uuid.UUID
}

func (f *fakeAPIKeyRepo) Create(_ context.Context, _ *domain.APIKey) error { return nil }

func (f *fakeAPIKeyRepo) GetByToken(_ context.Context, token string) (*domain.APIKey, error) {
	if f.key == nil || f.key.Token != token {
		return nil, fmt.Errorf("api key not found")
	}
	return f.key, nil
}

func (f *fakeAPIKeyRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.APIKey, error) {
	return f.key, nil
}

func (f *fakeAPIKeyRepo) UpdateLastUsed(_ context.Context, id uuid.UUID) error {
	f.lastUsedCalls++
	f.lastUsedID = id
	return nil
}

func (f *fakeAPIKeyRepo) Deactivate(_ context.Context, _ uuid.UUID) error { return nil }

func doAuthRequest(t *testing.T, repo *fakeAPIKeyRepo, authHeader string) (*httptest.ResponseRecorder, *domain.APIKey) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen *domain.APIKey
	router := gin.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router.GET("/probe", APIKeyAuth(repo, log), func(c *gin.Context) {
		seen = domain.APIKeyFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec, seen
}

func TestAPIKeyAuth(t *testing.T) {
	activeKey := &domain.APIKey{
		ID:         uuid.New(),
		Token:      "secret-token",
		Name:       "test",
		DailyLimit: 100,
		Active:     true,
	}

	t.Run("missing header", func(t *testing.T) {
		rec, _ := doAuthRequest(t, &fakeAPIKeyRepo{key: activeKey}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec, _ := doAuthRequest(t, &fakeAPIKeyRepo{key: activeKey}, "Basic secret-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		rec, _ := doAuthRequest(t, &fakeAPIKeyRepo{key: activeKey}, "Bearer wrong-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("disabled key", func(t *testing.T) {
		disabled := *activeKey
		disabled.Active = false

		rec, _ := doAuthRequest(t, &fakeAPIKeyRepo{key: &disabled}, "Bearer secret-token")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("active key reaches handler", func(t *testing.T) {
		repo := &fakeAPIKeyRepo{key: activeKey}

		rec, seen := doAuthRequest(t, repo, "Bearer secret-token")
		require.Equal(t, http.StatusOK, rec.Code)

		require.NotNil(t, seen)
		assert.Equal(t, activeKey.ID, seen.ID)

		assert.Equal(t, 1, repo.lastUsedCalls)
		assert.Equal(t, activeKey.ID, repo.lastUsedID)
	})
}
