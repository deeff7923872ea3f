package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

// IAPIKeyRepo интерфейс для работы с API-ключами
type IAPIKeyRepo interface {
	Create(ctx context.Context, key *domain.APIKey) error
	GetByToken(ctx context.Context, token string) (*domain.APIKey, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.APIKey, error)
	UpdateLastUsed(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}
