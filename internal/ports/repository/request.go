package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/persistence"
)

// IRequestRepo интерфейс для журнала запросов расчёта
type IRequestRepo interface {
	Create(ctx context.Context, request *domain.ChartRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ChartRequest, error)
	GetByAPIKeyID(ctx context.Context, apiKeyID uuid.UUID, limit int) ([]*domain.ChartRequest, error)
	CountForDay(ctx context.Context, apiKeyID uuid.UUID, day time.Time) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	BeginTx(ctx context.Context) (persistence.Transaction, error)
	WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error

	// Транзакционные методы
	CreateTx(ctx context.Context, tx persistence.Transaction, request *domain.ChartRequest) error
	CountForDayTx(ctx context.Context, tx persistence.Transaction, apiKeyID uuid.UUID, day time.Time) (int64, error)
}
