package apikeyRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/persistence"
	ports "github.com/zebulonh89-dotcom/newastro-backend/internal/ports/repository"
)

type apiKeyColumns struct {
	TableName  string
	ID         string
	Token      string
	Name       string
	DailyLimit string
	Active     string
	CreatedAt  string
	LastUsedAt string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns apiKeyColumns
}

// New создаёт новый репозиторий ключей доступа
func New(db persistence.Persistence, log *slog.Logger) ports.IAPIKeyRepo {
	cols := apiKeyColumns{
		TableName:  "api_keys",
		ID:         "id",
		Token:      "token",
		Name:       "name",
		DailyLimit: "daily_limit",
		Active:     "active",
		CreatedAt:  "created_at",
		LastUsedAt: "last_used_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.Token,
		r.columns.Name,
		r.columns.DailyLimit,
		r.columns.Active,
		r.columns.CreatedAt,
		r.columns.LastUsedAt)
}

// Create создаёт новый ключ доступа
func (r *Repository) Create(ctx context.Context, key *domain.APIKey) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		key.ID,
		key.Token,
		key.Name,
		key.DailyLimit,
		key.Active,
		key.CreatedAt,
		key.LastUsedAt)
	if err != nil {
		r.Log.Error("failed to create api key",
			"error", err,
			"key_id", key.ID,
			"name", key.Name)
		return fmt.Errorf("failed to create api key: %w", err)
	}
	r.Log.Info("api key created",
		"key_id", key.ID,
		"name", key.Name,
		"daily_limit", key.DailyLimit)
	return nil
}

// GetByToken получает ключ по токену. Активность ключа здесь не проверяется,
// это забота аутентификации.
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.APIKey, error) {
	var key domain.APIKey
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.Token)
	err := r.db.Get(ctx, &key, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("api key not found: %w", err)
		}
		r.Log.Error("failed to get api key by token", "error", err)
		return nil, fmt.Errorf("failed to get api key by token: %w", err)
	}
	return &key, nil
}

// GetByID получает ключ по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.APIKey, error) {
	var key domain.APIKey
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	err := r.db.Get(ctx, &key, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("api key not found", "key_id", id)
			return nil, fmt.Errorf("api key not found: %w", err)
		}
		r.Log.Error("failed to get api key by id",
			"error", err,
			"key_id", id)
		return nil, fmt.Errorf("failed to get api key by id: %w", err)
	}
	return &key, nil
}

// UpdateLastUsed отмечает момент последнего обращения по ключу
func (r *Repository) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`,
		r.columns.TableName,
		r.columns.LastUsedAt,
		r.columns.ID)
	if err := r.db.Exec(ctx, query, id); err != nil {
		r.Log.Error("failed to update api key last used",
			"error", err,
			"key_id", id)
		return fmt.Errorf("failed to update api key last used: %w", err)
	}
	return nil
}

// Deactivate отключает ключ
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = false WHERE %s = $1`,
		r.columns.TableName,
		r.columns.Active,
		r.columns.ID)
	affected, err := r.db.ExecWithResult(ctx, query, id)
	if err != nil {
		r.Log.Error("failed to deactivate api key",
			"error", err,
			"key_id", id)
		return fmt.Errorf("failed to deactivate api key: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("api key not found: %s", id)
	}
	r.Log.Info("api key deactivated", "key_id", id)
	return nil
}
