package requestRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/persistence"
	ports "github.com/zebulonh89-dotcom/newastro-backend/internal/ports/repository"
)

type requestColumns struct {
	TableName  string
	ID         string
	APIKeyID   string
	Endpoint   string
	BirthDate  string
	BirthTime  string
	Latitude   string
	Longitude  string
	Timezone   string
	Status     string
	ErrorKind  string
	DurationMs string
	CreatedAt  string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns requestColumns
}

// New создаёт новый репозиторий журнала запросов расчёта
func New(db persistence.Persistence, log *slog.Logger) ports.IRequestRepo {
	cols := requestColumns{
		TableName:  "chart_requests",
		ID:         "id",
		APIKeyID:   "api_key_id",
		Endpoint:   "endpoint",
		BirthDate:  "birth_date",
		BirthTime:  "birth_time",
		Latitude:   "latitude",
		Longitude:  "longitude",
		Timezone:   "timezone",
		Status:     "status",
		ErrorKind:  "error_kind",
		DurationMs: "duration_ms",
		CreatedAt:  "created_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.APIKeyID,
		r.columns.Endpoint,
		r.columns.BirthDate,
		r.columns.BirthTime,
		r.columns.Latitude,
		r.columns.Longitude,
		r.columns.Timezone,
		r.columns.Status,
		r.columns.ErrorKind,
		r.columns.DurationMs,
		r.columns.CreatedAt)
}

func (r *Repository) insertQuery() string {
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		r.columns.TableName,
		r.allColumns())
}

// Create пишет журнальную запись
func (r *Repository) Create(ctx context.Context, request *domain.ChartRequest) error {
	err := r.db.Exec(ctx, r.insertQuery(),
		request.ID,
		request.APIKeyID,
		request.Endpoint,
		request.BirthDate,
		request.BirthTime,
		request.Latitude,
		request.Longitude,
		request.Timezone,
		request.Status,
		request.ErrorKind,
		request.DurationMs,
		request.CreatedAt)
	if err != nil {
		r.Log.Error("failed to create chart request",
			"error", err,
			"request_id", request.ID,
			"endpoint", request.Endpoint)
		return fmt.Errorf("failed to create chart request: %w", err)
	}
	r.Log.Debug("chart request created",
		"request_id", request.ID,
		"endpoint", request.Endpoint,
		"status", request.Status)
	return nil
}

// GetByID получает журнальную запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChartRequest, error) {
	var request domain.ChartRequest
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	err := r.db.Get(ctx, &request, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("chart request not found", "request_id", id)
			return nil, fmt.Errorf("chart request not found: %w", err)
		}
		r.Log.Error("failed to get chart request by id",
			"error", err,
			"request_id", id)
		return nil, fmt.Errorf("failed to get chart request by id: %w", err)
	}
	return &request, nil
}

// GetByAPIKeyID получает последние запросы ключа, не больше limit
func (r *Repository) GetByAPIKeyID(ctx context.Context, apiKeyID uuid.UUID, limit int) ([]*domain.ChartRequest, error) {
	var requests []*domain.ChartRequest
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.APIKeyID,
		r.columns.CreatedAt)
	err := r.db.Select(ctx, &requests, query, apiKeyID, limit)
	if err != nil {
		r.Log.Error("failed to get chart requests by api key",
			"error", err,
			"api_key_id", apiKeyID)
		return nil, fmt.Errorf("failed to get chart requests by api key: %w", err)
	}
	return requests, nil
}

// CountForDay считает успешные запросы ключа за календарные сутки UTC.
// Ошибочные запросы и отказы по квоте в счёт не идут.
func (r *Repository) CountForDay(ctx context.Context, apiKeyID uuid.UUID, day time.Time) (int64, error) {
	var count int64
	start, end := dayBounds(day)
	err := r.db.Get(ctx, &count, r.countQuery(), apiKeyID, domain.RequestStatusSuccess, start, end)
	if err != nil {
		r.Log.Error("failed to count chart requests for day",
			"error", err,
			"api_key_id", apiKeyID)
		return 0, fmt.Errorf("failed to count chart requests for day: %w", err)
	}
	return count, nil
}

// DeleteOlderThan удаляет журнальные записи старше cutoff, возвращает количество удалённых
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s < $1`,
		r.columns.TableName,
		r.columns.CreatedAt)
	deleted, err := r.db.ExecWithResult(ctx, query, cutoff)
	if err != nil {
		r.Log.Error("failed to delete old chart requests",
			"error", err,
			"cutoff", cutoff)
		return 0, fmt.Errorf("failed to delete old chart requests: %w", err)
	}
	r.Log.Debug("old chart requests deleted",
		"deleted", deleted,
		"cutoff", cutoff)
	return deleted, nil
}

// BeginTx явно начинает транзакцию
func (r *Repository) BeginTx(ctx context.Context) (persistence.Transaction, error) {
	return r.db.BeginTx(ctx)
}

// WithTransaction выполняет функцию в транзакции с автоматическим commit/rollback
func (r *Repository) WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error {
	return r.db.WithTransaction(ctx, fn)
}

// CreateTx пишет журнальную запись в транзакции
func (r *Repository) CreateTx(ctx context.Context, tx persistence.Transaction, request *domain.ChartRequest) error {
	err := tx.Exec(ctx, r.insertQuery(),
		request.ID,
		request.APIKeyID,
		request.Endpoint,
		request.BirthDate,
		request.BirthTime,
		request.Latitude,
		request.Longitude,
		request.Timezone,
		request.Status,
		request.ErrorKind,
		request.DurationMs,
		request.CreatedAt)
	if err != nil {
		r.Log.Error("failed to create chart request in transaction",
			"error", err,
			"request_id", request.ID,
			"endpoint", request.Endpoint)
		return fmt.Errorf("failed to create chart request in transaction: %w", err)
	}
	return nil
}

// CountForDayTx считает успешные запросы ключа за сутки внутри транзакции.
// Используется проверкой квоты, чтобы счётчик и запись отказа шли одной транзакцией.
func (r *Repository) CountForDayTx(ctx context.Context, tx persistence.Transaction, apiKeyID uuid.UUID, day time.Time) (int64, error) {
	var count int64
	start, end := dayBounds(day)
	err := tx.Get(ctx, &count, r.countQuery(), apiKeyID, domain.RequestStatusSuccess, start, end)
	if err != nil {
		r.Log.Error("failed to count chart requests for day in transaction",
			"error", err,
			"api_key_id", apiKeyID)
		return 0, fmt.Errorf("failed to count chart requests for day in transaction: %w", err)
	}
	return count, nil
}

func (r *Repository) countQuery() string {
	return fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s = $2 AND %s >= $3 AND %s < $4`,
		r.columns.TableName,
		r.columns.APIKeyID,
		r.columns.Status,
		r.columns.CreatedAt,
		r.columns.CreatedAt)
}

// dayBounds возвращает границы календарных суток UTC для момента day
func dayBounds(day time.Time) (time.Time, time.Time) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
