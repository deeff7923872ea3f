package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/repository"
)

const journalCleanupName = "journal-cleanup"

// JournalCleanup джоба для чистки журнала запросов, каждый день в 03:30 UTC.
// Журнал нужен для квоты (сутки) и аналитики, старше retention не нужен никому
type JournalCleanup struct {
	requests  repository.IRequestRepo
	retention time.Duration
	log       *slog.Logger
}

// NewJournalCleanup создаёт джобу чистки журнала
func NewJournalCleanup(requests repository.IRequestRepo, retention time.Duration, log *slog.Logger) *JournalCleanup {
	return &JournalCleanup{
		requests:  requests,
		retention: retention,
		log:       log,
	}
}

func (j *JournalCleanup) Name() string {
	return journalCleanupName
}

// NextRun вычисляет следующее время запуска
func (j *JournalCleanup) NextRun(now time.Time) time.Time {
	nowUTC := now.UTC()

	next := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 3, 30, 0, 0, time.UTC)
	if next.Before(nowUTC) || next.Equal(nowUTC) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run удаляет записи журнала старше retention
func (j *JournalCleanup) Run(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.retention)

	deleted, err := j.requests.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete old journal rows: %w", err)
	}

	j.log.Info("journal cleanup finished",
		"deleted", deleted,
		"cutoff", cutoff.Format(time.RFC3339),
	)
	return nil
}
