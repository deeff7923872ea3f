package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/service"
)

const positionsWarmupName = "positions-warmup"

// PositionsWarmup джоба прогрева кэша позиций, каждый день в 00:05 UTC.
// Считает позиции на полночь и полдень текущего дня: эти моменты запрашивают
// интеграции с ежедневными сводками, остальные запросы греют кэш сами
type PositionsWarmup struct {
	ephemeris service.IEphemerisService
	log       *slog.Logger
}

// NewPositionsWarmup создаёт джобу прогрева кэша позиций
func NewPositionsWarmup(ephemeris service.IEphemerisService, log *slog.Logger) *PositionsWarmup {
	return &PositionsWarmup{
		ephemeris: ephemeris,
		log:       log,
	}
}

func (j *PositionsWarmup) Name() string {
	return positionsWarmupName
}

// NextRun вычисляет следующее время запуска
func (j *PositionsWarmup) NextRun(now time.Time) time.Time {
	nowUTC := now.UTC()

	next := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 5, 0, 0, time.UTC)
	if next.Before(nowUTC) || next.Equal(nowUTC) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run прогревает кэш позиций на ключевые моменты текущего дня
func (j *PositionsWarmup) Run(ctx context.Context) error {
	nowUTC := time.Now().UTC()
	midnight := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC)

	for _, instant := range []time.Time{midnight, midnight.Add(12 * time.Hour)} {
		longitudes, err := j.ephemeris.BodyLongitudes(ctx, instant, domain.Bodies)
		if err != nil {
			return fmt.Errorf("failed to warm positions for %s: %w", instant.Format(time.RFC3339), err)
		}

		j.log.Debug("positions warmed",
			"instant", instant.Format(time.RFC3339),
			"bodies", len(longitudes),
		)
	}

	return nil
}
