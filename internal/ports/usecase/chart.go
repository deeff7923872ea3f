package usecase

import (
	"context"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

// IChartUseCase интерфейс расчёта карт (use case слой)
type IChartUseCase interface {
	// NatalChart считает полную натальную карту: асцендент, позиции планет, дома
	NatalChart(ctx context.Context, query domain.BirthQuery) (*domain.Chart, error)

	// BodyPositions считает только эклиптические позиции планет, без асцендента и домов
	BodyPositions(ctx context.Context, query domain.BirthQuery) (*domain.BodyPositions, error)
}
