package service

import (
	"context"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

// IMomentService интерфейс для перевода гражданского момента рождения в UTC
type IMomentService interface {
	Resolve(ctx context.Context, query domain.BirthQuery) (domain.ResolvedMoment, error)
}
