package moment

import (
	"log/slog"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/service"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/timezone"
)

// Service реализует IMomentService: перевод гражданской даты и времени
// рождения в момент UTC через часовой пояс места рождения
type Service struct {
	resolver timezone.IResolver
	log      *slog.Logger
}

// New создаёт сервис резолва момента рождения
func New(resolver timezone.IResolver, log *slog.Logger) service.IMomentService {
	return &Service{
		resolver: resolver,
		log:      log,
	}
}
