package chart

import (
	"log/slog"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/kafka"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/repository"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/service"
)

// Service бизнес-логика расчёта натальных карт
type Service struct {
	Moment      service.IMomentService
	Ephemeris   service.IEphemerisService
	RequestRepo repository.IRequestRepo
	Producer    kafka.IKafkaProducer
	Log         *slog.Logger
}

// New создаёт новый сервис расчёта карт.
// requestRepo и producer опциональны: без репозитория квоты и журнал
// отключены, без продюсера события об использовании не отправляются.
func New(
	moment service.IMomentService,
	ephemeris service.IEphemerisService,
	requestRepo repository.IRequestRepo,
	producer kafka.IKafkaProducer,
	log *slog.Logger,
) *Service {
	return &Service{
		Moment:      moment,
		Ephemeris:   ephemeris,
		RequestRepo: requestRepo,
		Producer:    producer,
		Log:         log,
	}
}
