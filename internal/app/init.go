package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	server "github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/primary/http"
	chartController "github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/primary/http/controllers/chart"
	healthcheckController "github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/primary/http/controllers/healthcheck"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/primary/http/middlewares"
	kafkaAdapter "github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/secondary/kafka"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/secondary/meeus"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/secondary/storage/inmemory"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/secondary/storage/s3"
	timezoneAdapter "github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/secondary/timezone"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/pkg/metrics"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/cache"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/kafka"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/repository"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/service"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/storage"
	apikeyRepo "github.com/zebulonh89-dotcom/newastro-backend/internal/repository/apikey"
	requestRepo "github.com/zebulonh89-dotcom/newastro-backend/internal/repository/request"
	ephemerisService "github.com/zebulonh89-dotcom/newastro-backend/internal/services/ephemeris"
	jobScheduler "github.com/zebulonh89-dotcom/newastro-backend/internal/services/jobs"
	momentService "github.com/zebulonh89-dotcom/newastro-backend/internal/services/moment"
	chartUsecase "github.com/zebulonh89-dotcom/newastro-backend/internal/usecases/chart"
)

type Dependencies struct {
	DB            *sqlx.DB
	HTTPServer    *http.Server
	Cache         cache.Cache
	KafkaProducer *kafkaAdapter.Producer
	JobScheduler  *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	db, err := a.initPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	repos := a.initRepositories(db)
	external := a.initExternalServices()
	registry := metrics.NewRegistry()

	ephemeris, err := a.initEphemeris(ctx, external, registry)
	if err != nil {
		return nil, fmt.Errorf("failed to init ephemeris: %w", err)
	}

	resolver, err := timezoneAdapter.New(a.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init timezone resolver: %w", err)
	}
	moment := momentService.New(resolver, a.Log)

	// Типизированный nil в интерфейсе не равен nil, поэтому producer
	// заворачивается в порт только когда он реально создан
	var producer kafka.IKafkaProducer
	if external.Producer != nil {
		producer = external.Producer
	}

	chartUC := chartUsecase.New(moment, ephemeris, repos.Request, producer, a.Log)

	httpServer := a.initHTTP(db, ephemeris, chartUC, registry, repos)
	scheduler := a.initJobScheduler(repos, ephemeris)

	return &Dependencies{
		DB:            db,
		HTTPServer:    httpServer,
		Cache:         external.Cache,
		KafkaProducer: external.Producer,
		JobScheduler:  scheduler,
	}, nil
}

// repositories содержит инициализированные репозитории
type repositories struct {
	Request repository.IRequestRepo
	APIKey  repository.IAPIKeyRepo
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(db *sqlx.DB) *repositories {
	persistenceLayer := pg.NewDB(db)
	return &repositories{
		Request: requestRepo.New(persistenceLayer, a.Log),
		APIKey:  apikeyRepo.New(persistenceLayer, a.Log),
	}
}

// externalServices содержит внешние сервисы (опциональные)
type externalServices struct {
	Cache    cache.Cache
	Producer *kafkaAdapter.Producer
	S3       storage.IS3Client
}

// initExternalServices инициализирует внешние сервисы (Cache, Kafka, S3).
// Подсистема включается заполнением своей адресной переменной: REDIS_HOST,
// KAFKA_BROKERS, S3_HOST.
func (a *App) initExternalServices() *externalServices {
	services := &externalServices{}

	// Кэш позиций: Redis, при выключенном Redis или ошибке подключения - в памяти
	if a.Cfg.Redis != nil && a.Cfg.Redis.Host != "" {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis cache, falling back to in-memory cache", "error", err)
		} else {
			services.Cache = redisAdapter.NewClient(redisClient)
			a.Log.Info("redis cache connected successfully")
		}
	}
	if services.Cache == nil {
		services.Cache = inmemory.NewPositionsCache()
		a.Log.Info("using in-memory positions cache")
	}

	// Kafka producer - опциональный
	if a.Cfg.Kafka != nil && a.Cfg.Kafka.Brokers != "" {
		producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka producer, continuing without usage events", "error", err)
		} else {
			services.Producer = producer
			a.Log.Info("kafka producer connected successfully")
		}
	}

	// S3 с файлами эфемерид - опциональный
	if a.Cfg.S3 != nil && a.Cfg.S3.Host != "" {
		minioClient, err := a.Cfg.S3.NewClient()
		if err != nil {
			a.Log.Warn("failed to init s3 client, ephemeris data must be present locally", "error", err)
		} else {
			services.S3 = s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
			a.Log.Info("s3 client connected successfully")
		}
	}

	return services
}

// initEphemeris поднимает расчётный бэкенд: докачивает недостающие файлы
// VSOP87 из S3 и загружает их в память
func (a *App) initEphemeris(
	ctx context.Context,
	external *externalServices,
	registry *metrics.Registry,
) (service.IEphemerisService, error) {
	if err := ephemerisService.EnsureData(ctx, a.Cfg.Meeus.DataDir, external.S3, a.Log); err != nil {
		return nil, fmt.Errorf("failed to ensure ephemeris data: %w", err)
	}

	backend, err := meeus.New(a.Cfg.Meeus, a.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init ephemeris backend: %w", err)
	}

	return ephemerisService.New(backend, external.Cache, registry, a.Cfg.Ephemeris, a.Log), nil
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	db *sqlx.DB,
	ephemeris service.IEphemerisService,
	chartUC *chartUsecase.Service,
	registry *metrics.Registry,
	repos *repositories,
) *http.Server {
	rateLimiter := middlewares.NewKeyRateLimiter(a.Cfg.Server.RateLimitRPS, a.Cfg.Server.RateLimitBurst, a.Log)

	controllers := []server.Controller{
		healthcheckController.New(db, ephemeris, a.Log),
		chartController.New(
			chartUC,
			registry,
			a.Log,
			middlewares.APIKeyAuth(repos.APIKey, a.Log),
			rateLimiter.Handler(),
		),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, registry, controllers...)
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(repos *repositories, ephemeris service.IEphemerisService) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log)

	journalCleanup := jobScheduler.NewJournalCleanup(repos.Request, a.Cfg.Jobs.JournalRetention, a.Log)
	scheduler.Register(journalCleanup)
	a.Log.Info("journal cleanup job registered")

	positionsWarmup := jobScheduler.NewPositionsWarmup(ephemeris, a.Log)
	scheduler.Register(positionsWarmup)
	a.Log.Info("positions warmup job registered")

	return scheduler
}

// initPostgres инициализирует подключение к PostgreSQL и запускает миграции
func (a *App) initPostgres() (*sqlx.DB, error) {
	db, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(db, a.Log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
