package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	server "github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/primary/http"
	kafkaAdapter "github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/secondary/kafka"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/secondary/meeus"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/zebulonh89-dotcom/newastro-backend/internal/adapters/secondary/storage/s3"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/pkg/logger"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/services/ephemeris"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/services/jobs"
)

// Config собирает настройки всех подсистем. Postgres обязателен, остальные
// внешние сервисы включаются заполнением своих переменных: Redis по
// REDIS_HOST, Kafka по KAFKA_BROKERS, S3 по S3_HOST.
type Config struct {
	Postgres  *pg.Config           `envconfig:"POSTGRES"`
	Log       *logger.Config       `envconfig:"LOG"`
	Server    *server.Config       `envconfig:"APISERVER"`
	Redis     *redisAdapter.Config `envconfig:"REDIS"`
	Kafka     *kafkaAdapter.Config `envconfig:"KAFKA"`
	S3        *s3Adapter.Config    `envconfig:"S3"`
	Meeus     meeus.Config         `envconfig:"EPHEMERIS"`
	Ephemeris ephemeris.Config     `envconfig:"EPHEMERIS"`
	Jobs      jobs.Config          `envconfig:"JOBS"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
