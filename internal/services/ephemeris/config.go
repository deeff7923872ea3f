package ephemeris

import "time"

// Config настройки сервиса эфемерид
type Config struct {
	// Позиции на заданный момент неизменны, TTL нужен только чтобы кэш не рос бесконечно
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"720h"`
}
