package jobs

import "time"

// Config настройки периодических джоб
type Config struct {
	// Сколько хранить записи журнала запросов
	JournalRetention time.Duration `envconfig:"JOURNAL_RETENTION" default:"2160h"`
}
