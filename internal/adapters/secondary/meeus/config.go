package meeus

// Config настройки бэкенда эфемерид
type Config struct {
	DataDir string `envconfig:"DATA_DIR" default:"./data/vsop87"` // каталог с файлами VSOP87B.*
}
