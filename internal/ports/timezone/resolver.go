package timezone

// IResolver интерфейс для определения часового пояса по координатам
type IResolver interface {
	// Resolve возвращает имя зоны IANA для точки на поверхности Земли
	Resolve(lat, lon float64) (string, error)
}
