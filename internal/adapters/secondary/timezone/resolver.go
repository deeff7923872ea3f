package timezone

import (
	"fmt"
	"log/slog"

	"github.com/ringsaturn/tzf"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

// Resolver определяет часовой пояс IANA по координатам.
// Работает офлайн по встроенным полигонам, океаны покрыты зонами Etc/GMT±N
type Resolver struct {
	finder tzf.F
	log    *slog.Logger
}

// New создаёт резолвер часовых поясов
func New(log *slog.Logger) (*Resolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to build timezone finder: %w", err)
	}

	log.Info("timezone finder initialized", "data_version", finder.DataVersion())

	return &Resolver{
		finder: finder,
		log:    log,
	}, nil
}

// Resolve возвращает имя зоны IANA для точки на поверхности Земли
func (r *Resolver) Resolve(lat, lon float64) (string, error) {
	name := r.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return "", domain.NewTimezoneResolutionError(
			fmt.Sprintf("no timezone found for coordinates (%.4f, %.4f)", lat, lon), nil)
	}
	return name, nil
}
