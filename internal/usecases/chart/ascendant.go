package chart

import (
	"math"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/pkg/zodiac"
)

const (
	// degPerHour пересчёт звёздного времени из часов в градусы
	degPerHour = 15.0

	// polarLatitudeLimit за этой широтой эклиптика может не пересекать
	// горизонт, и асцендент не определён
	polarLatitudeLimit = 90.0 - 0.01
)

// ascendant считает эклиптическую долготу асцендента.
//
// Асцендент - точка пересечения эклиптики с восточным горизонтом.
// gastHours - гринвичское видимое звёздное время в часах [0, 24),
// obliquityDeg - истинный наклон эклиптики, latitudeDeg/longitudeDeg -
// географические координаты места (восточная долгота положительная).
func ascendant(gastHours, obliquityDeg, latitudeDeg, longitudeDeg float64) (float64, error) {
	if math.Abs(latitudeDeg) > polarLatitudeLimit {
		return 0, domain.NewPolarLatitudeError(latitudeDeg)
	}

	lstDeg := zodiac.Normalize(gastHours*degPerHour + longitudeDeg)

	// Прямое восхождение точки востока отстоит от местного
	// звёздного времени (RA меридиана) на 90° к востоку.
	theta := deg2rad(lstDeg + 90)
	eps := deg2rad(obliquityDeg)
	phi := deg2rad(latitudeDeg)

	ascRad := math.Atan2(
		math.Sin(theta),
		math.Cos(theta)*math.Cos(eps)-math.Tan(phi)*math.Sin(eps),
	)

	return zodiac.Normalize(rad2deg(ascRad)), nil
}

func deg2rad(deg float64) float64 { return deg * math.Pi / 180 }

func rad2deg(rad float64) float64 { return rad * 180 / math.Pi }
