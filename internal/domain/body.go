package domain

// Body небесное тело, отслеживаемое в карте
type Body string

const (
	BodySun     Body = "Sun"
	BodyMoon    Body = "Moon"
	BodyMercury Body = "Mercury"
	BodyVenus   Body = "Venus"
	BodyMars    Body = "Mars"
	BodyJupiter Body = "Jupiter"
	BodySaturn  Body = "Saturn"
)

// Bodies канонический порядок тел карты: светила, затем классические планеты.
// Порядок используется для детерминированных ответов и прогрева кэша.
var Bodies = []Body{
	BodySun,
	BodyMoon,
	BodyMercury,
	BodyVenus,
	BodyMars,
	BodyJupiter,
	BodySaturn,
}

// IsValid проверяет, что тело входит в отслеживаемый набор
func (b Body) IsValid() bool {
	for _, known := range Bodies {
		if b == known {
			return true
		}
	}
	return false
}

func (b Body) String() string {
	return string(b)
}
