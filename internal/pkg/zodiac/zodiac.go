package zodiac

import "math"

const (
	fullCircle  = 360.0
	signWidth   = 30.0
	SignsCount  = 12
	HousesCount = 12
)

// Signs названия знаков тропического зодиака, по 30° каждый, начиная с овна
var Signs = [SignsCount]string{
	"Aries", "Taurus", "Gemini", "Cancer",
	"Leo", "Virgo", "Libra", "Scorpio",
	"Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Normalize приводит угол в градусах к диапазону [0, 360).
// Никогда не возвращает 360.0 и отрицательные значения, в том числе
// на границах из-за погрешности float64 (например, для -1e-16).
func Normalize(deg float64) float64 {
	n := math.Mod(deg, fullCircle)
	if n < 0 {
		n += fullCircle
	}
	if n >= fullCircle {
		n -= fullCircle
	}
	return n
}

// SignIndex возвращает индекс знака для эклиптической долготы: 0=Aries ... 11=Pisces.
// Граница знака принадлежит верхнему знаку: ровно 30.0° - это уже Taurus.
func SignIndex(deg float64) int {
	return int(Normalize(deg) / signWidth)
}

// SignName возвращает название знака по индексу [0, 11]
func SignName(idx int) string {
	return Signs[idx]
}

// SignAt возвращает название знака для эклиптической долготы
func SignAt(deg float64) string {
	return Signs[SignIndex(deg)]
}

// DegreeInSign возвращает градус внутри знака, [0, 30)
func DegreeInSign(deg float64) float64 {
	return math.Mod(Normalize(deg), signWidth)
}

// House возвращает номер дома [1, 12] для знака тела относительно знака асцендента
// по whole-sign системе: знак асцендента всегда дом 1, остальные знаки - по кругу.
// Разность индексов может быть отрицательной, поэтому модуль берётся с поправкой знака.
func House(bodySignIdx, ascSignIdx int) int {
	return ((bodySignIdx-ascSignIdx)%HousesCount+HousesCount)%HousesCount + 1
}
