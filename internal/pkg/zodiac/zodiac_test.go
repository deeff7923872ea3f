package zodiac

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"inside", 123.45, 123.45},
		{"exactly 360", 360, 0},
		{"above 360", 365.25, 5.25},
		{"several turns", 1085.5, 5.5},
		{"negative", -30, 330},
		{"negative turns", -750, 330},
		{"small negative", -0.25, 359.75},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Normalize(tc.in), 1e-9)
		})
	}

	t.Run("range invariant", func(t *testing.T) {
		for d := -1080.0; d <= 1080.0; d += 0.37 {
			n := Normalize(d)
			require.GreaterOrEqual(t, n, 0.0, "Normalize(%v)", d)
			require.Less(t, n, 360.0, "Normalize(%v)", d)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		for d := -1080.0; d <= 1080.0; d += 0.37 {
			n := Normalize(d)
			require.Equal(t, n, Normalize(n), "Normalize(%v)", d)
		}
	})

	t.Run("float boundary never yields 360", func(t *testing.T) {
		for _, d := range []float64{-1e-16, -1e-13, 360.0, 720.0, math.Nextafter(360, 0), -math.SmallestNonzeroFloat64} {
			n := Normalize(d)
			require.Less(t, n, 360.0, "Normalize(%v)", d)
			require.GreaterOrEqual(t, n, 0.0, "Normalize(%v)", d)
		}
	})
}

func TestSignIndex(t *testing.T) {
	cases := []struct {
		name string
		deg  float64
		want int
	}{
		{"start of Aries", 0, 0},
		{"inside Aries", 29.999, 0},
		{"boundary belongs to Taurus", 30.0, 1},
		{"inside Scorpio", 215.8, 7},
		{"end of Pisces", 359.999, 11},
		{"wraps negative", -10, 11},
		{"wraps above", 390, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SignIndex(tc.deg))
		})
	}

	t.Run("always within table", func(t *testing.T) {
		for d := -720.0; d <= 720.0; d += 0.53 {
			idx := SignIndex(d)
			require.GreaterOrEqual(t, idx, 0)
			require.LessOrEqual(t, idx, 11)
			require.NotEmpty(t, SignName(idx))
		}
	})
}

func TestSignAt(t *testing.T) {
	assert.Equal(t, "Aries", SignAt(15))
	assert.Equal(t, "Taurus", SignAt(30))
	assert.Equal(t, "Capricorn", SignAt(279.6))
	assert.Equal(t, "Pisces", SignAt(-0.001))
}

func TestDegreeInSign(t *testing.T) {
	assert.InDelta(t, 15.5, DegreeInSign(15.5), 1e-9)
	assert.InDelta(t, 0.0, DegreeInSign(30.0), 1e-9)
	assert.InDelta(t, 5.25, DegreeInSign(215.25), 1e-9)
	assert.InDelta(t, 29.75, DegreeInSign(-0.25), 1e-9)

	for d := -720.0; d <= 720.0; d += 0.53 {
		v := DegreeInSign(d)
		require.GreaterOrEqual(t, v, 0.0, "DegreeInSign(%v)", d)
		require.Less(t, v, 30.0, "DegreeInSign(%v)", d)
	}
}

func TestHouse(t *testing.T) {
	t.Run("ascendant sign is always house 1", func(t *testing.T) {
		for asc := 0; asc < SignsCount; asc++ {
			require.Equal(t, 1, House(asc, asc))
		}
	})

	t.Run("negative difference wraps", func(t *testing.T) {
		// тело в овне (0), асцендент в рыбах (11): овен - второй дом
		assert.Equal(t, 2, House(0, 11))
		// тело в рыбах (11), асцендент в овне (0): рыбы - двенадцатый дом
		assert.Equal(t, 12, House(11, 0))
	})

	t.Run("bijection between signs and houses", func(t *testing.T) {
		for asc := 0; asc < SignsCount; asc++ {
			seen := make(map[int]bool, HousesCount)
			for body := 0; body < SignsCount; body++ {
				h := House(body, asc)
				require.GreaterOrEqual(t, h, 1)
				require.LessOrEqual(t, h, 12)
				require.False(t, seen[h], "house %d repeated for asc=%d", h, asc)
				seen[h] = true
			}
			require.Len(t, seen, HousesCount)
		}
	})
}
