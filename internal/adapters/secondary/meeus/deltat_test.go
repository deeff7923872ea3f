package meeus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeltaT(t *testing.T) {
	tests := []struct {
		name  string
		year  float64
		want  float64
		delta float64
	}{
		{name: "epoch 2000", year: 2000.0, want: 63.86, delta: 1e-9},
		{name: "april 1987", year: 1987.2917, want: 55.3, delta: 0.2},
		{name: "april 1992", year: 1992.2917, want: 58.6, delta: 0.2},
		{name: "year 1600", year: 1600.0, want: 120.0, delta: 1e-9},
		{name: "projection 2024", year: 2024.5, want: 74.17, delta: 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, deltaT(tt.year), tt.delta)
		})
	}
}

func TestDeltaTContinuity(t *testing.T) {
	// Стыки кусочной подгонки дают расхождения в десятые доли секунды,
	// скачок больше пары секунд означал бы ошибку в коэффициентах
	boundaries := []float64{-500, 500, 1600, 1700, 1800, 1860, 1900, 1920, 1941, 1961, 1986, 2005, 2050, 2150}

	for _, year := range boundaries {
		lo := deltaT(year - 1e-6)
		hi := deltaT(year + 1e-6)
		assert.InDeltaf(t, lo, hi, 2.0, "discontinuity at year %.0f", year)
	}
}

func TestDecimalYear(t *testing.T) {
	assert.InDelta(t, 2000.0417, decimalYear(time.Date(2000, time.January, 15, 0, 0, 0, 0, time.UTC)), 1e-4)
	assert.InDelta(t, 1987.2917, decimalYear(time.Date(1987, time.April, 10, 0, 0, 0, 0, time.UTC)), 1e-4)
}
