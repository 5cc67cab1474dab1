package common

import (
	"image/color"
	"math"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity is the downward acceleration applied to shells in flight.
	Gravity = 9.81
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// MoveTowards moves current toward target by at most maxDelta.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// LerpColor blends a toward b; t is clamped to [0, 1].
func LerpColor(a, b color.Color, t float64) color.NRGBA {
	t = Clamp01(t)
	ca := color.NRGBAModel.Convert(a).(color.NRGBA)
	cb := color.NRGBAModel.Convert(b).(color.NRGBA)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(Lerp(float64(x), float64(y), t)))
	}
	return color.NRGBA{
		R: mix(ca.R, cb.R),
		G: mix(ca.G, cb.G),
		B: mix(ca.B, cb.B),
		A: mix(ca.A, cb.A),
	}
}
