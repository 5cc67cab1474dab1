package component

import "image/color"

type Health struct {
	Starting float64
	Current  float64
	Dead     bool

	FullColor color.Color
	ZeroColor color.Color
	BarColor  color.NRGBA
}

var HealthComponent = NewComponent[Health]()

// DamageRequest accumulates damage dealt to an entity during a tick.
type DamageRequest struct {
	Amount float64
}

var DamageRequestComponent = NewComponent[DamageRequest]()
