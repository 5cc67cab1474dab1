package component

// Shooting tracks the charge-and-release fire control of a tank.
type Shooting struct {
	MinLaunchForce float64
	MaxLaunchForce float64
	MaxChargeTime  float64

	ChargeSpeed        float64
	CurrentLaunchForce float64
	Fired              bool
	Charging           bool

	// AimValue drives the aim arrow; it rests at MinLaunchForce.
	AimValue float64

	// Muzzle placement relative to the tank.
	FireOffset float64
	FireHeight float64
	FirePitch  float64 // degrees above horizontal
}

var ShootingComponent = NewComponent[Shooting]()
