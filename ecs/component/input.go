package component

// Input stores per-tick control state for a tank, from a keyboard, gamepad,
// or bot script.
type Input struct {
	// Smoothed axes in [-1, 1].
	MoveAxis float64
	TurnAxis float64

	// Raw axes before smoothing.
	RawMove float64
	RawTurn float64

	FireDown bool
	FireHeld bool
	FireUp   bool
}

var InputComponent = NewComponent[Input]()

// BotController hands a tank's Input over to a script.
type BotController struct {
	Script string
}

var BotControllerComponent = NewComponent[BotController]()
