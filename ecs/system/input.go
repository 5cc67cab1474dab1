package system

import (
	"math"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// axisSensitivity and axisGravity are in axis units per second.
	axisSensitivity = 3.0
	axisGravity     = 3.0
	stickDeadzone   = 0.2
)

// RawInput is one player's unsmoothed control state for a tick.
type RawInput struct {
	Move     float64
	Turn     float64
	FireDown bool
	FireHeld bool
	FireUp   bool
}

// InputReader samples the devices bound to a player number.
type InputReader func(player int) RawInput

type keyBinding struct {
	forward, back, left, right, fire ebiten.Key
}

var playerKeys = map[int]keyBinding{
	1: {ebiten.KeyW, ebiten.KeyS, ebiten.KeyA, ebiten.KeyD, ebiten.KeySpace},
	2: {ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyEnter},
	3: {ebiten.KeyI, ebiten.KeyK, ebiten.KeyJ, ebiten.KeyL, ebiten.KeyShiftRight},
	4: {ebiten.KeyNumpad8, ebiten.KeyNumpad5, ebiten.KeyNumpad4, ebiten.KeyNumpad6, ebiten.KeyNumpad0},
}

type InputSystem struct {
	read InputReader
}

// NewInputSystem reads the keyboard and gamepads when read is nil.
func NewInputSystem(read InputReader) *InputSystem {
	if read == nil {
		read = ReadDevices
	}
	return &InputSystem{read: read}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.TankComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, tank *component.Tank, input *component.Input) {
		if ecs.Has(w, e, component.BotControllerComponent.Kind()) {
			return
		}

		raw := i.read(tank.Player)
		input.RawMove = raw.Move
		input.RawTurn = raw.Turn
		input.MoveAxis = smoothAxis(input.MoveAxis, raw.Move, dt)
		input.TurnAxis = smoothAxis(input.TurnAxis, raw.Turn, dt)
		input.FireDown = raw.FireDown
		input.FireHeld = raw.FireHeld
		input.FireUp = raw.FireUp
	})
}

// smoothAxis eases a virtual axis toward the raw value. Reversing direction
// snaps through zero first.
func smoothAxis(current, raw, dt float64) float64 {
	if raw == 0 {
		return common.MoveTowards(current, 0, axisGravity*dt)
	}
	if current != 0 && math.Signbit(current) != math.Signbit(raw) {
		current = 0
	}
	return common.MoveTowards(current, common.Clamp(raw, -1, 1), axisSensitivity*dt)
}

// ReadDevices maps a player to their keyboard block and, when connected,
// the gamepad with the same index.
func ReadDevices(player int) RawInput {
	var in RawInput

	if keys, ok := playerKeys[player]; ok {
		if ebiten.IsKeyPressed(keys.forward) {
			in.Move += 1
		}
		if ebiten.IsKeyPressed(keys.back) {
			in.Move -= 1
		}
		if ebiten.IsKeyPressed(keys.right) {
			in.Turn += 1
		}
		if ebiten.IsKeyPressed(keys.left) {
			in.Turn -= 1
		}
		in.FireDown = inpututil.IsKeyJustPressed(keys.fire)
		in.FireHeld = ebiten.IsKeyPressed(keys.fire)
		in.FireUp = inpututil.IsKeyJustReleased(keys.fire)
	}

	gamepads := ebiten.GamepadIDs()
	if player < 1 || player > len(gamepads) {
		return in
	}
	id := gamepads[player-1]
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return in
	}

	lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	if math.Abs(lx) > stickDeadzone {
		in.Turn = lx
	}
	if math.Abs(ly) > stickDeadzone {
		// stick up is negative
		in.Move = -ly
	}

	fire := ebiten.StandardGamepadButtonRightBottom
	in.FireDown = in.FireDown || inpututil.IsStandardGamepadButtonJustPressed(id, fire)
	in.FireHeld = in.FireHeld || ebiten.IsStandardGamepadButtonPressed(id, fire)
	in.FireUp = in.FireUp || inpututil.IsStandardGamepadButtonJustReleased(id, fire)
	return in
}
