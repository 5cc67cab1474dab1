package system

import (
	"fmt"
	"math"
	"strings"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/Ali-Parandeh/tanks/prefabs"
	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
)

const botDispatchScript = `
think(__bot, __state)
`

// BotSystem lets tengo scripts drive tanks tagged with a BotController.
// Each script defines think(bot, state); bot exposes the tank's situation and
// the drive/turn/fire controls, state is a map that persists between ticks.
type BotSystem struct {
	load     func(name string) ([]byte, error)
	compiled map[string]*tengo.Compiled
	bots     map[ecs.Entity]*botRuntime
	failed   map[string]bool
	log      *log.Logger
}

type botRuntime struct {
	script   string
	compiled *tengo.Compiled
	state    *tengo.Map
	out      botOutput
	held     bool
}

type botOutput struct {
	move, turn float64
	fire       bool
}

func NewBotSystem() *BotSystem {
	return &BotSystem{
		load:     prefabs.LoadScript,
		compiled: make(map[string]*tengo.Compiled),
		bots:     make(map[ecs.Entity]*botRuntime),
		failed:   make(map[string]bool),
		log:      log.WithPrefix("bot"),
	}
}

// Reload drops compiled scripts so the next tick picks up edits.
func (s *BotSystem) Reload() {
	s.compiled = make(map[string]*tengo.Compiled)
	s.bots = make(map[ecs.Entity]*botRuntime)
	s.failed = make(map[string]bool)
}

func (s *BotSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for e := range s.bots {
		if !w.IsAlive(e) || !ecs.Has(w, e, component.BotControllerComponent.Kind()) {
			delete(s.bots, e)
		}
	}

	ecs.ForEach4(w,
		component.BotControllerComponent.Kind(),
		component.TankComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, bot *component.BotController, tank *component.Tank, input *component.Input, transform *component.Transform) {
			rt, err := s.runtime(e, bot.Script)
			if err != nil {
				if !s.failed[bot.Script] {
					s.log.Error("load bot script", "script", bot.Script, "err", err)
					s.failed[bot.Script] = true
				}
				*input = component.Input{}
				return
			}

			if !tank.ControlsEnabled || !isActive(w, e) {
				rt.held = false
				*input = component.Input{}
				return
			}

			rt.out = botOutput{}
			api := botAPI(w, e, rt, transform)
			if err := rt.run(api); err != nil {
				s.log.Error("bot script", "tank", e, "err", err)
				*input = component.Input{}
				return
			}

			input.RawMove = rt.out.move
			input.RawTurn = rt.out.turn
			input.MoveAxis = rt.out.move
			input.TurnAxis = rt.out.turn
			input.FireDown = rt.out.fire && !rt.held
			input.FireHeld = rt.out.fire
			input.FireUp = !rt.out.fire && rt.held
			rt.held = rt.out.fire
		})
}

func (s *BotSystem) runtime(e ecs.Entity, script string) (*botRuntime, error) {
	if rt, ok := s.bots[e]; ok && rt.script == script {
		return rt, nil
	}
	if s.failed[script] {
		return nil, fmt.Errorf("script %q failed to load", script)
	}

	base, ok := s.compiled[script]
	if !ok {
		src, err := s.load(script)
		if err != nil {
			return nil, err
		}
		base, err = compileBotScript(src)
		if err != nil {
			return nil, err
		}
		s.compiled[script] = base
	}

	rt := &botRuntime{
		script:   script,
		compiled: base.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.bots[e] = rt
	return rt, nil
}

func compileBotScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + botDispatchScript))
	_ = script.Add("__bot", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func (rt *botRuntime) run(api *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__bot", api); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func botAPI(w *ecs.World, self ecs.Entity, rt *botRuntime, transform *component.Transform) *tengo.ImmutableMap {
	forward := common.Forward(transform.Yaw)
	values := map[string]tengo.Object{
		"x":         &tengo.Float{Value: transform.Position.X},
		"z":         &tengo.Float{Value: transform.Position.Z},
		"yaw":       &tengo.Float{Value: transform.Yaw},
		"forward_x": &tengo.Float{Value: forward.X},
		"forward_z": &tengo.Float{Value: forward.Z},
		"gravity":   &tengo.Float{Value: common.Gravity},
		"charging":  tengo.FalseValue,
	}

	if shoot, ok := ecs.Get(w, self, component.ShootingComponent.Kind()); ok {
		values["charge"] = &tengo.Float{Value: shoot.CurrentLaunchForce}
		values["min_charge"] = &tengo.Float{Value: shoot.MinLaunchForce}
		values["max_charge"] = &tengo.Float{Value: shoot.MaxLaunchForce}
		values["fire_pitch"] = &tengo.Float{Value: mgl64.DegToRad(shoot.FirePitch)}
		if shoot.Charging {
			values["charging"] = tengo.TrueValue
		}
	}
	if health, ok := ecs.Get(w, self, component.HealthComponent.Kind()); ok {
		values["health"] = &tengo.Float{Value: health.Current}
	}

	values["drive"] = &tengo.UserFunction{Name: "drive", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.out.move = axisArg(args)
		return tengo.UndefinedValue, nil
	}}
	values["turn"] = &tengo.UserFunction{Name: "turn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.out.turn = axisArg(args)
		return tengo.UndefinedValue, nil
	}}
	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) > 0 {
			rt.out.fire = !args[0].IsFalsy()
		}
		return tengo.UndefinedValue, nil
	}}
	values["enemy"] = &tengo.UserFunction{Name: "enemy", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pos, dist, ok := nearestEnemy(w, self, transform.Position)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"x":        &tengo.Float{Value: pos.X},
			"z":        &tengo.Float{Value: pos.Z},
			"distance": &tengo.Float{Value: dist},
		}}, nil
	}}
	values["bearing"] = &tengo.UserFunction{Name: "bearing", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, _ := tengo.ToFloat64(args[0])
		z, _ := tengo.ToFloat64(args[1])
		return &tengo.Float{Value: Bearing(transform.Position, transform.Yaw, common.Vec3{X: x, Z: z})}, nil
	}}
	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, a.String())
		}
		log.Debug("bot", "tank", self, "msg", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func axisArg(args []tengo.Object) float64 {
	if len(args) == 0 {
		return 0
	}
	v, ok := tengo.ToFloat64(args[0])
	if !ok || math.IsNaN(v) {
		return 0
	}
	return common.Clamp(v, -1, 1)
}

// Bearing is the signed angle in degrees from a tank's heading to target on
// the ground plane. Positive means the target is to the right.
func Bearing(from common.Vec3, yaw float64, target common.Vec3) float64 {
	d := target.Sub(from).XZ()
	if d.Len() == 0 {
		return 0
	}
	forward := common.Forward(yaw)
	right := common.Vec3{X: math.Cos(yaw), Z: math.Sin(yaw)}
	return math.Atan2(d.Dot(right), d.Dot(forward)) * 180 / math.Pi
}

func nearestEnemy(w *ecs.World, self ecs.Entity, from common.Vec3) (common.Vec3, float64, bool) {
	best := math.Inf(1)
	var pos common.Vec3
	found := false
	ecs.ForEach2(w, component.TankComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Tank, t *component.Transform) {
		if e == self || !isActive(w, e) {
			return
		}
		if d := t.Position.XZ().Dist(from.XZ()); d < best {
			best, pos, found = d, t.Position, true
		}
	})
	return pos, best, found
}
