package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

const (
	TankFile   = "tank.yaml"
	CameraFile = "camera.yaml"
	ShellFile  = "shell.yaml"
	ArenaFile  = "arena.yaml"
	RoundFile  = "round.yaml"
)

type TankSpec struct {
	Name      string        `yaml:"name"`
	Body      BodySpec      `yaml:"body"`
	Movement  MovementSpec  `yaml:"movement"`
	Health    HealthSpec    `yaml:"health"`
	Shooting  ShootingSpec  `yaml:"shooting"`
	Knockback KnockbackSpec `yaml:"knockback"`
	Engine    EngineSpec    `yaml:"engine"`
	Explosion ExplosionSpec `yaml:"explosion"`
	Audio     []AudioSpec   `yaml:"audio"`
	Players   []PlayerSpec  `yaml:"players"`
}

func LoadTankSpec() (*TankSpec, error) {
	spec, err := LoadSpec[TankSpec](TankFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type BodySpec struct {
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
}

type MovementSpec struct {
	Speed     float64 `yaml:"speed"`
	TurnSpeed float64 `yaml:"turn_speed"`
}

type HealthSpec struct {
	Starting  float64    `yaml:"starting"`
	FullColor *YAMLColor `yaml:"full_color"`
	ZeroColor *YAMLColor `yaml:"zero_color"`
}

type ShootingSpec struct {
	MinLaunchForce float64 `yaml:"min_launch_force"`
	MaxLaunchForce float64 `yaml:"max_launch_force"`
	MaxChargeTime  float64 `yaml:"max_charge_time"`
	FireOffset     float64 `yaml:"fire_offset"`
	FireHeight     float64 `yaml:"fire_height"`
	FirePitch      float64 `yaml:"fire_pitch"`
}

type KnockbackSpec struct {
	Damping float64 `yaml:"damping"`
}

type EngineSpec struct {
	Idling        string  `yaml:"idling"`
	Driving       string  `yaml:"driving"`
	Volume        float64 `yaml:"volume"`
	OriginalPitch float64 `yaml:"original_pitch"`
	PitchRange    float64 `yaml:"pitch_range"`
	Variants      int     `yaml:"variants"`
}

type ExplosionSpec struct {
	Radius   float64    `yaml:"radius"`
	Duration float64    `yaml:"duration"`
	Color    *YAMLColor `yaml:"color"`
}

// PlayerSpec describes one seat at the table.
type PlayerSpec struct {
	Name  string     `yaml:"name"`
	Color *YAMLColor `yaml:"color"`
	Spawn SpawnSpec  `yaml:"spawn"`
}

type SpawnSpec struct {
	X   float64 `yaml:"x"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

type CameraSpec struct {
	Name             string  `yaml:"name"`
	DampTime         float64 `yaml:"damp_time"`
	ScreenEdgeBuffer float64 `yaml:"screen_edge_buffer"`
	MinSize          float64 `yaml:"min_size"`
	Height           float64 `yaml:"height"`
	Pitch            float64 `yaml:"pitch"`
	Yaw              float64 `yaml:"yaw"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ShellSpec struct {
	Name           string        `yaml:"name"`
	Radius         float64       `yaml:"radius"`
	Mass           float64       `yaml:"mass"`
	MaxDamage      float64       `yaml:"max_damage"`
	ExplosionForce float64       `yaml:"explosion_force"`
	BlastRadius    float64       `yaml:"blast_radius"`
	MaxLifetime    float64       `yaml:"max_lifetime"`
	Color          *YAMLColor    `yaml:"color"`
	Explosion      ExplosionSpec `yaml:"explosion"`
	Audio          []AudioSpec   `yaml:"audio"`
}

func LoadShellSpec() (*ShellSpec, error) {
	spec, err := LoadSpec[ShellSpec](ShellFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ArenaSpec struct {
	Name        string     `yaml:"name"`
	Width       float64    `yaml:"width"`
	Depth       float64    `yaml:"depth"`
	GroundColor *YAMLColor `yaml:"ground_color"`
	WallColor   *YAMLColor `yaml:"wall_color"`
	Walls       []WallSpec `yaml:"walls"`
}

type WallSpec struct {
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Height float64 `yaml:"height"`
}

func LoadArenaSpec() (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec](ArenaFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type RoundSpec struct {
	RoundsToWin int     `yaml:"rounds_to_win"`
	StartDelay  float64 `yaml:"start_delay"`
	EndDelay    float64 `yaml:"end_delay"`
}

func LoadRoundSpec() (*RoundSpec, error) {
	spec, err := LoadSpec[RoundSpec](RoundFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type YAMLColor struct {
	color.Color
}

// Or returns the parsed colour, or fallback when the field was absent.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
