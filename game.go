package main

import (
	"fmt"
	"image/color"
	"path"
	"strings"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/entity"
	"github.com/Ali-Parandeh/tanks/ecs/system"
	"github.com/Ali-Parandeh/tanks/prefabs"
	"github.com/Ali-Parandeh/tanks/storage"
	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	tps       = 50
	fixedDt   = 1.0 / tps
	botScript = "bot.tengo"
)

type GameOptions struct {
	Players int
	Bots    int
	Debug   bool
	Watch   bool
}

type Game struct {
	world  *ecs.World
	render *system.RenderSystem
	hud    *system.HUD
	audio  *system.AudioSystem
	bots   *system.BotSystem
	pause  *ebitenui.UI

	tankSpec  *prefabs.TankSpec
	shellSpec *prefabs.ShellSpec

	store   *storage.Store
	watcher *prefabs.Watcher

	width, height int
	paused        bool
	quit          bool
	debug         bool
	log           *log.Logger
}

func NewGame(opts GameOptions, store *storage.Store) (*Game, error) {
	tankSpec, err := prefabs.LoadTankSpec()
	if err != nil {
		return nil, fmt.Errorf("load tank spec: %w", err)
	}
	shellSpec, err := prefabs.LoadShellSpec()
	if err != nil {
		return nil, fmt.Errorf("load shell spec: %w", err)
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, fmt.Errorf("load camera spec: %w", err)
	}
	arenaSpec, err := prefabs.LoadArenaSpec()
	if err != nil {
		return nil, fmt.Errorf("load arena spec: %w", err)
	}
	roundSpec, err := prefabs.LoadRoundSpec()
	if err != nil {
		return nil, fmt.Errorf("load round spec: %w", err)
	}

	seats := opts.Players + opts.Bots
	if seats < 2 || seats > len(tankSpec.Players) {
		return nil, fmt.Errorf("need between 2 and %d tanks, got %d", len(tankSpec.Players), seats)
	}

	g := &Game{
		world:     ecs.NewWorld(),
		hud:       system.NewHUD(),
		audio:     system.NewAudioSystem(),
		bots:      system.NewBotSystem(),
		tankSpec:  tankSpec,
		shellSpec: shellSpec,
		store:     store,
		width:     common.BaseWidth,
		height:    common.BaseHeight,
		debug:     opts.Debug,
		log:       log.WithPrefix("game"),
	}
	g.render = system.NewRenderSystem(arenaSpec.GroundColor.Or(color.NRGBA{R: 0xc8, G: 0xa6, B: 0x6e, A: 0xff}))
	g.pause = NewPauseUI(g)

	if opts.Watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir, path.Join(prefabs.Dir, "scripts"))
		if err != nil {
			g.log.Warn("prefab watcher disabled", "err", err)
		} else {
			g.watcher = watcher
		}
	}
	built := false
	defer func() {
		if !built {
			_ = g.Close()
		}
	}()

	if _, err := entity.NewArena(g.world, arenaSpec); err != nil {
		return nil, err
	}
	for seat := 1; seat <= seats; seat++ {
		tankOpts := entity.TankOptions{Player: seat}
		if seat > opts.Players {
			tankOpts.BotScript = botScript
		}
		if _, err := entity.NewTank(g.world, tankSpec, tankOpts); err != nil {
			return nil, err
		}
	}
	if _, err := entity.NewCamera(g.world, cameraSpec, g); err != nil {
		return nil, err
	}
	if _, err := entity.NewRound(g.world, roundSpec); err != nil {
		return nil, err
	}

	var (
		changes func() []string
		errs    func() []error
	)
	if g.watcher != nil {
		changes = g.watcher.Drain
		errs = g.watcher.DrainErrors
	}
	var recorder system.RoundRecorder
	if store != nil {
		recorder = store
	}

	pipeline := ecs.NewScheduler(
		system.NewHotReloadSystem(changes, errs, g.reload),
		system.NewInputSystem(nil),
		g.bots,
		system.NewTankMovementSystem(),
		system.NewEngineAudioSystem(),
		system.NewTankShootingSystem(g.spawnShell),
		system.NewPhysicsSystem(),
		system.NewShellSystem(g.spawnShellExplosion),
		system.NewHealthSystem(g.spawnTankExplosion),
		system.NewRoundSystem(recorder),
		system.NewCameraSystem(),
		system.NewTTLSystem(),
		g.audio,
	)
	g.world.AddSystem(pipeline)
	g.log.Debug("world ready", "tanks", seats, "systems", pipeline.Len())

	built = true
	return g, nil
}

func (g *Game) spawnShell(w *ecs.World, owner ecs.Entity, origin, velocity common.Vec3) (ecs.Entity, error) {
	return entity.NewShell(w, g.shellSpec, owner, origin, velocity)
}

func (g *Game) spawnShellExplosion(w *ecs.World, at common.Vec3) (ecs.Entity, error) {
	return entity.NewShellExplosion(w, g.shellSpec, at, false)
}

func (g *Game) spawnTankExplosion(w *ecs.World, at common.Vec3) (ecs.Entity, error) {
	return entity.NewTankExplosion(w, g.tankSpec, at, false)
}

// reload re-reads a changed prefab and pushes it onto the live entities.
func (g *Game) reload(w *ecs.World, name string) error {
	switch {
	case name == prefabs.TankFile:
		spec, err := prefabs.LoadTankSpec()
		if err != nil {
			return err
		}
		g.tankSpec = spec
		return entity.ApplyTankSpec(w, spec)
	case name == prefabs.CameraFile:
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return err
		}
		return entity.ApplyCameraSpec(w, spec)
	case name == prefabs.ShellFile:
		spec, err := prefabs.LoadShellSpec()
		if err != nil {
			return err
		}
		g.shellSpec = spec
		return nil
	case strings.HasSuffix(name, ".tengo"):
		g.bots.Reload()
		return nil
	default:
		g.log.Debug("no live reload for prefab", "file", name)
		return nil
	}
}

// Aspect reports the current window shape to the camera rig.
func (g *Game) Aspect() float64 {
	if g.height <= 0 {
		return 1
	}
	return float64(g.width) / float64(g.height)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
		g.audio.SetMuted(g.paused)
	}
	if g.paused {
		g.pause.Update()
		// the audio system still runs so muted players stay paused
		g.audio.Update(g.world)
		return nil
	}
	g.world.Update(fixedDt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	g.hud.Draw(g.world, screen)
	if g.debug {
		drawDebug(screen, g.world)
	}
	if g.paused {
		g.pause.Draw(screen)
	}
}

func drawDebug(screen *ebiten.Image, w *ecs.World) {
	msg := fmt.Sprintf("TPS: %.1f  FPS: %.1f  tick: %d  entities: %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), w.Tick(), len(ecs.Entities(w)))
	ebitenutil.DebugPrintAt(screen, msg, 4, screen.Bounds().Dy()-18)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}
