package system

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	healthBarW      = 48.0
	healthBarH      = 6.0
	healthBarMargin = 10.0
	aimArrowMax     = 3.0 // world units at full charge
)

var (
	healthBarBack = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xc0}
	aimArrowColor = color.NRGBA{R: 0xff, G: 0xd0, B: 0x40, A: 0xff}
	shadowColor   = color.NRGBA{A: 0x60}
)

// RenderSystem draws the arena through the first camera's rig.
type RenderSystem struct {
	Background color.Color

	whiteImage *ebiten.Image
	vertices   []ebiten.Vertex
	indices    []uint16
}

func NewRenderSystem(background color.Color) *RenderSystem {
	return &RenderSystem{Background: background}
}

// view bundles a camera with the target surface.
type view struct {
	cam  *component.Camera
	w, h float64
}

func (v view) project(p common.Vec3) (float32, float32) {
	x, y := v.cam.Rig.ToScreen(&v.cam.State, p, v.w, v.h)
	return float32(x), float32(y)
}

func (v view) scale() float64 {
	return v.cam.Rig.PixelsPerUnit(&v.cam.State, v.h)
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.Background != nil {
		screen.Fill(r.Background)
	}

	camEnt, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, camEnt, component.CameraComponent.Kind())
	if !ok || cam.Rig == nil {
		return
	}
	b := screen.Bounds()
	v := view{cam: cam, w: float64(b.Dx()), h: float64(b.Dy())}

	r.drawWalls(w, screen, v)
	r.drawTanks(w, screen, v)
	r.drawShells(w, screen, v)
	r.drawExplosions(w, screen, v)
}

func (r *RenderSystem) drawWalls(w *ecs.World, screen *ebiten.Image, v view) {
	ecs.ForEach2(w, component.WallComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, wall *component.Wall, t *component.Transform) {
		hw, hd := wall.Width/2, wall.Depth/2
		p := t.Position
		r.fillQuad(screen, v, [4]common.Vec3{
			{X: p.X - hw, Z: p.Z - hd},
			{X: p.X + hw, Z: p.Z - hd},
			{X: p.X + hw, Z: p.Z + hd},
			{X: p.X - hw, Z: p.Z + hd},
		}, wall.Color)
	})
}

func (r *RenderSystem) drawTanks(w *ecs.World, screen *ebiten.Image, v view) {
	tanks := w.Query(component.TankComponent.Kind(), component.TransformComponent.Kind())
	sort.Slice(tanks, func(i, j int) bool { return uint64(tanks[i]) < uint64(tanks[j]) })

	for _, e := range tanks {
		if !isActive(w, e) {
			continue
		}
		tank, _ := ecs.Get(w, e, component.TankComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		width, length := 1.6, 2.2
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Width > 0 && body.Length > 0 {
			width, length = body.Width, body.Length
		}

		forward := common.Forward(t.Yaw)
		right := common.Vec3{X: math.Cos(t.Yaw), Z: math.Sin(t.Yaw)}
		corner := func(fx, rx float64) common.Vec3 {
			return t.Position.Add(forward.Scale(fx * length / 2)).Add(right.Scale(rx * width / 2))
		}

		body := tank.Color
		if body == nil {
			body = color.White
		}
		r.fillQuad(screen, v, [4]common.Vec3{corner(-1, -1), corner(-1, 1), corner(1, 1), corner(1, -1)}, body)

		turret := common.LerpColor(body, color.Black, 0.35)
		cx, cy := v.project(t.Position)
		scale := v.scale()
		vector.DrawFilledCircle(screen, cx, cy, float32(width*0.3*scale), turret, true)
		mx, my := v.project(t.Position.Add(forward.Scale(length * 0.6)))
		vector.StrokeLine(screen, cx, cy, mx, my, float32(math.Max(2, width*0.15*scale)), turret, true)

		if shoot, ok := ecs.Get(w, e, component.ShootingComponent.Kind()); ok {
			r.drawAimArrow(screen, v, t, shoot)
		}
		if health, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			r.drawHealthBar(screen, cx, cy-float32(math.Hypot(width, length)/2*scale)-healthBarMargin, health)
		}
	}
}

func (r *RenderSystem) drawAimArrow(screen *ebiten.Image, v view, t *component.Transform, shoot *component.Shooting) {
	span := shoot.MaxLaunchForce - shoot.MinLaunchForce
	if span <= 0 || shoot.AimValue <= shoot.MinLaunchForce {
		return
	}
	frac := common.Clamp01((shoot.AimValue - shoot.MinLaunchForce) / span)

	forward := common.Forward(t.Yaw)
	start := t.Position.Add(forward.Scale(shoot.FireOffset))
	end := start.Add(forward.Scale(aimArrowMax * frac))
	sx, sy := v.project(start)
	ex, ey := v.project(end)
	vector.StrokeLine(screen, sx, sy, ex, ey, 3, aimArrowColor, true)
	vector.DrawFilledCircle(screen, ex, ey, 4, aimArrowColor, true)
}

func (r *RenderSystem) drawHealthBar(screen *ebiten.Image, cx, top float32, health *component.Health) {
	x := cx - healthBarW/2
	y := top - healthBarH
	vector.FillRect(screen, x, y, healthBarW, healthBarH, healthBarBack, false)

	frac := 0.0
	if health.Starting > 0 {
		frac = common.Clamp01(health.Current / health.Starting)
	}
	if frac > 0 {
		vector.FillRect(screen, x, y, float32(healthBarW*frac), healthBarH, health.BarColor, false)
	}
}

func (r *RenderSystem) drawShells(w *ecs.World, screen *ebiten.Image, v view) {
	ecs.ForEach2(w, component.ShellComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, shell *component.Shell, t *component.Transform) {
		scale := v.scale()
		ground := t.Position
		ground.Y = 0
		gx, gy := v.project(ground)
		vector.DrawFilledCircle(screen, gx, gy, float32(math.Max(2, shell.Radius*scale)), shadowColor, true)

		// grow with height so the arc reads from straight above
		radius := math.Max(2, shell.Radius*scale*(1+t.Position.Y*0.15))
		sx, sy := v.project(t.Position)
		vector.DrawFilledCircle(screen, sx, sy, float32(radius), color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}, true)
	})
}

func (r *RenderSystem) drawExplosions(w *ecs.World, screen *ebiten.Image, v view) {
	ecs.ForEach2(w, component.ExplosionComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, ex *component.Explosion, t *component.Transform) {
		progress := 1.0
		if ex.Duration > 0 {
			progress = common.Clamp01(ex.Elapsed / ex.Duration)
		}
		base := ex.Color
		if base == nil {
			base = color.NRGBA{R: 0xff, G: 0x80, B: 0x20, A: 0xff}
		}
		c := common.LerpColor(base, color.NRGBA{R: 0x40, G: 0x40, B: 0x40}, progress)
		x, y := v.project(t.Position)
		radius := ex.Radius * v.scale() * (0.3 + 0.7*math.Sqrt(progress))
		vector.DrawFilledCircle(screen, x, y, float32(radius), c, true)
	})
}

// fillQuad fills a convex quad given in world space.
func (r *RenderSystem) fillQuad(screen *ebiten.Image, v view, pts [4]common.Vec3, clr color.Color) {
	if r.whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	cr, cg, cb, ca := clr.RGBA()
	r.vertices = r.vertices[:0]
	for _, p := range pts {
		x, y := v.project(p)
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX:   x,
			DstY:   y,
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(cr) / 0xffff,
			ColorG: float32(cg) / 0xffff,
			ColorB: float32(cb) / 0xffff,
			ColorA: float32(ca) / 0xffff,
		})
	}
	r.indices = append(r.indices[:0], 0, 1, 2, 0, 2, 3)

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	screen.DrawTriangles(r.vertices, r.indices, r.whiteImage, op)
}
