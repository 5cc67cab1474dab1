package system

import (
	"math"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
)

const (
	collisionTypeTank cp.CollisionType = iota + 1
	collisionTypeShell
	collisionTypeWall
)

// Chipmunk's X/Y plane is the world's X/Z ground plane.
func toCP(v common.Vec3) cp.Vector   { return cp.Vector{X: v.X, Y: v.Z} }
func fromCP(v cp.Vector) common.Vec3 { return common.Vec3{X: v.X, Z: v.Y} }

// PhysicsSystem owns the Chipmunk space. Tanks are driven by velocity and
// pushed apart by contacts, shells are sensors that report ShellImpact, and
// walls are static boxes.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	bodies map[ecs.Entity]*bodyInfo
	shapes map[*cp.Shape]ecs.Entity

	// world is only valid during Update, for collision callbacks.
	world *ecs.World
	log   *log.Logger
}

type bodyInfo struct {
	body    *cp.Body
	shape   *cp.Shape
	kind    component.BodyKind
	static  bool
	inSpace bool
	// lastPos is what the previous step wrote to the transform. Any other
	// value means something teleported the entity.
	lastPos common.Vec3
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:  newSpace(),
		bodies: make(map[ecs.Entity]*bodyInfo),
		shapes: make(map[*cp.Shape]ecs.Entity),
		log:    log.WithPrefix("physics"),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	dt := w.DeltaTime()
	if dt <= 0 {
		return
	}

	ps.world = w
	defer func() { ps.world = nil }()

	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.applyVelocities(w)

	ps.space.Step(dt)

	ps.syncTransforms(w)
	ps.decayKnockback(w, dt)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	for _, other := range []cp.CollisionType{collisionTypeTank, collisionTypeWall} {
		handler := ps.space.NewCollisionHandler(collisionTypeShell, other)
		handler.UserData = ps
		handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil {
				return true
			}
			// Shapes come back in handler order, shell first.
			a, b := arb.Shapes()
			shellEnt, okA := sys.shapes[a]
			otherEnt, okB := sys.shapes[b]
			if !okA || !okB {
				return true
			}
			sys.recordImpact(shellEnt, otherEnt)
			return true
		}
	}

	ps.handlersReady = true
}

// recordImpact marks a shell as having struck other, if the shell is low
// enough to touch it and other is not the tank that fired it.
func (ps *PhysicsSystem) recordImpact(shellEnt, other ecs.Entity) {
	w := ps.world
	if w == nil {
		return
	}
	shell, ok := ecs.Get(w, shellEnt, component.ShellComponent.Kind())
	if !ok || shell.Exploded || shell.Owner == uint64(other) {
		return
	}
	if ecs.Has(w, shellEnt, component.ShellImpactComponent.Kind()) {
		return
	}
	if !isActive(w, other) {
		return
	}
	transform, ok := ecs.Get(w, shellEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if body, ok := ecs.Get(w, other, component.PhysicsBodyComponent.Kind()); ok && body.Height > 0 {
		if transform.Position.Y-shell.Radius > body.Height {
			return
		}
	}
	_ = ecs.Add(w, shellEnt, component.ShellImpactComponent.Kind(), &component.ShellImpact{Other: uint64(other)})
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.bodies[e]
		if info == nil {
			info = ps.createBodyInfo(e, transform, bodyComp)
			if info == nil {
				continue
			}
			ps.bodies[e] = info
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
		}

		active := isActive(w, e)
		switch {
		case active && !info.inSpace:
			ps.addToSpace(info)
			ps.teleport(info, transform)
		case !active && info.inSpace:
			ps.removeFromSpace(info)
		case active && !info.static && transform.Position.XZ() != info.lastPos.XZ():
			ps.teleport(info, transform)
		}
	}
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	info := &bodyInfo{kind: bodyComp.Kind, static: bodyComp.Static, lastPos: transform.Position}
	pos := toCP(transform.Position)

	if bodyComp.Static {
		if bodyComp.Width <= 0 || bodyComp.Length <= 0 {
			ps.log.Warn("static body without extent", "entity", e)
			return nil
		}
		hw, hl := bodyComp.Width/2, bodyComp.Length/2
		bb := cp.BB{L: pos.X - hw, B: pos.Y - hl, R: pos.X + hw, T: pos.Y + hl}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(0.5)
		shape.SetElasticity(0)
		shape.SetCollisionType(collisionTypeFor(bodyComp.Kind))
		shape.SetSensor(bodyComp.Sensor)
		info.body = ps.space.StaticBody
		info.shape = shape
		ps.shapes[shape] = e
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	var body *cp.Body
	var shape *cp.Shape
	switch {
	case bodyComp.Radius > 0:
		body = cp.NewBody(mass, cp.MomentForCircle(mass, 0, bodyComp.Radius, cp.Vector{}))
		shape = cp.NewCircle(body, bodyComp.Radius, cp.Vector{})
	case bodyComp.Width > 0 && bodyComp.Length > 0:
		// Tanks steer themselves; contacts must not spin them.
		body = cp.NewBody(mass, math.Inf(1))
		shape = cp.NewBox(body, bodyComp.Width, bodyComp.Length, 0)
	default:
		ps.log.Warn("body without extent", "entity", e)
		return nil
	}

	body.SetPosition(pos)
	body.SetAngle(transform.Yaw)
	body.SetAngularVelocity(0)

	shape.SetFriction(0.5)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeFor(bodyComp.Kind))
	shape.SetSensor(bodyComp.Sensor)

	info.body = body
	info.shape = shape
	ps.shapes[shape] = e
	return info
}

func collisionTypeFor(kind component.BodyKind) cp.CollisionType {
	switch kind {
	case component.BodyTank:
		return collisionTypeTank
	case component.BodyShell:
		return collisionTypeShell
	default:
		return collisionTypeWall
	}
}

func (ps *PhysicsSystem) addToSpace(info *bodyInfo) {
	if info.inSpace {
		return
	}
	if !info.static {
		ps.space.AddBody(info.body)
	}
	ps.space.AddShape(info.shape)
	info.inSpace = true
}

func (ps *PhysicsSystem) removeFromSpace(info *bodyInfo) {
	if !info.inSpace {
		return
	}
	ps.space.RemoveShape(info.shape)
	if !info.static {
		ps.space.RemoveBody(info.body)
	}
	info.inSpace = false
}

func (ps *PhysicsSystem) teleport(info *bodyInfo, transform *component.Transform) {
	if info.static {
		return
	}
	info.body.SetPosition(toCP(transform.Position))
	info.body.SetAngle(transform.Yaw)
	info.body.SetVelocity(0, 0)
	info.lastPos = transform.Position
}

func (ps *PhysicsSystem) applyVelocities(w *ecs.World) {
	for e, info := range ps.bodies {
		if info.static || !info.inSpace {
			continue
		}

		switch info.kind {
		case component.BodyTank:
			v := common.Vec3{}
			if move, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
				v = v.Add(move.DriveVelocity)
			}
			if kb, ok := ecs.Get(w, e, component.KnockbackComponent.Kind()); ok {
				v = v.Add(kb.Velocity)
			}
			if transform, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				info.body.SetAngle(transform.Yaw)
			}
			info.body.SetVelocityVector(toCP(v))
			info.body.SetAngularVelocity(0)
		case component.BodyShell:
			if shell, ok := ecs.Get(w, e, component.ShellComponent.Kind()); ok {
				info.body.SetVelocityVector(toCP(shell.Velocity))
			}
		}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.bodies {
		if info.static || !info.inSpace {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		p := fromCP(info.body.Position())
		transform.Position.X = p.X
		transform.Position.Z = p.Z
		info.lastPos = transform.Position
	}
}

func (ps *PhysicsSystem) decayKnockback(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.KnockbackComponent.Kind(), func(_ ecs.Entity, kb *component.Knockback) {
		if kb.Damping <= 0 {
			return
		}
		f := 1 - kb.Damping*dt
		if f < 0 {
			f = 0
		}
		kb.Velocity = kb.Velocity.Scale(f)
		if kb.Velocity.Len() < 1e-3 {
			kb.Velocity = common.Vec3{}
		}
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeFromSpace(info)
		delete(ps.shapes, info.shape)
		delete(ps.bodies, e)
	}
}
