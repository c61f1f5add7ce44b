package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/ecs/component"
	"go.uber.org/zap"
)

const (
	collisionTypeActor cp.CollisionType = iota + 1
	collisionTypeActorGround
	collisionTypeSolid
)

const (
	groundSensorDepth = 0.05
	solverIterations  = 20
	actorMass         = 1.0
)

// PhysicsSystem is the collision substrate. It consumes the translation
// requested on every KinematicController, slides the matching body against
// static colliders and writes back the resolved Transform and
// KinematicOutput. Ground contact comes from a chipmunk sensor under each
// body. Movement is resolved in the XY plane; Z follows the request
// unchecked.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	logger        *zap.Logger

	entities     map[ecs.Entity]*bodyInfo
	groundShapes map[*cp.Shape]ecs.Entity
	grounded     map[ecs.Entity]bool
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	static      bool
	bb          cp.BB
	half        cp.Vector
	synced      mgl64.Vec2
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = solverIterations
	space.SetGravity(cp.Vector{})
	return space
}

func NewPhysicsSystem(logger *zap.Logger) *PhysicsSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhysicsSystem{
		space:        newSpace(),
		logger:       logger,
		entities:     make(map[ecs.Entity]*bodyInfo),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		grounded:     make(map[ecs.Entity]bool),
	}
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
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	clear(ps.grounded)

	step := w.Delta()
	if step <= 0 {
		step = ecs.DefaultDelta
	}

	solids := ps.solids()
	actors := w.Query(component.KinematicControllerComponent.Kind(), component.TransformComponent.Kind())
	desired := make(map[ecs.Entity]mgl64.Vec3, len(actors))
	before := make(map[ecs.Entity]cp.Vector, len(actors))
	for _, e := range actors {
		kin, _ := ecs.Get(w, e, component.KinematicControllerComponent)
		t, _ := kin.Take()
		if err := ecs.Add(w, e, component.KinematicControllerComponent, kin); err != nil {
			panic("physics system: clear kinematic controller: " + err.Error())
		}
		desired[e] = t

		info := ps.entities[e]
		if info == nil || info.static {
			continue
		}
		pos := info.body.Position()
		before[e] = pos
		info.body.SetPosition(moveAndSlide(pos, info.half, cp.Vector{X: t.X(), Y: t.Y()}, solids))
		info.body.SetVelocity(0, 0)
	}

	// Bodies are already placed; the step only refreshes contacts for the
	// ground sensors.
	ps.space.Step(step)

	for _, e := range actors {
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		t := desired[e]
		output := component.KinematicOutput{Desired: t, Tick: w.Tick()}

		info := ps.entities[e]
		if info != nil && !info.static {
			body := info.body
			body.SetVelocity(0, 0)
			body.SetAngle(0)
			body.SetAngularVelocity(0)

			pos := body.Position()
			prev := before[e]
			transform.Position = mgl64.Vec3{pos.X, pos.Y, transform.Position.Z() + t.Z()}
			output.Effective = mgl64.Vec3{pos.X - prev.X, pos.Y - prev.Y, t.Z()}
			output.Grounded = ps.grounded[e]
			info.synced = mgl64.Vec2{pos.X, pos.Y}
		} else {
			transform.Position = transform.Position.Add(t)
			output.Effective = t
		}

		if err := ecs.Add(w, e, component.TransformComponent, transform); err != nil {
			panic("physics system: update transform: " + err.Error())
		}
		if err := ecs.Add(w, e, component.KinematicOutputComponent, output); err != nil {
			panic("physics system: update kinematic output: " + err.Error())
		}
	}
}

func (ps *PhysicsSystem) solids() []cp.BB {
	solids := make([]cp.BB, 0, len(ps.entities))
	for _, info := range ps.entities {
		if info.static {
			solids = append(solids, info.bb)
		}
	}
	return solids
}

// moveAndSlide moves a box of the given half size by delta, one axis at a
// time, stopping flush against any solid it would enter.
func moveAndSlide(pos, half, delta cp.Vector, solids []cp.BB) cp.Vector {
	if delta.X != 0 {
		pos.X += delta.X
		for _, bb := range solids {
			if !overlaps(pos, half, bb) {
				continue
			}
			if delta.X > 0 {
				pos.X = bb.L - half.X
			} else {
				pos.X = bb.R + half.X
			}
		}
	}
	if delta.Y != 0 {
		pos.Y += delta.Y
		for _, bb := range solids {
			if !overlaps(pos, half, bb) {
				continue
			}
			if delta.Y > 0 {
				pos.Y = bb.B - half.Y
			} else {
				pos.Y = bb.T + half.Y
			}
		}
	}
	return pos
}

func overlaps(pos, half cp.Vector, bb cp.BB) bool {
	return pos.X-half.X < bb.R && pos.X+half.X > bb.L &&
		pos.Y-half.Y < bb.T && pos.Y+half.Y > bb.B
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypeActorGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		actor, okA := sys.groundShapes[shapeA]
		if !okA {
			var okB bool
			actor, okB = sys.groundShapes[shapeB]
			if !okB {
				return true
			}
		}

		// The normal points from the sensor toward the solid, so ground lies
		// in -Y.
		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		if n.Y >= -0.5 {
			return true
		}
		sys.grounded[actor] = true
		return true
	}

	ps.handlersReady = true
}

// syncEntities creates bodies for new colliders and moves bodies whose
// Transform was changed outside the substrate since the last step.
func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.ColliderComponent.Kind(), component.TransformComponent.Kind()) {
		collider, _ := ecs.Get(w, e, component.ColliderComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		isActor := ecs.Has(w, e, component.KinematicControllerComponent)
		if !collider.Static && !isActor {
			continue
		}

		info := ps.entities[e]
		if info == nil {
			info = ps.createBodyInfo(transform, collider)
			if info == nil {
				continue
			}
			ps.entities[e] = info
			if info.groundShape != nil {
				ps.groundShapes[info.groundShape] = e
			}
			ps.logger.Debug("physics body created",
				zap.Stringer("entity", e),
				zap.Bool("static", info.static),
				zap.Float64("x", transform.Position.X()),
				zap.Float64("y", transform.Position.Y()),
			)
			continue
		}

		if info.static {
			continue
		}
		pos := mgl64.Vec2{transform.Position.X(), transform.Position.Y()}
		if pos != info.synced {
			info.body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Y()})
			info.synced = pos
		}
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, collider component.Collider) *bodyInfo {
	width := collider.HalfExtents.X() * 2
	height := collider.HalfExtents.Y() * 2
	if width <= 0 || height <= 0 {
		return nil
	}

	x, y := transform.Position.X(), transform.Position.Y()
	info := &bodyInfo{
		static: collider.Static,
		half:   cp.Vector{X: width / 2, Y: height / 2},
		synced: mgl64.Vec2{x, y},
	}

	if collider.Static {
		bb := cp.BB{L: x - width/2, B: y - height/2, R: x + width/2, T: y + height/2}
		info.bb = bb
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(collider.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		return info
	}

	body := cp.NewBody(actorMass, cp.MomentForBox(actorMass, width, height))
	body.SetPosition(cp.Vector{X: x, Y: y})
	body.SetAngle(0)
	body.SetAngularVelocity(0)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(collider.Friction)
	shape.SetCollisionType(collisionTypeActor)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	groundShape := createGroundSensor(body, width, height)
	ps.space.AddShape(groundShape)
	info.groundShape = groundShape
	info.shapes = append(info.shapes, groundShape)

	return info
}

func createGroundSensor(body *cp.Body, width, height float64) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: -height/2.0 - groundSensorDepth,
		R: width * 0.45,
		T: -height / 2.0,
	}
	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypeActorGround)
	return groundShape
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.ColliderComponent) {
			continue
		}

		for _, shape := range info.shapes {
			if shape == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.groundShapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.grounded, e)
	}
}
