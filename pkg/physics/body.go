// Package physics provides the host-side rigid body, colliders and the
// broad-phase index the world simulation runs the rocket against.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// RigidBody is a point-mass body moving in 3D with orientation.
//
// While rotation is frozen the orientation is locked: manual rotations and
// collision torque are both discarded. Forces are accumulated between steps
// and cleared by Step.
type RigidBody struct {
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	Orientation     mgl64.Quat
	AngularVelocity float64 // radians per second about Z
	Mass            float64
	LinearDrag      float64
	AngularDrag     float64
	Radius          float64

	force  mgl64.Vec3
	frozen bool
}

// NewRigidBody creates an upright body at position.
func NewRigidBody(position mgl64.Vec3, mass, radius float64) *RigidBody {
	if mass <= 0 {
		mass = 1
	}
	return &RigidBody{
		Position:    position,
		Orientation: mgl64.QuatIdent(),
		Mass:        mass,
		Radius:      radius,
		LinearDrag:  0.1,
		AngularDrag: 0.5,
	}
}

// AddLocalForce adds a force expressed in the body's local frame.
func (b *RigidBody) AddLocalForce(force mgl64.Vec3) {
	b.force = b.force.Add(b.Orientation.Rotate(force))
}

// AddForce adds a force expressed in world space.
func (b *RigidBody) AddForce(force mgl64.Vec3) {
	b.force = b.force.Add(force)
}

// AddRotation rotates the body by Euler angles in degrees, applied X, Y then
// Z in the local frame. It does nothing while rotation is frozen.
func (b *RigidBody) AddRotation(eulerDegrees mgl64.Vec3) {
	if b.frozen {
		return
	}
	q := mgl64.QuatRotate(mgl64.DegToRad(eulerDegrees.X()), axisX).
		Mul(mgl64.QuatRotate(mgl64.DegToRad(eulerDegrees.Y()), axisY)).
		Mul(mgl64.QuatRotate(mgl64.DegToRad(eulerDegrees.Z()), axisZ))
	b.Orientation = b.Orientation.Mul(q).Normalize()
}

// FreezeRotation reports whether orientation is locked.
func (b *RigidBody) FreezeRotation() bool {
	return b.frozen
}

// SetFreezeRotation locks or unlocks orientation. Locking also discards any
// spin picked up from collisions.
func (b *RigidBody) SetFreezeRotation(frozen bool) {
	b.frozen = frozen
	if frozen {
		b.AngularVelocity = 0
	}
}

// ApplyImpulse changes velocity immediately. Torque only takes effect while
// rotation is not frozen.
func (b *RigidBody) ApplyImpulse(impulse mgl64.Vec3, torque float64) {
	b.Velocity = b.Velocity.Add(impulse.Mul(1 / b.Mass))
	if !b.frozen {
		b.AngularVelocity += torque / b.Mass
	}
}

// Step integrates accumulated force and gravity over dt and clears the force.
func (b *RigidBody) Step(dt float64, gravity mgl64.Vec3) {
	if dt <= 0 {
		b.force = mgl64.Vec3{}
		return
	}

	accel := b.force.Mul(1 / b.Mass).Add(gravity)
	b.Velocity = b.Velocity.Add(accel.Mul(dt)).Mul(1 / (1 + b.LinearDrag*dt))
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	b.force = mgl64.Vec3{}

	if b.frozen || b.AngularVelocity == 0 {
		return
	}
	spin := mgl64.QuatRotate(b.AngularVelocity*dt, axisZ)
	b.Orientation = spin.Mul(b.Orientation).Normalize()
	b.AngularVelocity /= 1 + b.AngularDrag*dt
}

// Up returns the body's local up axis in world space.
func (b *RigidBody) Up() mgl64.Vec3 {
	return b.Orientation.Rotate(axisY)
}

// Heading returns the rotation about Z in radians, 0 when upright and
// positive counter-clockwise.
func (b *RigidBody) Heading() float64 {
	up := b.Up()
	return math.Atan2(-up.X(), up.Y())
}

// Collider returns the body's footprint in the XY plane.
func (b *RigidBody) Collider() Circle {
	return Circle{Center: b.Position.Vec2(), Radius: b.Radius}
}

// PendingForce returns the force accumulated since the last Step.
func (b *RigidBody) PendingForce() mgl64.Vec3 {
	return b.force
}
