package world

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-boost/pkg/level"
	"github.com/opd-ai/go-boost/pkg/physics"
)

// obstacleIndex is the broad phase over a level's obstacles. Obstacles are
// indexed by centre, so queries are widened by the largest half extent.
type obstacleIndex struct {
	obstacles []level.Obstacle
	tree      *physics.QuadTree[int]
	outside   []int
	halfW     float64
	halfH     float64
}

func newObstacleIndex(def level.Definition) *obstacleIndex {
	idx := &obstacleIndex{
		obstacles: def.Obstacles,
		tree:      physics.NewQuadTree[int](def.Bounds(), 8),
	}
	for i, o := range def.Obstacles {
		idx.halfW = math.Max(idx.halfW, o.Width/2)
		idx.halfH = math.Max(idx.halfH, o.Height/2)
		if !idx.tree.Insert(mgl64.Vec2{o.X, o.Y}, i) {
			idx.outside = append(idx.outside, i)
		}
	}
	return idx
}

// candidates returns the indices of obstacles that may touch c, in
// ascending order.
func (idx *obstacleIndex) candidates(c physics.Circle) []int {
	area := physics.Rect{
		Center: c.Center,
		Width:  2 * (c.Radius + idx.halfW),
		Height: 2 * (c.Radius + idx.halfH),
	}.Expand(1e-6)
	found := append(idx.tree.Query(area), idx.outside...)
	sort.Ints(found)
	return found
}

// contactSkin is how far outside an obstacle the body still counts as
// touching it, so a body resting on a pad stays in contact between bounces.
const contactSkin = 0.05

// resolveContacts pushes the body out of every obstacle it overlaps, then
// reports obstacles touched this tick that were not touched last tick.
func (w *World) resolveContacts(s *scene) {
	touching := make(map[int]bool, len(s.contacts))
	var entered []int

	collider := s.body.Collider()
	probe := physics.Circle{Center: collider.Center, Radius: collider.Radius + contactSkin}

	for _, i := range s.obstacles.candidates(probe) {
		rect := s.obstacles.obstacles[i].Rect()
		if !physics.CircleRect(probe, rect).Collided {
			continue
		}
		touching[i] = true
		if !s.contacts[i] {
			entered = append(entered, i)
		}
		if res := physics.CircleRect(s.body.Collider(), rect); res.Collided {
			w.respond(s, res)
		}
	}
	s.contacts = touching

	for _, i := range entered {
		s.controller.OnCollision(s.obstacles.obstacles[i].Tag)
	}
}

// respond separates the body along the contact normal and removes the
// approaching part of its velocity.
func (w *World) respond(s *scene, res physics.CollisionResult) {
	body := s.body
	n := mgl64.Vec3{res.Normal.X(), res.Normal.Y(), 0}
	body.Position = body.Position.Add(n.Mul(res.Penetration))

	approach := body.Velocity.Dot(n)
	if approach >= 0 {
		return
	}
	impulse := n.Mul(-(1 + w.cfg.Physics.Restitution) * approach * body.Mass)

	// torque about Z from the contact offset, only felt while unfrozen
	r := res.ContactPoint.Sub(body.Position.Vec2())
	torque := r.X()*impulse.Y() - r.Y()*impulse.X()
	body.ApplyImpulse(impulse, torque)
}
