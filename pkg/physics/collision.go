// pkg/physics/collision.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Circle is a circular collider in the XY plane.
type Circle struct {
	Center mgl64.Vec2
	Radius float64
}

// Collides checks if two circles overlap.
func (c Circle) Collides(other Circle) bool {
	return c.Center.Sub(other.Center).Len() < c.Radius+other.Radius
}

// CollisionResult describes an overlap. Normal points from the first shape
// towards the second.
type CollisionResult struct {
	Collided     bool
	Normal       mgl64.Vec2
	Penetration  float64
	ContactPoint mgl64.Vec2
}

// CheckCollision performs detailed collision detection between two circles.
func CheckCollision(a, b Circle) CollisionResult {
	delta := b.Center.Sub(a.Center)
	distance := delta.Len()

	if distance >= a.Radius+b.Radius {
		return CollisionResult{}
	}

	normal := normalize(delta)
	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  a.Radius + b.Radius - distance,
		ContactPoint: a.Center.Add(normal.Mul(a.Radius)),
	}
}

// Rect is an axis-aligned rectangle described by its centre.
type Rect struct {
	Center mgl64.Vec2
	Width  float64
	Height float64
}

// Min returns the lower-left corner.
func (r Rect) Min() mgl64.Vec2 {
	return mgl64.Vec2{r.Center.X() - r.Width/2, r.Center.Y() - r.Height/2}
}

// Max returns the upper-right corner.
func (r Rect) Max() mgl64.Vec2 {
	return mgl64.Vec2{r.Center.X() + r.Width/2, r.Center.Y() + r.Height/2}
}

// Contains reports whether point lies inside r. The upper edges are exclusive.
func (r Rect) Contains(point mgl64.Vec2) bool {
	lo, hi := r.Min(), r.Max()
	return point.X() >= lo.X() && point.X() < hi.X() &&
		point.Y() >= lo.Y() && point.Y() < hi.Y()
}

// Intersects reports whether two rectangles overlap or touch.
func (r Rect) Intersects(other Rect) bool {
	lo, hi := r.Min(), r.Max()
	olo, ohi := other.Min(), other.Max()
	return !(olo.X() > hi.X() || ohi.X() < lo.X() || olo.Y() > hi.Y() || ohi.Y() < lo.Y())
}

// Expand grows r by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{Center: r.Center, Width: r.Width + 2*margin, Height: r.Height + 2*margin}
}

// CircleRect tests a circle against a rectangle. The normal points from the
// rectangle towards the circle, so moving the circle along it by Penetration
// separates the two.
func CircleRect(c Circle, r Rect) CollisionResult {
	lo, hi := r.Min(), r.Max()
	closest := mgl64.Vec2{
		clamp(c.Center.X(), lo.X(), hi.X()),
		clamp(c.Center.Y(), lo.Y(), hi.Y()),
	}
	delta := c.Center.Sub(closest)
	distance := delta.Len()

	if distance > 0 {
		if distance >= c.Radius {
			return CollisionResult{}
		}
		return CollisionResult{
			Collided:     true,
			Normal:       delta.Mul(1 / distance),
			Penetration:  c.Radius - distance,
			ContactPoint: closest,
		}
	}

	// Centre inside the rectangle: push out through the nearest edge.
	left := c.Center.X() - lo.X()
	right := hi.X() - c.Center.X()
	down := c.Center.Y() - lo.Y()
	up := hi.Y() - c.Center.Y()

	normal := mgl64.Vec2{-1, 0}
	depth := left
	if right < depth {
		normal, depth = mgl64.Vec2{1, 0}, right
	}
	if down < depth {
		normal, depth = mgl64.Vec2{0, -1}, down
	}
	if up < depth {
		normal, depth = mgl64.Vec2{0, 1}, up
	}

	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  depth + c.Radius,
		ContactPoint: c.Center.Add(normal.Mul(depth)),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// normalize returns the unit vector of v, or zero for a zero vector.
func normalize(v mgl64.Vec2) mgl64.Vec2 {
	length := v.Len()
	if length == 0 {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / length)
}

// QuadTree indexes objects by a representative point for broad-phase queries.
type QuadTree[T any] struct {
	Boundary  Rect
	Capacity  int
	Points    []mgl64.Vec2
	Objects   []T
	Divided   bool
	NorthWest *QuadTree[T]
	NorthEast *QuadTree[T]
	SouthWest *QuadTree[T]
	SouthEast *QuadTree[T]
}

// NewQuadTree creates a new quad tree with the given boundary and capacity.
func NewQuadTree[T any](boundary Rect, capacity int) *QuadTree[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree[T]{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]mgl64.Vec2, 0, capacity),
		Objects:  make([]T, 0, capacity),
	}
}

// Insert adds object at point. It returns false when point is outside the tree.
func (qt *QuadTree[T]) Insert(point mgl64.Vec2, object T) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if len(qt.Points) < qt.Capacity && !qt.Divided {
		qt.Points = append(qt.Points, point)
		qt.Objects = append(qt.Objects, object)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.Insert(point, object) ||
		qt.NorthEast.Insert(point, object) ||
		qt.SouthWest.Insert(point, object) ||
		qt.SouthEast.Insert(point, object)
}

// Subdivide splits the tree into four quadrants.
func (qt *QuadTree[T]) Subdivide() {
	x, y := qt.Boundary.Center.X(), qt.Boundary.Center.Y()
	w, h := qt.Boundary.Width/2, qt.Boundary.Height/2

	quadrant := func(cx, cy float64) *QuadTree[T] {
		return NewQuadTree[T](Rect{Center: mgl64.Vec2{cx, cy}, Width: w, Height: h}, qt.Capacity)
	}
	qt.NorthWest = quadrant(x-w/2, y+h/2)
	qt.NorthEast = quadrant(x+w/2, y+h/2)
	qt.SouthWest = quadrant(x-w/2, y-h/2)
	qt.SouthEast = quadrant(x+w/2, y-h/2)
	qt.Divided = true
}

// Query returns every object whose point lies inside area.
func (qt *QuadTree[T]) Query(area Rect) []T {
	var found []T
	qt.query(area, &found)
	return found
}

func (qt *QuadTree[T]) query(area Rect, found *[]T) {
	if !qt.Boundary.Intersects(area) {
		return
	}
	for i, point := range qt.Points {
		if area.Contains(point) {
			*found = append(*found, qt.Objects[i])
		}
	}
	if !qt.Divided {
		return
	}
	qt.NorthWest.query(area, found)
	qt.NorthEast.query(area, found)
	qt.SouthWest.query(area, found)
	qt.SouthEast.query(area, found)
}
