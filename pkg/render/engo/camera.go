// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultPixelsPerUnit is the screen size of one world unit at zoom 1.
const DefaultPixelsPerUnit = 8

// CameraSystem follows the rocket and maps world coordinates (Y up) to
// screen pixels (Y down).
type CameraSystem struct {
	buttons ButtonSource

	// Target to follow
	target    mgl64.Vec2
	targetSet bool

	// Camera properties
	zoom          float64
	minZoom       float64
	maxZoom       float64
	pixelsPerUnit float64

	// Smooth following
	followSpeed float64
	smoothing   bool

	currentPos mgl64.Vec2
	viewWidth  float64
	viewHeight float64
}

// NewCameraSystem creates a camera for a view of the given pixel size.
// A nil buttons disables the zoom keys.
func NewCameraSystem(viewWidth, viewHeight float64, buttons ButtonSource) *CameraSystem {
	return &CameraSystem{
		buttons:       buttons,
		zoom:          1.0,
		minZoom:       0.25,
		maxZoom:       4.0,
		pixelsPerUnit: DefaultPixelsPerUnit,
		followSpeed:   4.0,
		smoothing:     true,
		viewWidth:     viewWidth,
		viewHeight:    viewHeight,
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update moves the camera toward its target and applies zoom keys
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()
	if cs.targetSet {
		cs.updateCameraPosition(float64(dt))
	}
}

func (cs *CameraSystem) handleZoomInput() {
	if cs.buttons == nil {
		return
	}
	if cs.buttons.Down(ButtonZoomIn) {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if cs.buttons.Down(ButtonZoomOut) {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if cs.buttons.Down(ButtonResetZoom) {
		cs.SetZoom(1.0)
	}
}

// updateCameraPosition moves a fraction of the remaining distance, never
// overshooting.
func (cs *CameraSystem) updateCameraPosition(dt float64) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}
	f := cs.followSpeed * dt
	if f > 1 {
		f = 1
	}
	cs.currentPos = cs.currentPos.Add(cs.target.Sub(cs.currentPos).Mul(f))
}

// SetTarget sets the position to follow. The first target snaps the camera.
func (cs *CameraSystem) SetTarget(target mgl64.Vec2) {
	first := !cs.targetSet
	cs.target = target
	cs.targetSet = true
	if first || !cs.smoothing {
		cs.currentPos = target
	}
}

// Snap moves the camera onto its target immediately. Used after a level
// load, where easing from the old position looks wrong.
func (cs *CameraSystem) Snap() {
	cs.currentPos = cs.target
}

// ClearTarget stops following.
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the zoom level within the camera's limits
func (cs *CameraSystem) SetZoom(zoom float64) {
	cs.zoom = mgl64.Clamp(zoom, cs.minZoom, cs.maxZoom)
}

// Zoom returns the current zoom level
func (cs *CameraSystem) Zoom() float64 {
	return cs.zoom
}

// EnableSmoothing enables or disables eased following
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// SetViewSize updates the view after a window resize
func (cs *CameraSystem) SetViewSize(width, height float64) {
	cs.viewWidth = width
	cs.viewHeight = height
}

// Position returns the world position at the centre of the view
func (cs *CameraSystem) Position() mgl64.Vec2 {
	return cs.currentPos
}

// Scale returns the number of pixels per world unit
func (cs *CameraSystem) Scale() float64 {
	return cs.pixelsPerUnit * cs.zoom
}

// WorldToScreen converts a world position to a screen pixel
func (cs *CameraSystem) WorldToScreen(pos mgl64.Vec2) engo.Point {
	rel := pos.Sub(cs.currentPos).Mul(cs.Scale())
	return engo.Point{
		X: float32(rel.X() + cs.viewWidth/2),
		Y: float32(cs.viewHeight/2 - rel.Y()),
	}
}

// ScreenToWorld converts a screen pixel back to a world position
func (cs *CameraSystem) ScreenToWorld(p engo.Point) mgl64.Vec2 {
	rel := mgl64.Vec2{
		float64(p.X) - cs.viewWidth/2,
		cs.viewHeight/2 - float64(p.Y),
	}
	return rel.Mul(1 / cs.Scale()).Add(cs.currentPos)
}
