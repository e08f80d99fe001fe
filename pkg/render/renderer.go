// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-boost/pkg/level"
	"github.com/opd-ai/go-boost/pkg/logging"
	"github.com/opd-ai/go-boost/pkg/world"
)

// Renderer draws one frame of the world.
type Renderer interface {
	Clear()
	RenderObstacle(obstacle level.Obstacle)
	RenderVehicle(vehicle world.VehicleView)
	RenderStatus(status world.Status)
	Present()
}

// Draw renders a full snapshot: obstacles first, then the rocket and the
// status line.
func Draw(r Renderer, snap world.Snapshot) {
	r.Clear()
	for _, o := range snap.Obstacles {
		r.RenderObstacle(o)
	}
	r.RenderVehicle(snap.Vehicle)
	r.RenderStatus(snap.Status)
	r.Present()
}

// NullRenderer is a Renderer that only logs at debug level.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullRenderer{
		logger: logger,
		ctx:    context.Background(),
	}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(d.ctx, "Clear called")
}

// Present implements Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(d.ctx, "Present called")
}

// RenderObstacle implements Renderer.
func (d *NullRenderer) RenderObstacle(obstacle level.Obstacle) {
	d.logger.Debug(d.ctx, "RenderObstacle called",
		"tag", obstacle.Tag,
		"x", obstacle.X,
		"y", obstacle.Y,
	)
}

// RenderVehicle implements Renderer.
func (d *NullRenderer) RenderVehicle(vehicle world.VehicleView) {
	d.logger.Debug(d.ctx, "RenderVehicle called",
		"x", vehicle.Position.X(),
		"y", vehicle.Position.Y(),
		"heading", vehicle.Heading,
		"state", vehicle.State.String(),
	)
}

// RenderStatus implements Renderer.
func (d *NullRenderer) RenderStatus(status world.Status) {
	d.logger.Debug(d.ctx, "RenderStatus called",
		"tick", status.Tick,
		"level", status.LevelIndex,
		"state", status.State.String(),
	)
}
