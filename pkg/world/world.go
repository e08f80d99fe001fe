// Package world runs the rocket simulation for the active level: it owns the
// scene, steps the controller and the body, dispatches contacts and rebuilds
// the scene when a level load is requested.
package world

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-boost/pkg/config"
	"github.com/opd-ai/go-boost/pkg/event"
	"github.com/opd-ai/go-boost/pkg/feedback"
	"github.com/opd-ai/go-boost/pkg/level"
	"github.com/opd-ai/go-boost/pkg/logging"
	"github.com/opd-ai/go-boost/pkg/physics"
	"github.com/opd-ai/go-boost/pkg/scheduler"
	"github.com/opd-ai/go-boost/pkg/validation"
	"github.com/opd-ai/go-boost/pkg/vehicle"
)

// MaxDeltaTime caps a single step to keep the integration stable
const MaxDeltaTime = 0.1

// World holds the active scene and the level list.
// It is not safe for concurrent use; Snapshot results may be shared.
type World struct {
	cfg    *config.GameConfig
	levels *level.Manager
	bus    *event.Bus
	logger *logging.Logger
	ctx    context.Context

	scene     *scene
	requested *int
	lastInput vehicle.Input

	tick    uint64
	elapsed float64
}

// scene is everything that is rebuilt on a level load
type scene struct {
	index      int
	def        level.Definition
	body       *physics.RigidBody
	controller *vehicle.Controller
	mixer      *feedback.Mixer
	timers     *scheduler.Timers
	obstacles  *obstacleIndex
	contacts   map[int]bool
}

// Option customizes a World
type Option func(*World)

// WithLogger replaces the default logger
func WithLogger(l *logging.Logger) Option {
	return func(w *World) {
		w.logger = l
	}
}

// WithEventBus publishes world and vehicle events on bus
func WithEventBus(bus *event.Bus) Option {
	return func(w *World) {
		w.bus = bus
	}
}

// New validates cfg and builds the starting level
func New(ctx context.Context, cfg *config.GameConfig, opts ...Option) (*World, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	// every level is checked up front; a level that fails to load later would
	// strand the rocket in its terminal state
	if err := validation.ValidateLevels(cfg.LevelDefinitions(), cfg.Vehicle.FinishTag); err != nil {
		return nil, fmt.Errorf("invalid levels: %w", err)
	}

	w := &World{cfg: cfg, ctx: ctx}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logging.NewLogger()
	}
	if w.bus == nil {
		w.bus = event.NewEventBus()
	}

	levels, err := level.NewManager(ctx, cfg.LevelDefinitions(), cfg.Breaker, w.logger)
	if err != nil {
		return nil, err
	}
	levels.OnLoad(w.buildScene)
	w.levels = levels

	if err := levels.Load(cfg.Levels.Start); err != nil {
		return nil, fmt.Errorf("failed to load start level: %w", err)
	}
	return w, nil
}

// buildScene is the level manager's builder. It replaces the whole scene,
// so nothing from the previous level survives.
func (w *World) buildScene(index int, def level.Definition) error {
	if err := validation.ValidateLevel(def, w.cfg.Vehicle.FinishTag); err != nil {
		return err
	}

	p := w.cfg.Physics
	body := physics.NewRigidBody(def.Spawn(), p.Mass, p.Radius)
	body.LinearDrag = p.LinearDrag
	body.AngularDrag = p.AngularDrag

	mixer := feedback.NewMixer(w.ctx, w.cfg.ClipDurations(), w.logger)
	timers := scheduler.NewTimers()

	controller, err := vehicle.NewController(w.cfg.VehicleConfig(), vehicle.Bindings{
		Body:      body,
		Feedback:  mixer,
		Levels:    &deferredLevels{w: w},
		Scheduler: timers,
	},
		vehicle.WithPublisher(event.NewVehiclePublisher(w.bus, w)),
		vehicle.WithLogger(w.logger),
		vehicle.WithContext(w.ctx),
		vehicle.WithHeldInput(w.lastInput),
	)
	if err != nil {
		return err
	}

	w.scene = &scene{
		index:      index,
		def:        def,
		body:       body,
		controller: controller,
		mixer:      mixer,
		timers:     timers,
		obstacles:  newObstacleIndex(def),
		contacts:   make(map[int]bool),
	}
	w.bus.Publish(event.NewLevelEvent(event.LevelLoaded, w, index, def.Name, nil))
	return nil
}

// Step advances the simulation by dt seconds with the given key state
func (w *World) Step(dt float64, in vehicle.Input) {
	if dt > MaxDeltaTime {
		dt = MaxDeltaTime
	}
	if dt < 0 {
		dt = 0
	}

	s := w.scene
	s.controller.Tick(dt, in)
	w.lastInput = in
	s.timers.Advance(dt)
	s.body.Step(dt, mgl64.Vec3{0, -s.def.Gravity, 0})
	w.resolveContacts(s)
	s.mixer.Advance(dt)

	w.tick++
	w.elapsed += dt
	w.applyRequestedLoad()
}

// applyRequestedLoad runs a load requested during the tick. A failed load
// keeps the current scene.
func (w *World) applyRequestedLoad() {
	if w.requested == nil {
		return
	}
	index := *w.requested
	w.requested = nil

	if err := w.levels.Load(index); err != nil {
		w.logger.Error(w.ctx, "level transition failed", err, "index", index)
		w.bus.Publish(event.NewLevelEvent(event.LevelLoadFailed, w, index, "", err))
	}
}

// Bus returns the event bus the world publishes on
func (w *World) Bus() *event.Bus {
	return w.bus
}

// Levels returns the level manager
func (w *World) Levels() *level.Manager {
	return w.levels
}

// Controller returns the active scene's vehicle controller
func (w *World) Controller() *vehicle.Controller {
	return w.scene.controller
}

// Body returns the active scene's rocket body
func (w *World) Body() *physics.RigidBody {
	return w.scene.body
}

// Mixer returns the active scene's feedback mixer
func (w *World) Mixer() *feedback.Mixer {
	return w.scene.mixer
}

// Tick returns the number of steps run since New
func (w *World) Tick() uint64 {
	return w.tick
}

// deferredLevels is the controller's view of the level list. Loads are
// recorded and applied by the world once the current tick has finished.
type deferredLevels struct {
	w *World
}

func (d *deferredLevels) LoadLevel(index int) {
	d.w.requested = &index
}

func (d *deferredLevels) CurrentLevelIndex() int {
	return d.w.levels.CurrentLevelIndex()
}

func (d *deferredLevels) TotalLevelCount() int {
	return d.w.levels.TotalLevelCount()
}
