// Package vehicle implements the per-frame controller of a player-piloted
// rocket: thrust and rotation from held keys, collision classification and
// the one-way Alive/Dying/Transcending lifecycle with its delayed level load.
package vehicle

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-boost/pkg/logging"
)

// ErrMissingBinding is returned by NewController when a required service is nil.
var ErrMissingBinding = errors.New("missing controller binding")

var (
	localUp      = mgl64.Vec3{0, 1, 0}
	localForward = mgl64.Vec3{0, 0, 1}
)

// Controller drives one vehicle for the lifetime of one scene.
// It is not safe for concurrent use; the host calls it from its main loop.
type Controller struct {
	cfg        Config
	classifier Classifier

	body      Body
	feedback  FeedbackSink
	levels    LevelTransitioner
	scheduler Scheduler
	publisher Publisher

	logger *logging.Logger
	ctx    context.Context

	state             State
	collisionsEnabled bool
	pending           *PendingTransition
	fired             bool

	// previous debug key state, for press edges
	prevToggle bool
	prevNext   bool
}

// Option customizes a Controller.
type Option func(*Controller)

// WithPublisher registers a receiver for lifecycle notifications.
func WithPublisher(p Publisher) Option {
	return func(c *Controller) {
		c.publisher = p
	}
}

// WithLogger replaces the default logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithContext sets the context used for log correlation.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

// WithHeldInput marks keys already held when the controller is created, so
// a debug key held across a scene rebuild does not count as a new press.
func WithHeldInput(in Input) Option {
	return func(c *Controller) {
		c.prevToggle = in.ToggleCollisions
		c.prevNext = in.ForceNextLevel
	}
}

// NewController binds a controller to its services. A missing binding or an
// invalid config is a configuration error and no controller is returned.
func NewController(cfg Config, deps Bindings, opts ...Option) (*Controller, error) {
	if err := checkBindings(deps); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:               cfg,
		classifier:        Classifier{FinishTag: cfg.FinishTag},
		body:              deps.Body,
		feedback:          deps.Feedback,
		levels:            deps.Levels,
		scheduler:         deps.Scheduler,
		state:             Alive,
		collisionsEnabled: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewLogger()
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}

	c.body.SetFreezeRotation(true)
	return c, nil
}

func checkBindings(deps Bindings) error {
	switch {
	case deps.Body == nil:
		return fmt.Errorf("%w: body", ErrMissingBinding)
	case deps.Feedback == nil:
		return fmt.Errorf("%w: feedback sink", ErrMissingBinding)
	case deps.Levels == nil:
		return fmt.Errorf("%w: level transitioner", ErrMissingBinding)
	case deps.Scheduler == nil:
		return fmt.Errorf("%w: scheduler", ErrMissingBinding)
	}
	return nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// CollisionsEnabled reports whether collision events are being handled.
// Only the debug toggle turns this off.
func (c *Controller) CollisionsEnabled() bool {
	return c.collisionsEnabled
}

// Pending returns the scheduled transition, if a terminal state was entered.
func (c *Controller) Pending() (PendingTransition, bool) {
	if c.pending == nil {
		return PendingTransition{}, false
	}
	return *c.pending, true
}

// Tick runs one frame. Thrust and rotation only apply while Alive; the debug
// path runs in every state when enabled.
func (c *Controller) Tick(dt float64, in Input) {
	if dt < 0 {
		dt = 0
	}

	if c.state == Alive {
		c.applyThrust(dt, in.Thrust)
		c.applyRotation(dt, in.RotateLeft, in.RotateRight)
	}

	if c.cfg.Debug {
		c.debugInputs(in)
	}
}

func (c *Controller) applyThrust(dt float64, held bool) {
	if !held {
		c.stopEngine()
		return
	}

	c.body.AddLocalForce(localUp.Mul(c.cfg.MainThrustPerSecond * dt))
	if !c.feedback.IsLoopPlaying() {
		c.feedback.PlayLoop(c.cfg.Clips.Engine)
	}
	if !c.feedback.IsParticlesPlaying(c.cfg.Emitters.Engine) {
		c.feedback.StartParticles(c.cfg.Emitters.Engine)
	}
}

// applyRotation lifts the rotation freeze for the duration of the manual
// rotation only. The flag is restored even if the body panics.
func (c *Controller) applyRotation(dt float64, left, right bool) {
	c.body.SetFreezeRotation(false)
	defer c.body.SetFreezeRotation(true)

	step := c.cfg.RotationThrustPerSecond * dt
	var angle float64
	if left {
		angle += step
	}
	if right {
		angle -= step
	}
	c.body.AddRotation(localForward.Mul(angle))
}

func (c *Controller) stopEngine() {
	if c.feedback.IsLoopPlaying() {
		c.feedback.StopLoop()
	}
	if c.feedback.IsParticlesPlaying(c.cfg.Emitters.Engine) {
		c.feedback.StopParticles(c.cfg.Emitters.Engine)
	}
}

// OnCollision handles a collision with an object carrying tag. Only the
// first terminal outcome has any effect.
func (c *Controller) OnCollision(tag string) {
	if c.state != Alive || !c.collisionsEnabled {
		return
	}

	outcome := c.classifier.Classify(tag)
	if c.publisher != nil {
		c.publisher.CollisionClassified(tag, outcome)
	}

	switch outcome {
	case Failure:
		c.enterTerminal(Dying, c.cfg.Clips.Failure, c.cfg.Emitters.Failure, FirstLevel)
	case Success:
		c.enterTerminal(Transcending, c.cfg.Clips.Success, c.cfg.Emitters.Success, NextLevel)
	}
}

func (c *Controller) enterTerminal(to State, clip ClipID, emitter EmitterID, target LevelSelector) {
	from := c.state
	c.state = to

	c.stopEngine()
	c.feedback.PlayOnce(clip)
	c.feedback.StartParticles(emitter)

	pending := PendingTransition{Target: target, Delay: c.feedback.ClipDuration(clip)}
	c.pending = &pending
	c.scheduler.After(pending.Delay, c.firePending)

	c.logger.Info(c.ctx, "vehicle state changed",
		"from", from.String(),
		"to", to.String(),
		"target_level", target.String(),
		"delay", pending.Delay,
	)
	if c.publisher != nil {
		c.publisher.StateChanged(from, to)
		c.publisher.TransitionScheduled(pending)
	}
}

func (c *Controller) firePending() {
	if c.fired || c.pending == nil {
		return
	}
	c.fired = true
	c.loadLevel(c.pending.Target)
}

func (c *Controller) loadLevel(target LevelSelector) {
	index := ResolveLevel(target, c.levels.CurrentLevelIndex(), c.levels.TotalLevelCount())
	c.logger.Debug(c.ctx, "loading level", "target", target.String(), "index", index)
	c.levels.LoadLevel(index)
}

func (c *Controller) debugInputs(in Input) {
	nextPressed := in.ForceNextLevel && !c.prevNext
	togglePressed := in.ToggleCollisions && !c.prevToggle
	c.prevNext = in.ForceNextLevel
	c.prevToggle = in.ToggleCollisions

	if nextPressed {
		c.loadLevel(NextLevel)
	} else if togglePressed {
		c.collisionsEnabled = !c.collisionsEnabled
		c.logger.Debug(c.ctx, "collisions toggled", "enabled", c.collisionsEnabled)
		if c.publisher != nil {
			c.publisher.CollisionsToggled(c.collisionsEnabled)
		}
	}
}
