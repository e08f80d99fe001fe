// pkg/render/engo/scene.go
package engo

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-boost/pkg/event"
	"github.com/opd-ai/go-boost/pkg/logging"
	"github.com/opd-ai/go-boost/pkg/render"
	"github.com/opd-ai/go-boost/pkg/vehicle"
	"github.com/opd-ai/go-boost/pkg/world"
)

// System priorities, highest runs first
const (
	priorityInput      = 40
	priorityCamera     = 30
	prioritySimulation = 20
	priorityParticles  = 10
	priorityHUD        = 5
)

// GameScene plays a world.World inside an engo window
type GameScene struct {
	ctx    context.Context
	world  *world.World
	logger *logging.Logger

	width    float32
	height   float32
	emitters vehicle.Emitters

	assets    *AssetManager
	input     *InputSystem
	camera    *CameraSystem
	renderer  *LevelRenderer
	particles *ParticleSystem
	hud       *HUDSystem

	subscriptions []*event.Subscription
	reloaded      bool

	// exit closes the window; replaced in tests
	exit func()
}

// NewGameScene creates a scene for w drawn into a width x height window
func NewGameScene(ctx context.Context, w *world.World, emitters vehicle.Emitters, width, height float32, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &GameScene{
		ctx:      ctx,
		world:    w,
		logger:   logger,
		width:    width,
		height:   height,
		emitters: emitters,
		assets:   NewAssetManager(),
		exit:     engo.Exit,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "BoostScene"
}

// Preload is called before the scene starts (required by Engo). Sprites
// are generated, so there are no files to load.
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	ecsWorld, ok := u.(*ecs.World)
	if !ok {
		panic(fmt.Sprintf("unexpected updater %T", u))
	}

	SetupInputBindings()
	if err := scene.assets.LoadAssets(); err != nil {
		scene.logger.Error(scene.ctx, "Failed to load assets, using plain shapes", err)
	}

	renderSystem := &common.RenderSystem{}
	ecsWorld.AddSystem(renderSystem)
	scene.setupSystems(ecsWorld, renderSystem, nil)

	engo.Mailbox.Listen("WindowResizeMessage", func(msg engo.Message) {
		resize, ok := msg.(engo.WindowResizeMessage)
		if !ok {
			return
		}
		scene.camera.SetViewSize(float64(resize.NewWidth), float64(resize.NewHeight))
		scene.hud.viewWidth = float32(resize.NewWidth)
	})
}

// setupSystems wires the game systems into ecsWorld. Sprites go to sink and
// buttons are read from buttons, or engo.Input when nil.
func (scene *GameScene) setupSystems(ecsWorld *ecs.World, sink SpriteSink, buttons ButtonSource) {
	scene.input = NewInputSystem(buttons)
	scene.camera = NewCameraSystem(float64(scene.width), float64(scene.height), scene.input.buttons)
	scene.renderer = NewLevelRenderer(sink, scene.camera, scene.assets)
	scene.particles = NewParticleSystem(sink, scene.camera, scene.assets, scene.emitters, uint64(scene.world.Tick())+1)
	scene.hud = NewHUDSystem(scene.ctx, sink, scene.width, scene.logger)

	ecsWorld.AddSystem(&prioritized{scene.input, priorityInput})
	ecsWorld.AddSystem(&prioritized{scene.camera, priorityCamera})
	ecsWorld.AddSystem(&prioritized{&simulationSystem{scene}, prioritySimulation})
	ecsWorld.AddSystem(&prioritized{scene.particles, priorityParticles})
	ecsWorld.AddSystem(&prioritized{scene.hud, priorityHUD})

	scene.subscriptions = append(scene.subscriptions,
		scene.world.Bus().Subscribe(event.LevelLoaded, func(event.Event) {
			scene.reloaded = true
		}),
	)

	// draw the first frame before any step
	scene.draw(scene.world.Snapshot())
	scene.camera.Snap()
}

func (scene *GameScene) draw(snap world.Snapshot) {
	scene.camera.SetTarget(snap.Vehicle.Position)
	if scene.reloaded {
		scene.reloaded = false
		scene.camera.Snap()
		scene.particles.Reset()
	}
	render.Draw(scene.renderer, snap)
	scene.particles.Track(snap.Vehicle.Position, snap.Vehicle.Heading, snap.Vehicle.Emitters)
	scene.hud.SetStatus(snap.Status)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	for _, sub := range scene.subscriptions {
		sub.Cancel()
	}
	scene.subscriptions = nil
	scene.logger.Info(scene.ctx, "Scene exited", "tick", scene.world.Tick())
}

// simulationSystem steps the world once per frame and pushes the result to
// the renderers
type simulationSystem struct {
	scene *GameScene
}

func (s *simulationSystem) Remove(basic ecs.BasicEntity) {}

func (s *simulationSystem) Update(dt float32) {
	if s.scene.input.QuitRequested() || s.scene.ctx.Err() != nil {
		s.scene.exit()
		return
	}
	s.scene.world.Step(float64(dt), s.scene.input.Input())
	s.scene.draw(s.scene.world.Snapshot())
}

// prioritized fixes the update order of a system
type prioritized struct {
	ecs.System
	priority int
}

func (p *prioritized) Priority() int {
	return p.priority
}
