// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-boost/pkg/vehicle"
)

// Button names registered with engo.Input.
const (
	ButtonThrust           = "thrust"
	ButtonRotateLeft       = "rotateLeft"
	ButtonRotateRight      = "rotateRight"
	ButtonToggleCollisions = "toggleCollisions"
	ButtonNextLevel        = "nextLevel"
	ButtonQuit             = "quit"
	ButtonZoomIn           = "zoomIn"
	ButtonZoomOut          = "zoomOut"
	ButtonResetZoom        = "resetZoom"
)

// ButtonSource reports whether a named button is held.
type ButtonSource interface {
	Down(name string) bool
}

type engoButtons struct{}

func (engoButtons) Down(name string) bool {
	return engo.Input.Button(name).Down()
}

// InputSystem samples the held buttons once per frame into a vehicle.Input.
// Edge detection for the debug keys happens in the controller, so only the
// held state is recorded here.
type InputSystem struct {
	buttons ButtonSource
	current vehicle.Input
	quit    bool
}

// NewInputSystem creates an input system reading from buttons, or from
// engo.Input when buttons is nil.
func NewInputSystem(buttons ButtonSource) *InputSystem {
	if buttons == nil {
		buttons = engoButtons{}
	}
	return &InputSystem{buttons: buttons}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples the buttons
func (is *InputSystem) Update(dt float32) {
	is.current = vehicle.Input{
		Thrust:           is.buttons.Down(ButtonThrust),
		RotateLeft:       is.buttons.Down(ButtonRotateLeft),
		RotateRight:      is.buttons.Down(ButtonRotateRight),
		ToggleCollisions: is.buttons.Down(ButtonToggleCollisions),
		ForceNextLevel:   is.buttons.Down(ButtonNextLevel),
	}
	if is.buttons.Down(ButtonQuit) {
		is.quit = true
	}
}

// Input returns the snapshot taken by the last Update.
func (is *InputSystem) Input() vehicle.Input {
	return is.current
}

// QuitRequested reports whether the quit button has been pressed.
func (is *InputSystem) QuitRequested() bool {
	return is.quit
}

// SetupInputBindings registers the game's key bindings
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonThrust, engo.KeySpace, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonRotateLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonRotateRight, engo.KeyD, engo.KeyArrowRight)

	engo.Input.RegisterButton(ButtonToggleCollisions, engo.KeyC)
	engo.Input.RegisterButton(ButtonNextLevel, engo.KeyL)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape)

	engo.Input.RegisterButton(ButtonZoomIn, engo.KeyEquals)
	engo.Input.RegisterButton(ButtonZoomOut, engo.KeyDash)
	engo.Input.RegisterButton(ButtonResetZoom, engo.KeyR)
}
