package engo

import (
	"testing"

	"github.com/opd-ai/go-boost/pkg/vehicle"
)

func TestInputSystem_Update(t *testing.T) {
	tests := []struct {
		name    string
		buttons fakeButtons
		want    vehicle.Input
	}{
		{"nothing held", fakeButtons{}, vehicle.Input{}},
		{"thrust", fakeButtons{ButtonThrust: true}, vehicle.Input{Thrust: true}},
		{"both rotations", fakeButtons{ButtonRotateLeft: true, ButtonRotateRight: true},
			vehicle.Input{RotateLeft: true, RotateRight: true}},
		{"debug keys", fakeButtons{ButtonToggleCollisions: true, ButtonNextLevel: true},
			vehicle.Input{ToggleCollisions: true, ForceNextLevel: true}},
		{"zoom is not vehicle input", fakeButtons{ButtonZoomIn: true}, vehicle.Input{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := NewInputSystem(tt.buttons)
			is.Update(0.016)
			if got := is.Input(); got != tt.want {
				t.Errorf("Input() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInputSystem_FollowsReleases(t *testing.T) {
	buttons := fakeButtons{ButtonThrust: true}
	is := NewInputSystem(buttons)

	is.Update(0.016)
	buttons[ButtonThrust] = false
	is.Update(0.016)

	if is.Input().Thrust {
		t.Error("released thrust should not be held")
	}
}

func TestInputSystem_QuitLatches(t *testing.T) {
	buttons := fakeButtons{ButtonQuit: true}
	is := NewInputSystem(buttons)

	if is.QuitRequested() {
		t.Fatal("quit before any update")
	}
	is.Update(0.016)
	buttons[ButtonQuit] = false
	is.Update(0.016)

	if !is.QuitRequested() {
		t.Error("quit should stay requested after the key is released")
	}
}
