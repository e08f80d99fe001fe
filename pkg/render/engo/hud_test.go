package engo

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/opd-ai/go-boost/pkg/logging"
	"github.com/opd-ai/go-boost/pkg/vehicle"
	"github.com/opd-ai/go-boost/pkg/world"
)

func newTestHUD() (*HUDSystem, *fakeSink, *bytes.Buffer) {
	var buf bytes.Buffer
	sink := &fakeSink{}
	hud := NewHUDSystem(context.Background(), sink, 800, logging.NewLoggerWithWriter(&buf))
	return hud, sink, &buf
}

func TestHUDSystem_LevelPips(t *testing.T) {
	hud, _, _ := newTestHUD()

	hud.SetStatus(world.Status{LevelIndex: 1, LevelCount: 3, State: vehicle.Alive})
	hud.Update(0.016)

	if len(hud.pips) != 3 {
		t.Fatalf("expected 3 pips, got %d", len(hud.pips))
	}
	for i, pip := range hud.pips {
		want := hudPipOff
		if i == 1 {
			want = hudPipOn
		}
		if pip.Color != want {
			t.Errorf("pip %d color = %v, want %v", i, pip.Color, want)
		}
	}

	hud.SetStatus(world.Status{LevelIndex: 0, LevelCount: 2})
	hud.Update(0.016)
	if !hud.pips[2].Hidden {
		t.Error("pip beyond the level count should be hidden")
	}
}

func TestHUDSystem_StripFollowsState(t *testing.T) {
	tests := []struct {
		state vehicle.State
		want  interface{}
	}{
		{vehicle.Alive, hudAlive},
		{vehicle.Dying, hudDying},
		{vehicle.Transcending, hudTranscend},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			hud, _, _ := newTestHUD()
			hud.SetStatus(world.Status{State: tt.state, LevelCount: 1})
			hud.Update(0.016)
			if hud.strip.Color != tt.want {
				t.Errorf("strip color = %v, want %v", hud.strip.Color, tt.want)
			}
			if hud.strip.Width != 800 {
				t.Errorf("strip width = %v, want full view", hud.strip.Width)
			}
		})
	}
}

func TestHUDSystem_CountdownBar(t *testing.T) {
	hud, _, _ := newTestHUD()

	hud.SetStatus(world.Status{LevelCount: 3, Elapsed: 5})
	hud.Update(0.016)
	if hud.BarFraction() != -1 {
		t.Errorf("BarFraction() = %v, want -1 without a pending load", hud.BarFraction())
	}

	pending := &vehicle.PendingTransition{Target: vehicle.NextLevel, Delay: 2}
	steps := []struct {
		elapsed float64
		want    float64
	}{
		{10, 1},
		{11, 0.5},
		{13, 0},
	}
	for _, s := range steps {
		hud.SetStatus(world.Status{LevelCount: 3, Elapsed: s.elapsed, State: vehicle.Transcending, Pending: pending})
		hud.Update(0.016)
		if got := float64(hud.BarFraction()); math.Abs(got-s.want) > 1e-4 {
			t.Errorf("at %.0fs BarFraction() = %v, want %v", s.elapsed, got, s.want)
		}
	}
	if hud.bar.Color != hudTranscend {
		t.Errorf("next level bar color = %v", hud.bar.Color)
	}

	hud.SetStatus(world.Status{LevelCount: 3, Elapsed: 20, Pending: &vehicle.PendingTransition{Target: vehicle.FirstLevel, Delay: 1}})
	hud.Update(0.016)
	if hud.bar.Color != hudDying {
		t.Errorf("restart bar color = %v, want dying color", hud.bar.Color)
	}
	if hud.BarFraction() != 1 {
		t.Errorf("a new pending load should restart the bar, got %v", hud.BarFraction())
	}
}

func TestHUDSystem_CollisionsWarning(t *testing.T) {
	hud, _, _ := newTestHUD()

	hud.SetStatus(world.Status{Debug: true, CollisionsEnabled: true})
	hud.Update(0.016)
	if !hud.collisions.Hidden {
		t.Error("warning should be hidden while collisions are on")
	}

	hud.SetStatus(world.Status{Debug: true, CollisionsEnabled: false})
	hud.Update(0.016)
	if hud.collisions.Hidden {
		t.Error("warning should show while collisions are off")
	}
}

func TestHUDSystem_LogsStatusChangesOnce(t *testing.T) {
	hud, _, buf := newTestHUD()
	status := world.Status{LevelCount: 3, LevelName: "Lift Off", State: vehicle.Alive}

	hud.SetStatus(status)
	status.Tick = 5
	status.Elapsed = 1
	hud.SetStatus(status)
	status.State = vehicle.Dying
	hud.SetStatus(status)

	if n := strings.Count(buf.String(), "Status changed"); n != 2 {
		t.Errorf("logged %d status changes, want 2:\n%s", n, buf.String())
	}
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		name   string
		status world.Status
		want   string
	}{
		{
			"alive",
			world.Status{LevelIndex: 0, LevelCount: 3, LevelName: "Lift Off", State: vehicle.Alive},
			`level 1/3 "Lift Off": alive`,
		},
		{
			"pending",
			world.Status{LevelIndex: 2, LevelCount: 3, LevelName: "Canyon", State: vehicle.Transcending,
				Pending: &vehicle.PendingTransition{Target: vehicle.NextLevel, Delay: 2}},
			`level 3/3 "Canyon": transcending, loading next level`,
		},
		{
			"collisions off",
			world.Status{LevelCount: 1, LevelName: "x", State: vehicle.Alive, Debug: true},
			`level 1/1 "x": alive, collisions off`,
		},
		{
			"collisions off needs debug",
			world.Status{LevelCount: 1, LevelName: "x", State: vehicle.Alive},
			`level 1/1 "x": alive`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusText(tt.status); got != tt.want {
				t.Errorf("StatusText() = %q, want %q", got, tt.want)
			}
		})
	}
}
