package render

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-boost/pkg/config"
	"github.com/opd-ai/go-boost/pkg/logging"
	"github.com/opd-ai/go-boost/pkg/world"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestHost(t *testing.T) (*TerminalHost, tcell.SimulationScreen, *fakeClock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error = %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 12)

	clock := &fakeClock{t: time.Unix(1000, 0)}
	h := NewTerminalHost(screen, 100*time.Millisecond)
	h.now = clock.now
	return h, screen, clock
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestTerminalHost_RendererLeavesStatusRow(t *testing.T) {
	h, _, _ := newTestHost(t)
	if h.Renderer().width != 40 || h.Renderer().height != 11 {
		t.Errorf("renderer %dx%d, want 40x11", h.Renderer().width, h.Renderer().height)
	}
}

func TestTerminalHost_KeyMapping(t *testing.T) {
	tests := []struct {
		name  string
		ev    *tcell.EventKey
		check func(h *TerminalHost) bool
	}{
		{"space thrusts", key(tcell.KeyRune, ' '), func(h *TerminalHost) bool { return h.Input().Thrust }},
		{"up arrow thrusts", key(tcell.KeyUp, 0), func(h *TerminalHost) bool { return h.Input().Thrust }},
		{"a rotates left", key(tcell.KeyRune, 'a'), func(h *TerminalHost) bool { return h.Input().RotateLeft }},
		{"left arrow rotates left", key(tcell.KeyLeft, 0), func(h *TerminalHost) bool { return h.Input().RotateLeft }},
		{"d rotates right", key(tcell.KeyRune, 'D'), func(h *TerminalHost) bool { return h.Input().RotateRight }},
		{"c toggles collisions", key(tcell.KeyRune, 'c'), func(h *TerminalHost) bool { return h.Input().ToggleCollisions }},
		{"l skips level", key(tcell.KeyRune, 'l'), func(h *TerminalHost) bool { return h.Input().ForceNextLevel }},
		{"escape quits", key(tcell.KeyEscape, 0), func(h *TerminalHost) bool { return h.Quit() }},
		{"ctrl-c quits", key(tcell.KeyCtrlC, 0), func(h *TerminalHost) bool { return h.Quit() }},
		{"q quits", key(tcell.KeyRune, 'q'), func(h *TerminalHost) bool { return h.Quit() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := newTestHost(t)
			h.HandleEvent(tt.ev)
			if !tt.check(h) {
				t.Errorf("%s: expected effect not seen, input %+v", tt.name, h.Input())
			}
		})
	}
}

func TestTerminalHost_HoldWindow(t *testing.T) {
	h, _, clock := newTestHost(t)

	if h.Input().Thrust {
		t.Fatal("no key pressed yet")
	}

	h.HandleEvent(key(tcell.KeyRune, ' '))
	clock.advance(60 * time.Millisecond)
	if !h.Input().Thrust {
		t.Error("key should still count as held inside the window")
	}

	// an auto-repeat extends the hold
	h.HandleEvent(key(tcell.KeyRune, ' '))
	clock.advance(90 * time.Millisecond)
	if !h.Input().Thrust {
		t.Error("repeat should extend the hold")
	}

	clock.advance(20 * time.Millisecond)
	if h.Input().Thrust {
		t.Error("key should be released after the window")
	}
}

func TestTerminalHost_UnmappedKeyIgnored(t *testing.T) {
	h, _, _ := newTestHost(t)
	h.HandleEvent(key(tcell.KeyRune, 'z'))
	h.HandleEvent(key(tcell.KeyEnter, 0))

	if h.Quit() {
		t.Fatal("unmapped key should not quit")
	}
	in := h.Input()
	if in.Thrust || in.RotateLeft || in.RotateRight || in.ToggleCollisions || in.ForceNextLevel {
		t.Errorf("Input() = %+v, want nothing held", in)
	}
}

func TestTerminalHost_Resize(t *testing.T) {
	h, screen, _ := newTestHost(t)
	screen.SetSize(60, 20)
	h.HandleEvent(tcell.NewEventResize(60, 20))

	if h.Renderer().width != 60 || h.Renderer().height != 19 {
		t.Errorf("renderer %dx%d after resize, want 60x19", h.Renderer().width, h.Renderer().height)
	}
}

func TestTerminalHost_Run_QuitKeyStops(t *testing.T) {
	h, screen, _ := newTestHost(t)
	w, err := world.New(context.Background(), config.DefaultConfig(), world.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("world.New() error = %v", err)
	}

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Run(ctx, w); err != nil {
		t.Errorf("Run() error = %v, want nil after quit", err)
	}
	if w.Tick() == 0 {
		t.Error("world should have stepped at least once")
	}
}
