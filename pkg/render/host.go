package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-boost/pkg/vehicle"
	"github.com/opd-ai/go-boost/pkg/world"
)

// DefaultHoldWindow is how long a key counts as held after its last press
// or auto-repeat event.
const DefaultHoldWindow = 150 * time.Millisecond

type action int

const (
	actThrust action = iota
	actRotateLeft
	actRotateRight
	actToggleCollisions
	actForceNextLevel
	actCount
)

// TerminalHost runs the world in a tcell screen. Terminals report key
// presses and auto-repeats but no releases, so a key is treated as held
// while its events keep arriving within the hold window.
type TerminalHost struct {
	screen   tcell.Screen
	renderer *TerminalRenderer
	hold     time.Duration
	now      func() time.Time
	lastSeen [actCount]time.Time
	events   chan tcell.Event
	quit     bool
}

// NewTerminalHost creates a host drawing on an initialised screen
func NewTerminalHost(screen tcell.Screen, hold time.Duration) *TerminalHost {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	h := &TerminalHost{
		screen: screen,
		hold:   hold,
		now:    time.Now,
		events: make(chan tcell.Event, 64),
	}
	h.resize()
	return h
}

// Renderer returns the renderer drawing the frames
func (h *TerminalHost) Renderer() *TerminalRenderer {
	return h.renderer
}

func (h *TerminalHost) resize() {
	w, ht := h.screen.Size()
	if ht > 1 {
		ht--
	}
	h.renderer = NewTerminalRenderer(h.screen, w, ht, 1)
}

// HandleEvent records a key event or reacts to a resize
func (h *TerminalHost) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
			h.quit = true
			return
		}
		if a, ok := actionFor(ev); ok {
			h.lastSeen[a] = h.now()
		} else if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			h.quit = true
		}
	}
}

func actionFor(ev *tcell.EventKey) (action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return actThrust, true
	case tcell.KeyLeft:
		return actRotateLeft, true
	case tcell.KeyRight:
		return actRotateRight, true
	case tcell.KeyRune:
	default:
		return 0, false
	}

	switch ev.Rune() {
	case ' ', 'w', 'W':
		return actThrust, true
	case 'a', 'A':
		return actRotateLeft, true
	case 'd', 'D':
		return actRotateRight, true
	case 'c', 'C':
		return actToggleCollisions, true
	case 'l', 'L':
		return actForceNextLevel, true
	}
	return 0, false
}

// Input returns the keys held at the current time
func (h *TerminalHost) Input() vehicle.Input {
	now := h.now()
	held := func(a action) bool {
		t := h.lastSeen[a]
		return !t.IsZero() && now.Sub(t) <= h.hold
	}
	return vehicle.Input{
		Thrust:           held(actThrust),
		RotateLeft:       held(actRotateLeft),
		RotateRight:      held(actRotateRight),
		ToggleCollisions: held(actToggleCollisions),
		ForceNextLevel:   held(actForceNextLevel),
	}
}

// Quit reports whether the player asked to leave
func (h *TerminalHost) Quit() bool {
	return h.quit
}

// pollInput drains pending events without blocking and returns the held keys
func (h *TerminalHost) pollInput() vehicle.Input {
	for {
		select {
		case ev := <-h.events:
			h.HandleEvent(ev)
		default:
			return h.Input()
		}
	}
}

func (h *TerminalHost) pollEvents(ctx context.Context) {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case h.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Run plays w until the player quits or ctx is cancelled. The caller owns
// the screen and calls Fini afterwards, which also stops the event poller.
func (h *TerminalHost) Run(ctx context.Context, w *world.World) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go h.pollEvents(ctx)

	err := w.Run(ctx, h.pollInput, func(snap world.Snapshot) bool {
		h.renderer.FitBounds(snap.Bounds)
		Draw(h.renderer, snap)
		return !h.quit
	})
	if h.quit {
		return nil
	}
	return err
}
