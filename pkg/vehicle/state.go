package vehicle

// State is the vehicle lifecycle state.
type State int

const (
	Alive State = iota
	Dying
	Transcending
)

// String returns a lowercase name suitable for logs and events.
func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	case Transcending:
		return "transcending"
	default:
		return "unknown"
	}
}

// Terminal reports whether s has no outgoing transitions.
func (s State) Terminal() bool {
	return s == Dying || s == Transcending
}

// LevelSelector names the level a PendingTransition will load.
type LevelSelector int

const (
	FirstLevel LevelSelector = iota
	NextLevel
)

func (l LevelSelector) String() string {
	if l == NextLevel {
		return "next"
	}
	return "first"
}

// PendingTransition is a level load scheduled on entering a terminal state.
type PendingTransition struct {
	Target LevelSelector
	Delay  float64
}

// ResolveLevel turns a selector into a level index.
// NextLevel wraps past the last level back to 0.
func ResolveLevel(target LevelSelector, current, total int) int {
	if target == FirstLevel || total <= 0 {
		return 0
	}
	next := (current + 1) % total
	if next < 0 {
		next += total
	}
	return next
}
