package level

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-boost/pkg/logging"
	"github.com/opd-ai/go-boost/pkg/vehicle"
)

var _ vehicle.LevelTransitioner = (*Manager)(nil)

func newTestManager(t *testing.T, cfg BreakerConfig) *Manager {
	t.Helper()
	m, err := NewManager(context.Background(), DefaultLevels(), cfg, logging.Discard())
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m
}

func TestNewManager_EmptyList_ReturnsError(t *testing.T) {
	_, err := NewManager(context.Background(), nil, DefaultBreakerConfig(), logging.Discard())
	if !errors.Is(err, ErrNoLevels) {
		t.Errorf("NewManager(nil) error = %v, want ErrNoLevels", err)
	}
}

func TestManager_Load_ValidIndex_UpdatesCurrent(t *testing.T) {
	m := newTestManager(t, DefaultBreakerConfig())
	var built []string
	m.OnLoad(func(index int, def Definition) error {
		built = append(built, def.Name)
		return nil
	})

	if err := m.Load(2); err != nil {
		t.Fatalf("Load(2) error = %v", err)
	}
	if m.CurrentLevelIndex() != 2 {
		t.Errorf("CurrentLevelIndex() = %d, want 2", m.CurrentLevelIndex())
	}
	if m.Current().Name != "Canyon" {
		t.Errorf("Current().Name = %q, want Canyon", m.Current().Name)
	}
	if len(built) != 1 || built[0] != "Canyon" {
		t.Errorf("builder calls = %v", built)
	}
	if m.TotalLevelCount() != 3 {
		t.Errorf("TotalLevelCount() = %d, want 3", m.TotalLevelCount())
	}
}

func TestManager_Load_OutOfRange_KeepsCurrent(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"past end", 3},
		{"far past end", 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t, DefaultBreakerConfig())
			err := m.Load(tt.index)
			if !errors.Is(err, ErrLevelOutOfRange) {
				t.Errorf("Load(%d) error = %v, want ErrLevelOutOfRange", tt.index, err)
			}
			if m.CurrentLevelIndex() != 0 {
				t.Errorf("CurrentLevelIndex() = %d, want 0", m.CurrentLevelIndex())
			}
		})
	}
}

func TestManager_Load_BuilderFails_KeepsCurrent(t *testing.T) {
	m := newTestManager(t, DefaultBreakerConfig())
	errBuild := errors.New("scene build failed")
	m.OnLoad(func(int, Definition) error { return errBuild })

	m.LoadLevel(1)

	if m.CurrentLevelIndex() != 0 {
		t.Errorf("CurrentLevelIndex() = %d, want 0 after failed build", m.CurrentLevelIndex())
	}
	if err := m.Load(1); !errors.Is(err, errBuild) {
		t.Errorf("Load(1) error = %v, want wrapped build error", err)
	}
}

func TestManager_Load_ConsecutiveFailures_TripsBreaker(t *testing.T) {
	cfg := BreakerConfig{
		MaxRequests:         1,
		Interval:            time.Minute,
		Timeout:             time.Minute,
		MaxConsecutiveFails: 2,
	}
	m := newTestManager(t, cfg)
	calls := 0
	m.OnLoad(func(int, Definition) error {
		calls++
		return errors.New("broken asset")
	})

	for i := 0; i < 2; i++ {
		_ = m.Load(1)
	}
	if m.BreakerState() != gobreaker.StateOpen {
		t.Fatalf("BreakerState() = %v, want open", m.BreakerState())
	}

	err := m.Load(1)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Load() with open breaker error = %v, want ErrOpenState", err)
	}
	if calls != 2 {
		t.Errorf("builder called %d times, want 2", calls)
	}
}

func TestManager_Definition_Bounds(t *testing.T) {
	m := newTestManager(t, DefaultBreakerConfig())

	if _, err := m.Definition(1); err != nil {
		t.Errorf("Definition(1) error = %v", err)
	}
	if _, err := m.Definition(5); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("Definition(5) error = %v, want ErrLevelOutOfRange", err)
	}
}

func TestDefaultLevels_EachHasFinishAndLaunchPad(t *testing.T) {
	for _, def := range DefaultLevels() {
		var finish, pad int
		for _, o := range def.Obstacles {
			switch o.Tag {
			case TagFinish:
				finish++
			case TagLaunchPad:
				pad++
			}
		}
		if finish != 1 || pad != 1 {
			t.Errorf("%s: finish=%d pad=%d, want one of each", def.Name, finish, pad)
		}
		if !def.Bounds().Contains(def.Spawn().Vec2()) {
			t.Errorf("%s: spawn %v outside bounds", def.Name, def.Spawn())
		}
	}
}

func TestObstacle_Rect_CentredOnPosition(t *testing.T) {
	r := Obstacle{Tag: TagTerrain, X: 4, Y: -2, Width: 6, Height: 2}.Rect()
	if r.Min().X() != 1 || r.Min().Y() != -3 || r.Max().X() != 7 || r.Max().Y() != -1 {
		t.Errorf("Rect() = min %v max %v", r.Min(), r.Max())
	}
}
