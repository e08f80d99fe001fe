package level

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-boost/pkg/logging"
)

// ErrLevelOutOfRange is returned when a load targets an index outside the
// level list.
var ErrLevelOutOfRange = errors.New("level index out of range")

// ErrNoLevels is returned by NewManager for an empty level list.
var ErrNoLevels = errors.New("no levels defined")

// LoadFunc builds the scene for a level. A returned error leaves the
// manager on its current level.
type LoadFunc func(index int, def Definition) error

// BreakerConfig tunes the circuit breaker guarding scene loads.
type BreakerConfig struct {
	MaxRequests         uint32        `json:"maxRequests"`
	Interval            time.Duration `json:"interval"`
	Timeout             time.Duration `json:"timeout"`
	MaxConsecutiveFails uint32        `json:"maxConsecutiveFails"`
}

// DefaultBreakerConfig returns the breaker settings used when none are set.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:         1,
		Interval:            time.Minute,
		Timeout:             5 * time.Second,
		MaxConsecutiveFails: 3,
	}
}

// Manager owns the ordered level list and the index of the active level.
// It implements vehicle.LevelTransitioner.
type Manager struct {
	defs    []Definition
	current int
	loader  LoadFunc
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
	ctx     context.Context
}

// NewManager creates a manager positioned on level 0. No scene is built
// until LoadLevel is called.
func NewManager(ctx context.Context, defs []Definition, cfg BreakerConfig, logger *logging.Logger) (*Manager, error) {
	if len(defs) == 0 {
		return nil, ErrNoLevels
	}
	if logger == nil {
		logger = logging.NewLogger()
	}
	if cfg.MaxConsecutiveFails == 0 {
		cfg.MaxConsecutiveFails = DefaultBreakerConfig().MaxConsecutiveFails
	}

	m := &Manager{
		defs:   append([]Definition(nil), defs...),
		logger: logger,
		ctx:    ctx,
	}

	settings := gobreaker.Settings{
		Name:        "level-loader",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxConsecutiveFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(ctx, "level loader breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	m.breaker = gobreaker.NewCircuitBreaker(settings)
	return m, nil
}

// OnLoad registers the scene builder.
func (m *Manager) OnLoad(fn LoadFunc) {
	m.loader = fn
}

// Load switches to level index, running the scene builder through the
// circuit breaker. The current index only changes when the build succeeds.
func (m *Manager) Load(index int) error {
	_, err := m.breaker.Execute(func() (interface{}, error) {
		if index < 0 || index >= len(m.defs) {
			return nil, fmt.Errorf("%w: %d of %d", ErrLevelOutOfRange, index, len(m.defs))
		}
		if m.loader != nil {
			if err := m.loader(index, m.defs[index]); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return logging.WrapError(err, "load level %d", index)
	}

	m.current = index
	m.logger.Info(m.ctx, "level loaded", "index", index, "name", m.defs[index].Name)
	return nil
}

// LoadLevel implements vehicle.LevelTransitioner. Failures are logged and
// the current level stays active.
func (m *Manager) LoadLevel(index int) {
	if err := m.Load(index); err != nil {
		m.logger.Error(m.ctx, "level load failed", err,
			"index", index,
			"breaker", m.breaker.State().String(),
		)
	}
}

// CurrentLevelIndex implements vehicle.LevelTransitioner.
func (m *Manager) CurrentLevelIndex() int {
	return m.current
}

// TotalLevelCount implements vehicle.LevelTransitioner.
func (m *Manager) TotalLevelCount() int {
	return len(m.defs)
}

// Current returns the active definition.
func (m *Manager) Current() Definition {
	return m.defs[m.current]
}

// Definition returns the definition at index.
func (m *Manager) Definition(index int) (Definition, error) {
	if index < 0 || index >= len(m.defs) {
		return Definition{}, fmt.Errorf("%w: %d of %d", ErrLevelOutOfRange, index, len(m.defs))
	}
	return m.defs[index], nil
}

// BreakerState returns the state of the load circuit breaker.
func (m *Manager) BreakerState() gobreaker.State {
	return m.breaker.State()
}
