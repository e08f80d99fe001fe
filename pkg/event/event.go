// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-boost/pkg/vehicle"
)

// Type represents the type of event
type Type string

// Event types published by the world and the vehicle controller
const (
	StateChanged        Type = "state_changed"
	CollisionClassified Type = "collision_classified"
	TransitionScheduled Type = "transition_scheduled"
	CollisionsToggled   Type = "collisions_toggled"
	LevelLoaded         Type = "level_loaded"
	LevelLoadFailed     Type = "level_load_failed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:   id,
		Type: eventType,
		Cancel: func() {
			b.Unsubscribe(eventType, id)
		},
	}
}

// Unsubscribe removes the handler registered under id
func (b *Bus) Unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// publishing goroutine, in subscription order.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := append([]registration(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// StateEvent reports a lifecycle transition
type StateEvent struct {
	BaseEvent
	From vehicle.State
	To   vehicle.State
}

// CollisionEvent reports how a collision was classified
type CollisionEvent struct {
	BaseEvent
	Tag     string
	Outcome vehicle.Outcome
}

// TransitionEvent reports a scheduled level load
type TransitionEvent struct {
	BaseEvent
	Pending vehicle.PendingTransition
}

// ToggleEvent reports the debug collision toggle
type ToggleEvent struct {
	BaseEvent
	Enabled bool
}

// LevelEvent reports a level load or a failed one
type LevelEvent struct {
	BaseEvent
	Index int
	Name  string
	Err   error
}

// NewLevelEvent creates a level event
func NewLevelEvent(eventType Type, source interface{}, index int, name string, err error) *LevelEvent {
	return &LevelEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Index:     index,
		Name:      name,
		Err:       err,
	}
}

// VehiclePublisher forwards controller notifications to a Bus.
// It implements vehicle.Publisher.
type VehiclePublisher struct {
	bus    *Bus
	source interface{}
}

// NewVehiclePublisher creates a publisher that tags events with source
func NewVehiclePublisher(bus *Bus, source interface{}) *VehiclePublisher {
	return &VehiclePublisher{bus: bus, source: source}
}

func (p *VehiclePublisher) base(t Type) BaseEvent {
	return BaseEvent{EventType: t, Source: p.source}
}

// StateChanged implements vehicle.Publisher
func (p *VehiclePublisher) StateChanged(from, to vehicle.State) {
	p.bus.Publish(&StateEvent{BaseEvent: p.base(StateChanged), From: from, To: to})
}

// CollisionClassified implements vehicle.Publisher
func (p *VehiclePublisher) CollisionClassified(tag string, outcome vehicle.Outcome) {
	p.bus.Publish(&CollisionEvent{BaseEvent: p.base(CollisionClassified), Tag: tag, Outcome: outcome})
}

// TransitionScheduled implements vehicle.Publisher
func (p *VehiclePublisher) TransitionScheduled(pending vehicle.PendingTransition) {
	p.bus.Publish(&TransitionEvent{BaseEvent: p.base(TransitionScheduled), Pending: pending})
}

// CollisionsToggled implements vehicle.Publisher
func (p *VehiclePublisher) CollisionsToggled(enabled bool) {
	p.bus.Publish(&ToggleEvent{BaseEvent: p.base(CollisionsToggled), Enabled: enabled})
}
