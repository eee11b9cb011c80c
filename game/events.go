package game

import (
	"time"

	"github.com/cardroom/holdem/deck"
)

// EventType identifies a game event
type EventType string

const (
	EventTypeHandStarted    EventType = "hand_started"
	EventTypeActionApplied  EventType = "action_applied"
	EventTypeStreetAdvanced EventType = "street_advanced"
	EventTypeHandCompleted  EventType = "hand_completed"
)

func (et EventType) String() string { return string(et) }

// Event is a discrete notification from the engine. The orchestrator
// subscribes to these to drive persistence and broadcast; the engine has
// no knowledge of how or whether they are delivered externally.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartedEvent is published when a new hand begins
type HandStartedEvent struct {
	HandID     string
	Number     uint64
	TableID    string
	DealerSeat int
	SmallBlind int
	BigBlind   int
	Ante       int
	Players    []PlayerView
	timestamp  time.Time
}

func (e HandStartedEvent) EventType() EventType { return EventTypeHandStarted }
func (e HandStartedEvent) Timestamp() time.Time { return e.timestamp }

// ActionAppliedEvent is published after every successful player action
type ActionAppliedEvent struct {
	HandID    string
	TableID   string
	Result    ActionResult
	timestamp time.Time
}

func (e ActionAppliedEvent) EventType() EventType { return EventTypeActionApplied }
func (e ActionAppliedEvent) Timestamp() time.Time { return e.timestamp }

// StreetAdvancedEvent is published when the hand moves to a new street
type StreetAdvancedEvent struct {
	HandID    string
	TableID   string
	Street    Street
	Board     []deck.Card
	timestamp time.Time
}

func (e StreetAdvancedEvent) EventType() EventType { return EventTypeStreetAdvanced }
func (e StreetAdvancedEvent) Timestamp() time.Time { return e.timestamp }

// HandCompletedEvent is published once per hand after settlement
type HandCompletedEvent struct {
	HandID    string
	TableID   string
	Record    *HandRecord
	timestamp time.Time
}

func (e HandCompletedEvent) EventType() EventType { return EventTypeHandCompleted }
func (e HandCompletedEvent) Timestamp() time.Time { return e.timestamp }

// Subscriber receives engine events
type Subscriber interface {
	OnEvent(event Event)
}

// Bus fans events out to subscribers in subscription order, on the
// caller's goroutine. The engine performs no I/O; slow subscribers slow
// the caller.
type Bus struct {
	subscribers []Subscriber
}

// NewBus creates an empty event bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe adds a subscriber
func (b *Bus) Subscribe(s Subscriber) {
	b.subscribers = append(b.subscribers, s)
}

// Unsubscribe removes a subscriber
func (b *Bus) Unsubscribe(s Subscriber) {
	for i, sub := range b.subscribers {
		if sub == s {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Publish delivers an event to every subscriber
func (b *Bus) Publish(event Event) {
	for _, s := range b.subscribers {
		s.OnEvent(event)
	}
}

// SubscriberFunc adapts a function to the Subscriber interface
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnEvent(event Event) { f(event) }
