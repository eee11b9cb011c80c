package tournament

import "time"

// EventType identifies a tournament lifecycle event
type EventType string

const (
	EventTypeStarted          EventType = "tournament_started"
	EventTypeLevelAdvanced    EventType = "level_advanced"
	EventTypePlayerEliminated EventType = "player_eliminated"
	EventTypeRebuyProcessed   EventType = "rebuy_processed"
	EventTypeAddonProcessed   EventType = "addon_processed"
	EventTypeFinalTable       EventType = "final_table"
	EventTypeCompleted        EventType = "tournament_completed"
	EventTypeCancelled        EventType = "tournament_cancelled"
	EventTypePaused           EventType = "tournament_paused"
	EventTypeResumed          EventType = "tournament_resumed"
)

func (et EventType) String() string { return string(et) }

// Event is a discrete lifecycle notification. The orchestrator
// subscribes to drive persistence and broadcast; the engine never
// blocks on delivery.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// StartedEvent is published when the tournament begins play
type StartedEvent struct {
	TournamentID string
	Entrants     int
	Tables       int
	Level        BlindLevel
	timestamp    time.Time
}

func (e StartedEvent) EventType() EventType { return EventTypeStarted }
func (e StartedEvent) Timestamp() time.Time { return e.timestamp }

// LevelAdvancedEvent is published each time the blind timer expires
type LevelAdvancedEvent struct {
	TournamentID string
	Level        int
	Blinds       BlindLevel
	timestamp    time.Time
}

func (e LevelAdvancedEvent) EventType() EventType { return EventTypeLevelAdvanced }
func (e LevelAdvancedEvent) Timestamp() time.Time { return e.timestamp }

// PlayerEliminatedEvent records a finishing position and any payout
type PlayerEliminatedEvent struct {
	TournamentID string
	PlayerID     string
	Position     int
	Payout       int
	Remaining    int
	timestamp    time.Time
}

func (e PlayerEliminatedEvent) EventType() EventType { return EventTypePlayerEliminated }
func (e PlayerEliminatedEvent) Timestamp() time.Time { return e.timestamp }

// RebuyProcessedEvent is published after a successful rebuy
type RebuyProcessedEvent struct {
	TournamentID string
	PlayerID     string
	Chips        int
	PrizePool    int
	timestamp    time.Time
}

func (e RebuyProcessedEvent) EventType() EventType { return EventTypeRebuyProcessed }
func (e RebuyProcessedEvent) Timestamp() time.Time { return e.timestamp }

// AddonProcessedEvent is published after a successful addon
type AddonProcessedEvent struct {
	TournamentID string
	PlayerID     string
	Chips        int
	PrizePool    int
	timestamp    time.Time
}

func (e AddonProcessedEvent) EventType() EventType { return EventTypeAddonProcessed }
func (e AddonProcessedEvent) Timestamp() time.Time { return e.timestamp }

// FinalTableEvent is published when the field collapses to one table
type FinalTableEvent struct {
	TournamentID string
	TableID      string
	Players      []string
	timestamp    time.Time
}

func (e FinalTableEvent) EventType() EventType { return EventTypeFinalTable }
func (e FinalTableEvent) Timestamp() time.Time { return e.timestamp }

// CompletedEvent is published once, when a single player remains
type CompletedEvent struct {
	TournamentID string
	WinnerID     string
	Payout       int
	PrizePool    int
	timestamp    time.Time
}

func (e CompletedEvent) EventType() EventType { return EventTypeCompleted }
func (e CompletedEvent) Timestamp() time.Time { return e.timestamp }

// CancelledEvent is published when the tournament is cancelled
type CancelledEvent struct {
	TournamentID string
	timestamp    time.Time
}

func (e CancelledEvent) EventType() EventType { return EventTypeCancelled }
func (e CancelledEvent) Timestamp() time.Time { return e.timestamp }

// PausedEvent is published when the level timer is suspended
type PausedEvent struct {
	TournamentID string
	Remaining    time.Duration
	timestamp    time.Time
}

func (e PausedEvent) EventType() EventType { return EventTypePaused }
func (e PausedEvent) Timestamp() time.Time { return e.timestamp }

// ResumedEvent is published when the level timer restarts
type ResumedEvent struct {
	TournamentID string
	Remaining    time.Duration
	timestamp    time.Time
}

func (e ResumedEvent) EventType() EventType { return EventTypeResumed }
func (e ResumedEvent) Timestamp() time.Time { return e.timestamp }

// Subscriber receives tournament events
type Subscriber interface {
	OnEvent(event Event)
}

// Bus fans events out to subscribers in subscription order, on the
// caller's goroutine.
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
