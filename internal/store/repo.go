package store

import (
	"context"
	"time"
)

// MasteryEventData captures a single mastery level-up.
type MasteryEventData struct {
	Player       string
	TrainingID   string
	Difficulty   int
	TimePressure int
	FromLevel    int
	ToLevel      int
	SessionID    string
}

// MasteryEvent is a stored level-up.
type MasteryEvent struct {
	ID        int64
	PlayerKey string
	MasteryEventData
	CreatedAt time.Time
}

// EventRepo provides append and query access to mastery events.
type EventRepo interface {
	// AppendMasteryEvent records a level-up.
	AppendMasteryEvent(ctx context.Context, data MasteryEventData) error

	// RecentMasteryEvents returns the newest events first. An empty player
	// returns events of all players. limit <= 0 means no limit.
	RecentMasteryEvents(ctx context.Context, player string, limit int) ([]MasteryEvent, error)
}
