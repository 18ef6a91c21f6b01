package contracts

import (
	"time"

	"github.com/XavierBriggs/Scoreboard/pkg/models"
)

// Match is one active two-team contest with a mutable score pair
type Match interface {
	// GetHomeTeam returns the home side
	GetHomeTeam() models.Team

	// GetAwayTeam returns the away side
	GetAwayTeam() models.Team

	// GetScore returns the current score pair
	GetScore() models.Score

	// UpdateScore applies a new score pair if it is a legal single-team transition.
	// The match is left untouched on error.
	UpdateScore(newHome, newAway int) error

	// GetSummary renders the match for display
	GetSummary() string

	// GetLastUpdated returns when the match was created or last accepted a score
	GetLastUpdated() time.Time
}

// EventSink receives registry mutations in the order they were applied.
// Enqueue is called while the registry is locked and must not block.
type EventSink interface {
	Enqueue(event models.MatchEvent)
}
