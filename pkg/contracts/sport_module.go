package contracts

import (
	"github.com/XavierBriggs/Scoreboard/pkg/models"
)

// SportModule defines the interface for a sport-specific match variant
// This enables the scoreboard to support multiple sports dynamically
type SportModule interface {
	// GetSportKey returns the unique identifier for this sport (e.g., "football")
	GetSportKey() models.Sport

	// GetDisplayName returns the human-readable name (e.g., "Football")
	GetDisplayName() string

	// NewMatch builds a fresh 0-0 match between two teams
	NewMatch(home, away models.Team) (Match, error)
}

// MatchFactory builds the match variant for a sport tag
type MatchFactory interface {
	CreateMatch(homeID, awayID string, sport models.Sport) (Match, error)
}
