package football

import (
	"fmt"
	"time"

	"github.com/XavierBriggs/Scoreboard/pkg/models"
)

// Match is a football match between two distinct teams
type Match struct {
	homeTeam      models.Team
	homeTeamScore int

	awayTeam      models.Team
	awayTeamScore int

	lastUpdated time.Time

	config *Config
}

// NewMatch creates a 0-0 football match with the default configuration
func NewMatch(home, away models.Team) (*Match, error) {
	return newMatch(home, away, DefaultConfig())
}

func newMatch(home, away models.Team, config *Config) (*Match, error) {
	if err := ValidateContenders(home, away); err != nil {
		return nil, err
	}

	return &Match{
		homeTeam:      home,
		homeTeamScore: config.InitialScore,
		awayTeam:      away,
		awayTeamScore: config.InitialScore,
		lastUpdated:   config.Clock(),
		config:        config,
	}, nil
}

// GetHomeTeam returns the home side
func (m *Match) GetHomeTeam() models.Team {
	return m.homeTeam
}

// GetAwayTeam returns the away side
func (m *Match) GetAwayTeam() models.Team {
	return m.awayTeam
}

// GetScore returns the current score pair
func (m *Match) GetScore() models.Score {
	return models.Score{Home: m.homeTeamScore, Away: m.awayTeamScore}
}

// UpdateScore moves the match to a new score when exactly one team scored
// or had a goal cancelled since the last accepted score
func (m *Match) UpdateScore(newHome, newAway int) error {
	if newHome < 0 || newAway < 0 {
		return &models.NegativeScoreError{NewHome: newHome, NewAway: newAway}
	}

	transition := Transition{
		From:         m.GetScore(),
		To:           models.Score{Home: newHome, Away: newAway},
		InitialScore: m.config.InitialScore,
	}
	if violations := transition.Violations(); len(violations) > 0 {
		return &models.ScoreTransitionError{Violations: violations}
	}

	m.homeTeamScore = newHome
	m.awayTeamScore = newAway
	m.lastUpdated = m.config.Clock()
	return nil
}

// GetSummary renders the match for display
func (m *Match) GetSummary() string {
	return fmt.Sprintf("Game [homeTeam=%s, homeTeamScore=%d, awayTeam=%s, awayTeamScore=%d]",
		m.homeTeam, m.homeTeamScore, m.awayTeam, m.awayTeamScore)
}

// GetLastUpdated returns when the match was created or last accepted a score
func (m *Match) GetLastUpdated() time.Time {
	return m.lastUpdated
}

// Equal reports whether both matches are between the same home and away teams.
// Scores are not compared.
func (m *Match) Equal(other *Match) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.homeTeam == other.homeTeam && m.awayTeam == other.awayTeam
}

// String implements fmt.Stringer
func (m *Match) String() string {
	return m.GetSummary()
}
