package football

import (
	"time"

	"github.com/XavierBriggs/Scoreboard/pkg/contracts"
	"github.com/XavierBriggs/Scoreboard/pkg/models"
)

// Module implements the SportModule interface for football
type Module struct {
	config *Config
}

// Option customizes a Module
type Option func(*Module)

// WithClock overrides the clock used to stamp matches
func WithClock(clock func() time.Time) Option {
	return func(m *Module) {
		m.config.Clock = clock
	}
}

// NewModule creates a new football sport module
func NewModule(opts ...Option) *Module {
	m := &Module{
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetSportKey returns the sport identifier
func (m *Module) GetSportKey() models.Sport {
	return m.config.SportKey
}

// GetDisplayName returns the human-readable name
func (m *Module) GetDisplayName() string {
	return m.config.DisplayName
}

// NewMatch builds a football match between two teams
func (m *Module) NewMatch(home, away models.Team) (contracts.Match, error) {
	match, err := newMatch(home, away, m.config)
	if err != nil {
		return nil, err
	}
	return match, nil
}
