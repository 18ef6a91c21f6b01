package football

import (
	"time"

	"github.com/XavierBriggs/Scoreboard/pkg/models"
)

// Config contains football-specific match configuration
type Config struct {
	// Sport identification
	SportKey    models.Sport
	DisplayName string

	// Score every match starts with
	InitialScore int

	// Clock used to stamp matches, time.Now unless overridden
	Clock func() time.Time
}

// DefaultConfig returns the football configuration
func DefaultConfig() *Config {
	return &Config{
		SportKey:     models.SportFootball,
		DisplayName:  "Football",
		InitialScore: 0,
		Clock:        time.Now,
	}
}
