package models

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by matches, factories and the registry.
// Typed errors below unwrap to one of these so callers can use errors.Is.
var (
	ErrInvalidContenders      = errors.New("invalid contenders")
	ErrNegativeScore          = errors.New("negative score")
	ErrIllegalScoreTransition = errors.New("illegal score transition")
	ErrUnsupportedSport       = errors.New("unsupported sport")
	ErrNoSuchMatch            = errors.New("no such match")
)

// NegativeScoreError reports a proposed score below zero
type NegativeScoreError struct {
	NewHome int
	NewAway int
}

func (e *NegativeScoreError) Error() string {
	return fmt.Sprintf("Error scores can't be negative, newHomeTeamScore: %d newAwayTeamScore: %d", e.NewHome, e.NewAway)
}

func (e *NegativeScoreError) Unwrap() error { return ErrNegativeScore }

// ScoreTransitionError collects every rule a single score update broke
type ScoreTransitionError struct {
	Violations []string
}

func (e *ScoreTransitionError) Error() string {
	return strings.Join(e.Violations, "; ")
}

func (e *ScoreTransitionError) Unwrap() error { return ErrIllegalScoreTransition }

// UnsupportedSportError is returned when no module is registered for a sport
type UnsupportedSportError struct {
	Sport Sport
}

func (e *UnsupportedSportError) Error() string {
	return fmt.Sprintf("Not supported Sport: %s", e.Sport)
}

func (e *UnsupportedSportError) Unwrap() error { return ErrUnsupportedSport }

// MatchNotFoundError names a composite key that is not in the registry
type MatchNotFoundError struct {
	Key string
}

func (e *MatchNotFoundError) Error() string {
	return fmt.Sprintf("The game with id: %s does not exist", e.Key)
}

func (e *MatchNotFoundError) Unwrap() error { return ErrNoSuchMatch }
