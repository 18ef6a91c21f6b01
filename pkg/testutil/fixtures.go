package testutil

import (
	"sync"
	"time"

	"github.com/XavierBriggs/Scoreboard/pkg/models"
)

// KickOff is the fixed start time used by test clocks
var KickOff = time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC)

// StepClock advances by Step on every call so timestamps never tie
type StepClock struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewStepClock creates a clock starting at KickOff that ticks one second per call
func NewStepClock() *StepClock {
	return &StepClock{now: KickOff, Step: time.Second}
}

// Now returns the next timestamp
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(c.Step)
	return c.now
}

// NewTestEvent creates a football match event between Mexico and Canada
func NewTestEvent(change models.ChangeType, homeScore, awayScore int) models.MatchEvent {
	return models.MatchEvent{
		EventID:    "evt-" + string(change),
		MatchKey:   "Mexico-Canada",
		Sport:      models.SportFootball,
		HomeTeam:   "Mexico",
		AwayTeam:   "Canada",
		Score:      models.Score{Home: homeScore, Away: awayScore},
		ChangeType: change,
		OccurredAt: KickOff,
	}
}

// RecordingSink collects registry events for assertions
type RecordingSink struct {
	mu     sync.Mutex
	events []models.MatchEvent
}

// Enqueue implements contracts.EventSink
func (r *RecordingSink) Enqueue(event models.MatchEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

// Events returns a copy of everything recorded so far
func (r *RecordingSink) Events() []models.MatchEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]models.MatchEvent(nil), r.events...)
}
