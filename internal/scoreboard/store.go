// Package scoreboard holds the registry of active matches.
//
// Every operation runs under one FIFO exclusive lock so that the
// "team is not already playing" check and the insert it guards observe a
// consistent view of all matches.
package scoreboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/XavierBriggs/Scoreboard/internal/metrics"
	"github.com/XavierBriggs/Scoreboard/pkg/contracts"
	"github.com/XavierBriggs/Scoreboard/pkg/models"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

const matchKeySeparator = "-"

// MatchKey builds the composite registry key for a home/away pair
func MatchKey(homeID, awayID string) string {
	return homeID + matchKeySeparator + awayID
}

type entry struct {
	match contracts.Match
	sport models.Sport
}

// Store is the in-memory registry of active matches
type Store struct {
	matches map[string]*entry
	factory contracts.MatchFactory

	// Weighted(1) grants waiters in FIFO order
	lock *semaphore.Weighted

	sink    contracts.EventSink
	metrics *metrics.Metrics
	logger  *slog.Logger
	clock   func() time.Time
}

// Option configures a Store
type Option func(s *Store)

// WithEventSink forwards every accepted mutation to sink
func WithEventSink(sink contracts.EventSink) Option {
	return func(s *Store) {
		s.sink = sink
	}
}

// WithMetrics records lifecycle counts, rejections and lock wait on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithLogger replaces the default discard logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the clock used to stamp finish events
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// NewStore creates an empty registry that builds matches with factory
func NewStore(factory contracts.MatchFactory, opts ...Option) *Store {
	s := &Store{
		matches: make(map[string]*entry),
		factory: factory,
		lock:    semaphore.NewWeighted(1),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "scoreboard")
	return s
}

// CreateMatch starts a match between two teams.
// If either team is already playing the call is ignored and no error is returned.
func (s *Store) CreateMatch(ctx context.Context, homeID, awayID string, sport models.Sport) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	if s.teamIsPlaying(homeID) || s.teamIsPlaying(awayID) {
		s.logger.Info("team already playing, create ignored", "home", homeID, "away", awayID)
		if s.metrics != nil {
			s.metrics.IncrementIgnored()
		}
		return nil
	}

	match, err := s.factory.CreateMatch(homeID, awayID, sport)
	if err != nil {
		return err
	}

	key := MatchKey(homeID, awayID)
	s.matches[key] = &entry{match: match, sport: sport}

	s.logger.Info("match created", "match", key, "sport", sport)
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	s.emit(key, sport, match, models.ChangeTypeCreated, match.GetLastUpdated())

	return nil
}

// UpdateScore sets the score of an active match.
// Legality errors from the match are returned unchanged.
func (s *Store) UpdateScore(ctx context.Context, homeID string, newHome int, awayID string, newAway int) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	key := MatchKey(homeID, awayID)
	e, ok := s.matches[key]
	if !ok {
		err := &models.MatchNotFoundError{Key: key}
		s.rejected(key, err)
		return err
	}

	before := e.match.GetScore()
	if err := e.match.UpdateScore(newHome, newAway); err != nil {
		s.rejected(key, err)
		return err
	}

	change := models.ClassifyChange(before, e.match.GetScore())
	s.logger.Debug("score updated", "match", key, "change", change, "home_score", newHome, "away_score", newAway)
	if s.metrics != nil {
		s.metrics.ObserveUpdate(change)
	}
	s.emit(key, e.sport, e.match, change, e.match.GetLastUpdated())

	return nil
}

// FinishMatch removes an active match from the registry
func (s *Store) FinishMatch(ctx context.Context, homeID, awayID string) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	key := MatchKey(homeID, awayID)
	e, ok := s.matches[key]
	if !ok {
		return &models.MatchNotFoundError{Key: key}
	}
	delete(s.matches, key)

	s.logger.Info("match finished", "match", key, "summary", e.match.GetSummary())
	if s.metrics != nil {
		s.metrics.IncrementFinished()
	}
	s.emit(key, e.sport, e.match, models.ChangeTypeFinished, s.clock())

	return nil
}

// GetSummaries returns every active match summary, most recently updated first.
// Matches updated at the same instant keep ascending key order.
func (s *Store) GetSummaries(ctx context.Context) ([]string, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	keys := make([]string, 0, len(s.matches))
	for key := range s.matches {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sort.SliceStable(keys, func(i, j int) bool {
		return s.matches[keys[i]].match.GetLastUpdated().After(s.matches[keys[j]].match.GetLastUpdated())
	})

	summaries := make([]string, 0, len(keys))
	for _, key := range keys {
		summaries = append(summaries, s.matches[key].match.GetSummary())
	}
	return summaries, nil
}

// Count returns the number of active matches
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.release()

	return len(s.matches), nil
}

func (s *Store) acquire(ctx context.Context) error {
	start := time.Now()
	if err := s.lock.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire scoreboard lock: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ObserveLockWait(start)
	}
	return nil
}

func (s *Store) release() {
	s.lock.Release(1)
}

// teamIsPlaying reports whether any active key contains the team identifier
func (s *Store) teamIsPlaying(teamID string) bool {
	for key := range s.matches {
		if strings.Contains(key, teamID) {
			return true
		}
	}
	return false
}

func (s *Store) rejected(key string, err error) {
	s.logger.Debug("score update rejected", "match", key, "error", err)
	if s.metrics != nil {
		s.metrics.ObserveRejected(err)
	}
}

func (s *Store) emit(key string, sport models.Sport, match contracts.Match, change models.ChangeType, at time.Time) {
	if s.sink == nil {
		return
	}

	s.sink.Enqueue(models.MatchEvent{
		EventID:    uuid.NewString(),
		MatchKey:   key,
		Sport:      sport,
		HomeTeam:   match.GetHomeTeam(),
		AwayTeam:   match.GetAwayTeam(),
		Score:      match.GetScore(),
		ChangeType: change,
		OccurredAt: at,
	})
}
