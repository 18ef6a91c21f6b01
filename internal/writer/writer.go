package writer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/XavierBriggs/Scoreboard/pkg/models"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const (
	defaultBatchSize     = 100
	defaultFlushInterval = 2 * time.Second
	defaultSnapshotTTL   = 30 * time.Minute
	streamKeyFormat      = "scoreboard.matches.%s" // scoreboard.matches.football
	snapshotKeyFormat    = "scoreboard:match:%s"   // scoreboard:match:{match_key}
)

// Writer buffers registry events, archives final results to Postgres and
// publishes every change to Redis Streams.
// Either backend may be nil, in which case that half is skipped.
type Writer struct {
	db     *sql.DB
	redis  *redis.Client
	logger *slog.Logger

	batchSize     int
	flushInterval time.Duration
	snapshotTTL   time.Duration

	buffer []models.MatchEvent
	mu     sync.Mutex

	flushNow chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// StreamMessage represents a message published to Redis Stream
type StreamMessage struct {
	EventID    string    `json:"event_id"`
	MatchKey   string    `json:"match_key"`
	SportKey   string    `json:"sport_key"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	ChangeType string    `json:"change_type"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Snapshot is the current state of an active match kept in Redis
type Snapshot struct {
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Option configures a Writer
type Option func(w *Writer)

// WithBatchSize sets how many buffered events wake the flush loop early
func WithBatchSize(size int) Option {
	return func(w *Writer) {
		if size > 0 {
			w.batchSize = size
		}
	}
}

// WithFlushInterval sets the period of the background flush
func WithFlushInterval(interval time.Duration) Option {
	return func(w *Writer) {
		if interval > 0 {
			w.flushInterval = interval
		}
	}
}

// WithSnapshotTTL sets how long an untouched match snapshot lives in Redis
func WithSnapshotTTL(ttl time.Duration) Option {
	return func(w *Writer) {
		w.snapshotTTL = ttl
	}
}

// WithLogger replaces the default discard logger
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a new batching writer
func NewWriter(db *sql.DB, redisClient *redis.Client, opts ...Option) *Writer {
	w := &Writer{
		db:            db,
		redis:         redisClient,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
		snapshotTTL:   defaultSnapshotTTL,
		flushNow:      make(chan struct{}, 1),
		stopChan:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.buffer = make([]models.MatchEvent, 0, w.batchSize)
	w.logger = w.logger.With("component", "writer")
	return w
}

// Start begins the background flush loop
func (w *Writer) Start(ctx context.Context) {
	ticker := time.NewTicker(w.flushInterval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.flushAndLog(ctx)
			case <-w.flushNow:
				w.flushAndLog(ctx)
			case <-w.stopChan:
				// Final flush on shutdown
				w.flushAndLog(ctx)
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop gracefully shuts down the writer
func (w *Writer) Stop() {
	close(w.stopChan)
	w.wg.Wait()
}

// Enqueue buffers an event and wakes the flush loop once the batch is full.
// It never blocks on I/O.
func (w *Writer) Enqueue(event models.MatchEvent) {
	w.mu.Lock()
	w.buffer = append(w.buffer, event)
	shouldFlush := len(w.buffer) >= w.batchSize
	w.mu.Unlock()

	if shouldFlush {
		select {
		case w.flushNow <- struct{}{}:
		default:
		}
	}
}

// Pending returns the number of buffered events
func (w *Writer) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.buffer)
}

// Flush archives finished matches and publishes buffered events
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	if len(w.buffer) == 0 {
		w.mu.Unlock()
		return nil
	}

	// Swap buffer
	events := w.buffer
	w.buffer = make([]models.MatchEvent, 0, w.batchSize)
	w.mu.Unlock()

	// Step 1: Archive final results (Postgres is the record of finished matches)
	results := finalResults(events)
	if w.db != nil && len(results) > 0 {
		if err := w.archiveResults(ctx, results); err != nil {
			w.requeue(events)
			return fmt.Errorf("archive results: %w", err)
		}
	}

	// Step 2: Publish to Redis (after successful archive)
	if w.redis != nil {
		if err := w.publishToStream(ctx, events); err != nil {
			// Log but don't fail - the registry is the source of truth
			w.logger.Warn("publish to stream failed", "error", err, "events", len(events))
		}
	}

	return nil
}

// requeue puts a failed batch back ahead of anything enqueued since the swap
func (w *Writer) requeue(events []models.MatchEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buffer = append(events, w.buffer...)
}

func (w *Writer) flushAndLog(ctx context.Context) {
	if err := w.Flush(ctx); err != nil {
		w.logger.Error("flush failed", "error", err)
	}
}

// archiveResults inserts final scores in one transaction
func (w *Writer) archiveResults(ctx context.Context, results []models.FinalResult) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO match_results (
			match_key, sport_key, home_team, away_team, home_score, away_score, finished_at
		)
		SELECT * FROM UNNEST(
			$1::text[], $2::text[], $3::text[], $4::text[], $5::int[], $6::int[], $7::timestamptz[]
		)
	`

	matchKeys := make([]string, len(results))
	sportKeys := make([]string, len(results))
	homeTeams := make([]string, len(results))
	awayTeams := make([]string, len(results))
	homeScores := make([]int64, len(results))
	awayScores := make([]int64, len(results))
	finishedAts := make([]time.Time, len(results))

	for i, result := range results {
		matchKeys[i] = result.MatchKey
		sportKeys[i] = string(result.Sport)
		homeTeams[i] = string(result.HomeTeam)
		awayTeams[i] = string(result.AwayTeam)
		homeScores[i] = int64(result.Score.Home)
		awayScores[i] = int64(result.Score.Away)
		finishedAts[i] = result.FinishedAt
	}

	if _, err := tx.ExecContext(ctx, query,
		pq.Array(matchKeys), pq.Array(sportKeys), pq.Array(homeTeams), pq.Array(awayTeams),
		pq.Array(homeScores), pq.Array(awayScores), pq.Array(finishedAts),
	); err != nil {
		return fmt.Errorf("insert match results: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	w.logger.Info("archived match results", "count", len(results))
	return nil
}

// publishToStream publishes events to per-sport streams and refreshes match snapshots
func (w *Writer) publishToStream(ctx context.Context, events []models.MatchEvent) error {
	pipe := w.redis.Pipeline()
	queued := 0

	for _, event := range events {
		// No score change, nothing for readers
		if event.ChangeType == models.ChangeTypeNone {
			continue
		}

		msgJSON, err := json.Marshal(NewStreamMessage(event))
		if err != nil {
			return fmt.Errorf("marshal stream message: %w", err)
		}

		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: StreamKey(event.Sport),
			Values: map[string]interface{}{
				"data": msgJSON,
			},
		})

		snapshotKey := SnapshotKey(event.MatchKey)
		if event.ChangeType == models.ChangeTypeFinished {
			pipe.Del(ctx, snapshotKey)
		} else {
			snapshotJSON, err := json.Marshal(NewSnapshot(event))
			if err != nil {
				return fmt.Errorf("marshal snapshot: %w", err)
			}
			pipe.Set(ctx, snapshotKey, snapshotJSON, w.snapshotTTL)
		}
		queued++
	}

	if queued == 0 {
		return nil
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline exec for stream: %w", err)
	}

	return nil
}

// StreamKey returns the Redis stream a sport's events are published to
func StreamKey(sport models.Sport) string {
	return fmt.Sprintf(streamKeyFormat, sport)
}

// SnapshotKey returns the Redis key holding an active match snapshot
func SnapshotKey(matchKey string) string {
	return fmt.Sprintf(snapshotKeyFormat, matchKey)
}

// NewStreamMessage converts a registry event to its stream payload
func NewStreamMessage(event models.MatchEvent) StreamMessage {
	return StreamMessage{
		EventID:    event.EventID,
		MatchKey:   event.MatchKey,
		SportKey:   string(event.Sport),
		HomeTeam:   string(event.HomeTeam),
		AwayTeam:   string(event.AwayTeam),
		HomeScore:  event.Score.Home,
		AwayScore:  event.Score.Away,
		ChangeType: string(event.ChangeType),
		OccurredAt: event.OccurredAt,
	}
}

// NewSnapshot converts a registry event to the match snapshot stored in Redis
func NewSnapshot(event models.MatchEvent) Snapshot {
	return Snapshot{
		HomeTeam:  string(event.HomeTeam),
		AwayTeam:  string(event.AwayTeam),
		HomeScore: event.Score.Home,
		AwayScore: event.Score.Away,
		UpdatedAt: event.OccurredAt,
	}
}

func finalResults(events []models.MatchEvent) []models.FinalResult {
	var results []models.FinalResult
	for _, event := range events {
		if event.ChangeType == models.ChangeTypeFinished {
			results = append(results, models.FinalResultFrom(event))
		}
	}
	return results
}
