package football_test

import (
	"errors"
	"testing"
	"time"

	"github.com/XavierBriggs/Scoreboard/pkg/models"
	"github.com/XavierBriggs/Scoreboard/sports/football"
)

func newTestMatch(t *testing.T) *football.Match {
	t.Helper()

	match, err := football.NewMatch("Mexico", "Canada")
	if err != nil {
		t.Fatalf("NewMatch failed: %v", err)
	}
	return match
}

// playTo drives a fresh match to the given score one goal at a time
func playTo(t *testing.T, match *football.Match, home, away int) {
	t.Helper()

	score := match.GetScore()
	for score.Home < home {
		score.Home++
		if err := match.UpdateScore(score.Home, score.Away); err != nil {
			t.Fatalf("home goal to %d-%d failed: %v", score.Home, score.Away, err)
		}
	}
	for score.Away < away {
		score.Away++
		if err := match.UpdateScore(score.Home, score.Away); err != nil {
			t.Fatalf("away goal to %d-%d failed: %v", score.Home, score.Away, err)
		}
	}
}

func TestNewMatch_InitialSummary(t *testing.T) {
	match := newTestMatch(t)

	expected := "Game [homeTeam=Team [teamName=Mexico], homeTeamScore=0, awayTeam=Team [teamName=Canada], awayTeamScore=0]"
	if match.GetSummary() != expected {
		t.Errorf("expected summary %q, got %q", expected, match.GetSummary())
	}

	if match.GetLastUpdated().IsZero() {
		t.Error("expected last updated to be set at construction")
	}
}

func TestNewMatch_InvalidContenders(t *testing.T) {
	tests := []struct {
		name string
		home models.Team
		away models.Team
	}{
		{name: "same team", home: "Spain", away: "Spain"},
		{name: "both empty", home: "", away: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := football.NewMatch(tt.home, tt.away)
			if !errors.Is(err, models.ErrInvalidContenders) {
				t.Fatalf("expected ErrInvalidContenders, got %v", err)
			}
			if match != nil {
				t.Errorf("expected nil match, got %v", match)
			}
		})
	}
}

func TestUpdateScore_Legal(t *testing.T) {
	tests := []struct {
		name             string
		fromHome, fromAw int
		toHome, toAway   int
	}{
		{name: "no change at start", fromHome: 0, fromAw: 0, toHome: 0, toAway: 0},
		{name: "no change mid game", fromHome: 2, fromAw: 3, toHome: 2, toAway: 3},
		{name: "home goal", fromHome: 0, fromAw: 0, toHome: 1, toAway: 0},
		{name: "away goal", fromHome: 1, fromAw: 0, toHome: 1, toAway: 1},
		{name: "home goal cancelled", fromHome: 2, fromAw: 1, toHome: 1, toAway: 1},
		{name: "away goal cancelled", fromHome: 2, fromAw: 1, toHome: 2, toAway: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := newTestMatch(t)
			playTo(t, match, tt.fromHome, tt.fromAw)

			if err := match.UpdateScore(tt.toHome, tt.toAway); err != nil {
				t.Fatalf("expected legal update, got %v", err)
			}

			score := match.GetScore()
			if score.Home != tt.toHome || score.Away != tt.toAway {
				t.Errorf("expected %d-%d, got %d-%d", tt.toHome, tt.toAway, score.Home, score.Away)
			}
		})
	}
}

func TestUpdateScore_Illegal(t *testing.T) {
	tests := []struct {
		name             string
		fromHome, fromAw int
		toHome, toAway   int
		violations       []string
	}{
		{
			name: "home jump", fromHome: 0, fromAw: 0, toHome: 5, toAway: 0,
			violations: []string{"Invalid new homeTeamScore, from oldScore: 0 to newScore: 5"},
		},
		{
			name: "away drop by two", fromHome: 0, fromAw: 2, toHome: 0, toAway: 0,
			violations: []string{"Invalid new awayTeamScore, from oldScore: 2 to newScore: 0"},
		},
		{
			name: "both score", fromHome: 0, fromAw: 0, toHome: 1, toAway: 1,
			violations: []string{"Invalid score, both teams can't score at the same time"},
		},
		{
			name: "both cancel", fromHome: 1, fromAw: 1, toHome: 0, toAway: 0,
			violations: []string{"Invalid score, both teams can't have a cancelled goal at the same time"},
		},
		{
			name: "home goal away cancel", fromHome: 0, fromAw: 1, toHome: 1, toAway: 0,
			violations: []string{"Only one team score can be updated at the same time"},
		},
		{
			name: "home cancel away goal", fromHome: 1, fromAw: 0, toHome: 0, toAway: 1,
			violations: []string{"Only one team score can be updated at the same time"},
		},
		{
			name: "both sides jump", fromHome: 0, fromAw: 0, toHome: 3, toAway: 4,
			violations: []string{
				"Invalid new homeTeamScore, from oldScore: 0 to newScore: 3",
				"Invalid new awayTeamScore, from oldScore: 0 to newScore: 4",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := newTestMatch(t)
			playTo(t, match, tt.fromHome, tt.fromAw)
			before := match.GetLastUpdated()

			err := match.UpdateScore(tt.toHome, tt.toAway)
			if !errors.Is(err, models.ErrIllegalScoreTransition) {
				t.Fatalf("expected ErrIllegalScoreTransition, got %v", err)
			}

			var transitionErr *models.ScoreTransitionError
			if !errors.As(err, &transitionErr) {
				t.Fatalf("expected *ScoreTransitionError, got %T", err)
			}
			if len(transitionErr.Violations) != len(tt.violations) {
				t.Fatalf("expected violations %v, got %v", tt.violations, transitionErr.Violations)
			}
			for i, v := range tt.violations {
				if transitionErr.Violations[i] != v {
					t.Errorf("violation %d: expected %q, got %q", i, v, transitionErr.Violations[i])
				}
			}

			score := match.GetScore()
			if score.Home != tt.fromHome || score.Away != tt.fromAw {
				t.Errorf("score changed on failure: expected %d-%d, got %d-%d", tt.fromHome, tt.fromAw, score.Home, score.Away)
			}
			if !match.GetLastUpdated().Equal(before) {
				t.Error("last updated changed on failure")
			}
		})
	}
}

func TestUpdateScore_Negative(t *testing.T) {
	match := newTestMatch(t)
	playTo(t, match, 1, 2)

	for _, scores := range [][2]int{{-1, 2}, {1, -1}, {-3, -4}} {
		err := match.UpdateScore(scores[0], scores[1])
		if !errors.Is(err, models.ErrNegativeScore) {
			t.Errorf("UpdateScore(%d, %d): expected ErrNegativeScore, got %v", scores[0], scores[1], err)
		}
	}

	score := match.GetScore()
	if score.Home != 1 || score.Away != 2 {
		t.Errorf("expected 1-2 after negative updates, got %d-%d", score.Home, score.Away)
	}
}

func TestUpdateScore_GoalThenCancelRoundTrip(t *testing.T) {
	match := newTestMatch(t)

	if err := match.UpdateScore(1, 0); err != nil {
		t.Fatalf("goal failed: %v", err)
	}
	if err := match.UpdateScore(0, 0); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	score := match.GetScore()
	if score.Home != 0 || score.Away != 0 {
		t.Fatalf("expected 0-0, got %d-%d", score.Home, score.Away)
	}

	if err := match.UpdateScore(-1, 0); err == nil {
		t.Error("expected cancelling from 0 to fail")
	}
}

func TestUpdateScore_RefreshesLastUpdated(t *testing.T) {
	now := time.Date(2026, 6, 11, 20, 0, 0, 0, time.UTC)
	module := football.NewModule(football.WithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	}))

	match, err := module.NewMatch("Mexico", "Canada")
	if err != nil {
		t.Fatalf("NewMatch failed: %v", err)
	}
	created := match.GetLastUpdated()

	if err := match.UpdateScore(0, 0); err != nil {
		t.Fatalf("no-op update failed: %v", err)
	}

	if !match.GetLastUpdated().After(created) {
		t.Errorf("expected last updated after %v, got %v", created, match.GetLastUpdated())
	}
}

func TestMatch_EqualIgnoresScore(t *testing.T) {
	first := newTestMatch(t)
	second := newTestMatch(t)
	playTo(t, second, 2, 0)

	if !first.Equal(second) {
		t.Error("expected matches between the same teams to be equal")
	}

	reversed, err := football.NewMatch("Canada", "Mexico")
	if err != nil {
		t.Fatalf("NewMatch failed: %v", err)
	}
	if first.Equal(reversed) {
		t.Error("expected home/away swap to be a different match")
	}
}

func TestNewMatch_OnlySameTeamIsRejected(t *testing.T) {
	for _, teams := range [][2]models.Team{{"", "Spain"}, {"Spain", ""}, {"spain", "Spain"}} {
		match, err := football.NewMatch(teams[0], teams[1])
		if err != nil {
			t.Errorf("NewMatch(%q, %q): unexpected error %v", teams[0], teams[1], err)
			continue
		}
		if score := match.GetScore(); score.Home != 0 || score.Away != 0 {
			t.Errorf("NewMatch(%q, %q): expected 0-0, got %d-%d", teams[0], teams[1], score.Home, score.Away)
		}
	}
}
