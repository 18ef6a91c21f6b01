package models

import (
	"fmt"
	"time"
)

// Team identifies one side of a match
type Team string

// String renders the team the way summaries display it
func (t Team) String() string {
	return fmt.Sprintf("Team [teamName=%s]", string(t))
}

// Sport tags the match variant a factory should build
type Sport string

const (
	SportFootball Sport = "football"
)

// Score is a home/away score pair
type Score struct {
	Home int
	Away int
}

// ChangeType indicates what an accepted registry mutation did to a match
type ChangeType string

const (
	ChangeTypeCreated           ChangeType = "created"
	ChangeTypeHomeGoal          ChangeType = "home_goal"
	ChangeTypeAwayGoal          ChangeType = "away_goal"
	ChangeTypeHomeGoalCancelled ChangeType = "home_goal_cancelled"
	ChangeTypeAwayGoalCancelled ChangeType = "away_goal_cancelled"
	ChangeTypeNone              ChangeType = "none"
	ChangeTypeFinished          ChangeType = "finished"
)

// ClassifyChange names the single-team event that moved a score from before to after.
// The transition is assumed to have been accepted already.
func ClassifyChange(before, after Score) ChangeType {
	switch {
	case after.Home-before.Home == 1:
		return ChangeTypeHomeGoal
	case after.Away-before.Away == 1:
		return ChangeTypeAwayGoal
	case after.Home-before.Home == -1:
		return ChangeTypeHomeGoalCancelled
	case after.Away-before.Away == -1:
		return ChangeTypeAwayGoalCancelled
	default:
		return ChangeTypeNone
	}
}

// MatchEvent describes one accepted registry mutation
type MatchEvent struct {
	EventID    string
	MatchKey   string
	Sport      Sport
	HomeTeam   Team
	AwayTeam   Team
	Score      Score
	ChangeType ChangeType
	OccurredAt time.Time
}

// FinalResult is the score a match ended with
type FinalResult struct {
	MatchKey   string
	Sport      Sport
	HomeTeam   Team
	AwayTeam   Team
	Score      Score
	FinishedAt time.Time
}

// FinalResultFrom converts a finished event into its archived result
func FinalResultFrom(event MatchEvent) FinalResult {
	return FinalResult{
		MatchKey:   event.MatchKey,
		Sport:      event.Sport,
		HomeTeam:   event.HomeTeam,
		AwayTeam:   event.AwayTeam,
		Score:      event.Score,
		FinishedAt: event.OccurredAt,
	}
}
