package football

import (
	"fmt"

	"github.com/XavierBriggs/Scoreboard/pkg/models"
)

const (
	newGoal    = 1
	cancelGoal = -1
	noChange   = 0
)

// ValidateContenders checks that a football match can be played between two teams
func ValidateContenders(home, away models.Team) error {
	if home == away {
		return fmt.Errorf("%w: Can't create a football game with both same contenders", models.ErrInvalidContenders)
	}

	return nil
}

// Transition is a proposed move from one score pair to another
type Transition struct {
	From         models.Score
	To           models.Score
	InitialScore int
}

// Violations lists every rule the transition breaks, in a fixed order.
// An empty result means the transition is legal.
func (t Transition) Violations() []string {
	var violations []string

	if !t.validSide(t.From.Home, t.To.Home) {
		violations = append(violations, fmt.Sprintf("Invalid new homeTeamScore, from oldScore: %d to newScore: %d", t.From.Home, t.To.Home))
	}

	if !t.validSide(t.From.Away, t.To.Away) {
		violations = append(violations, fmt.Sprintf("Invalid new awayTeamScore, from oldScore: %d to newScore: %d", t.From.Away, t.To.Away))
	}

	homeGoal := isNewGoal(t.From.Home, t.To.Home)
	awayGoal := isNewGoal(t.From.Away, t.To.Away)
	homeCancel := isCancelledGoal(t.From.Home, t.To.Home)
	awayCancel := isCancelledGoal(t.From.Away, t.To.Away)

	if homeGoal && awayGoal {
		violations = append(violations, "Invalid score, both teams can't score at the same time")
	}

	if homeCancel && awayCancel {
		violations = append(violations, "Invalid score, both teams can't have a cancelled goal at the same time")
	}

	if (homeGoal && awayCancel) || (homeCancel && awayGoal) {
		violations = append(violations, "Only one team score can be updated at the same time")
	}

	return violations
}

// validSide reports whether one side's score moved by a goal, a cancelled goal
// or not at all. A goal cannot be cancelled from the initial score.
func (t Transition) validSide(oldScore, newScore int) bool {
	if isCancelledGoal(oldScore, newScore) {
		return oldScore != t.InitialScore
	}
	return isNewGoal(oldScore, newScore) || newScore-oldScore == noChange
}

func isNewGoal(oldScore, newScore int) bool {
	return newScore-oldScore == newGoal
}

func isCancelledGoal(oldScore, newScore int) bool {
	return newScore-oldScore == cancelGoal
}
