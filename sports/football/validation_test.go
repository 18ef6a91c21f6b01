package football_test

import (
	"testing"

	"github.com/XavierBriggs/Scoreboard/pkg/models"
	"github.com/XavierBriggs/Scoreboard/sports/football"
)

func TestTransition_CancelFromInitialScore(t *testing.T) {
	transition := football.Transition{
		From: models.Score{Home: 0, Away: 3},
		To:   models.Score{Home: -1, Away: 3},
	}

	violations := transition.Violations()
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", violations)
	}
	if violations[0] != "Invalid new homeTeamScore, from oldScore: 0 to newScore: -1" {
		t.Errorf("unexpected violation %q", violations[0])
	}
}

func TestTransition_SingleGoalLaw(t *testing.T) {
	for home := 0; home < 4; home++ {
		for away := 0; away < 4; away++ {
			from := models.Score{Home: home, Away: away}

			homeGoal := football.Transition{From: from, To: models.Score{Home: home + 1, Away: away}}
			if v := homeGoal.Violations(); len(v) != 0 {
				t.Errorf("%d-%d home goal: unexpected violations %v", home, away, v)
			}

			bothGoal := football.Transition{From: from, To: models.Score{Home: home + 1, Away: away + 1}}
			if v := bothGoal.Violations(); len(v) == 0 {
				t.Errorf("%d-%d both goal: expected violation", home, away)
			}

			homeCancel := football.Transition{From: from, To: models.Score{Home: home - 1, Away: away}}
			if v := homeCancel.Violations(); (len(v) == 0) != (home > 0) {
				t.Errorf("%d-%d home cancel: legal=%v, violations %v", home, away, home > 0, v)
			}
		}
	}
}

func TestModule_Identity(t *testing.T) {
	module := football.NewModule()

	if module.GetSportKey() != models.SportFootball {
		t.Errorf("expected sport key %s, got %s", models.SportFootball, module.GetSportKey())
	}
	if module.GetDisplayName() != "Football" {
		t.Errorf("expected display name Football, got %s", module.GetDisplayName())
	}

	match, err := module.NewMatch("Brazil", "Brazil")
	if err == nil {
		t.Fatal("expected error for same contenders")
	}
	if match != nil {
		t.Errorf("expected nil interface, got %#v", match)
	}
}
