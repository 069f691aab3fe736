package merge

import (
	"reflect"
	"testing"
	"time"

	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
)

func strPtr(s string) *string                          { return &s }
func intPtr(i int) *int                                { return &i }
func floatPtr(f float64) *float64                      { return &f }
func statusPtr(s events.GameStatus) *events.GameStatus { return &s }

func sampleGames() []events.Game {
	return []events.Game{
		{
			GameID:      "GAME_A",
			HomeTeam:    "Flamengo",
			AwayTeam:    "Palmeiras",
			Status:      events.StatusScheduled,
			BetType:     "home_win",
			OddValue:    1.85,
			StakeCents:  5000,
			KickoffTime: time.Date(2026, 8, 29, 16, 0, 0, 0, time.UTC),
			InitialPrediction: events.PredictionSnapshot{
				WinProbability: 58.5,
				Confidence:     "medium",
				Reasoning:      []string{"boa fase em casa", "retrospecto favorável"},
			},
		},
		{
			GameID:     "GAME_B",
			HomeTeam:   "Grêmio",
			AwayTeam:   "Internacional",
			Status:     events.StatusScheduled,
			BetType:    "draw",
			OddValue:   3.10,
			StakeCents: 2000,
			InitialPrediction: events.PredictionSnapshot{
				WinProbability: 31.0,
				Confidence:     "low",
			},
		},
	}
}

func TestApplyOverwritesOnlyPresentFields(t *testing.T) {
	games := sampleGames()
	orig := games[0]

	upd := events.UpdateEvent{
		Updates: []events.GameUpdate{{
			GameID:       "GAME_A",
			CurrentScore: strPtr("1-0"),
			Minute:       intPtr(23),
			Status:       statusPtr(events.StatusInPlay),
		}},
		Timestamp: time.Now().UTC(),
	}

	out := Apply(games, upd)

	got := out[0]
	if got.CurrentScore != "1-0" || got.Minute != 23 || got.Status != events.StatusInPlay {
		t.Fatalf("updated fields not applied: %+v", got)
	}

	// todos os demais campos permanecem idênticos ao original
	got.CurrentScore = orig.CurrentScore
	got.Minute = orig.Minute
	got.Status = orig.Status
	if !reflect.DeepEqual(got, orig) {
		t.Errorf("untouched fields changed:\n got %+v\nwant %+v", got, orig)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	games := sampleGames()
	before := make([]events.Game, len(games))
	copy(before, games)

	Apply(games, events.UpdateEvent{Updates: []events.GameUpdate{{
		GameID: "GAME_A",
		Minute: intPtr(90),
		Status: statusPtr(events.StatusFinished),
	}}})

	if !reflect.DeepEqual(games, before) {
		t.Error("Apply mutated the input collection")
	}
}

func TestApplyUnknownGameIsDropped(t *testing.T) {
	games := sampleGames()

	out := Apply(games, events.UpdateEvent{Updates: []events.GameUpdate{{
		GameID:       "GAME_MISSING",
		CurrentScore: strPtr("3-0"),
	}}})

	if !reflect.DeepEqual(out, games) {
		t.Error("update for unknown game_id should leave the collection unchanged")
	}
	if len(out) != 2 {
		t.Errorf("no game may be created by an update: got %d games", len(out))
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	games := sampleGames()

	// toca só o segundo jogo; a ordem de inserção não muda
	out := Apply(games, events.UpdateEvent{Updates: []events.GameUpdate{{
		GameID: "GAME_B",
		Status: statusPtr(events.StatusInPlay),
	}}})

	if out[0].GameID != "GAME_A" || out[1].GameID != "GAME_B" {
		t.Errorf("order changed: got [%s, %s]", out[0].GameID, out[1].GameID)
	}
}

func TestApplyReplacesPredictionWholesale(t *testing.T) {
	games := sampleGames()

	first := events.PredictionSnapshot{
		WinProbability: 64.2,
		Confidence:     "high",
		ExpectedValue:  floatPtr(12.5),
		Reasoning:      []string{"gol cedo", "adversário com um a menos"},
	}
	out := Apply(games, events.UpdateEvent{Updates: []events.GameUpdate{{
		GameID:            "GAME_A",
		UpdatedPrediction: &first,
		Change:            floatPtr(5.7),
	}}})

	second := events.PredictionSnapshot{WinProbability: 49.0, Confidence: "medium"}
	out = Apply(out, events.UpdateEvent{Updates: []events.GameUpdate{{
		GameID:            "GAME_A",
		UpdatedPrediction: &second,
		Change:            floatPtr(-15.2),
	}}})

	g := out[0]
	if g.UpdatedPrediction == nil || !reflect.DeepEqual(*g.UpdatedPrediction, second) {
		t.Errorf("updated prediction not replaced wholesale: %+v", g.UpdatedPrediction)
	}
	if g.Change != -15.2 {
		t.Errorf("change = %v, want -15.2 (carried as supplied, never recomputed)", g.Change)
	}
	// a previsão inicial nunca muda
	if g.InitialPrediction.WinProbability != 58.5 {
		t.Errorf("initial prediction mutated: %+v", g.InitialPrediction)
	}
}

func TestApplyEndToEndScenario(t *testing.T) {
	games := []events.Game{
		{GameID: "A", Status: events.StatusScheduled},
		{GameID: "B", Status: events.StatusScheduled},
	}

	out := Apply(games, events.UpdateEvent{
		Updates: []events.GameUpdate{{
			GameID:       "A",
			Status:       statusPtr(events.StatusInPlay),
			CurrentScore: strPtr("1-0"),
			Minute:       intPtr(23),
		}},
		Timestamp: time.Now().UTC(),
	})

	a := out[0]
	if a.Status != events.StatusInPlay || a.CurrentScore != "1-0" || a.Minute != 23 {
		t.Errorf("game A not updated as expected: %+v", a)
	}
	if !reflect.DeepEqual(out[1], games[1]) {
		t.Errorf("game B should be untouched: %+v", out[1])
	}
	if out[0].GameID != "A" || out[1].GameID != "B" {
		t.Error("order [A, B] not preserved")
	}
}

func TestEffectivePrediction(t *testing.T) {
	g := sampleGames()[0]

	if got := EffectivePrediction(g); got.WinProbability != 58.5 {
		t.Errorf("without updates, effective prediction must be the initial one: %+v", got)
	}

	g.UpdatedPrediction = &events.PredictionSnapshot{WinProbability: 70.1, Confidence: "high"}
	if got := EffectivePrediction(g); got.WinProbability != 70.1 {
		t.Errorf("with an update, effective prediction must be the updated one: %+v", got)
	}
}
