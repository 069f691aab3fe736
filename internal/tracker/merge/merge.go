package merge

import (
	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
)

// Apply aplica um UpdateEvent sobre a coleção de jogos e retorna uma nova
// coleção, sem modificar a original
//
// Regras:
//   - campos ausentes na atualização parcial preservam o valor atual
//   - game_id sem jogo correspondente é descartado em silêncio: o conjunto de
//     jogos é fixado no fetch inicial e nunca cresce por evento
//   - a ordem original da coleção é mantida
//
// As coleções têm dezenas de elementos no máximo, então a busca linear por
// game_id é suficiente
func Apply(games []events.Game, upd events.UpdateEvent) []events.Game {
	out := make([]events.Game, len(games))
	copy(out, games)

	for _, u := range upd.Updates {
		for i := range out {
			if out[i].GameID != u.GameID {
				continue
			}
			out[i] = applyOne(out[i], u)
			break
		}
	}
	return out
}

// applyOne sobrescreve no registro exatamente os campos presentes na
// atualização parcial. Change vem calculado do backend e nunca é derivado
// aqui da diferença entre previsões.
func applyOne(g events.Game, u events.GameUpdate) events.Game {
	if u.CurrentScore != nil {
		g.CurrentScore = *u.CurrentScore
	}
	if u.Minute != nil {
		g.Minute = *u.Minute
	}
	if u.Status != nil {
		g.Status = *u.Status
	}
	if u.UpdatedPrediction != nil {
		p := *u.UpdatedPrediction
		g.UpdatedPrediction = &p
	}
	if u.Change != nil {
		g.Change = *u.Change
	}
	return g
}

// EffectivePrediction retorna a previsão vigente do jogo: a recalculada
// quando já chegou alguma, senão a inicial
func EffectivePrediction(g events.Game) events.PredictionSnapshot {
	if g.UpdatedPrediction != nil {
		return *g.UpdatedPrediction
	}
	return g.InitialPrediction
}
