package display

import (
	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
)

// Derivações de apresentação de um jogo. São funções puras calculadas na hora
// de exibir; nada disso fica guardado no registro do jogo.

// ProbabilityBucket devolve a faixa usada para colorir a probabilidade
func ProbabilityBucket(winProbability float64) string {
	switch {
	case winProbability >= 65:
		return "high"
	case winProbability >= 45:
		return "medium"
	default:
		return "low"
	}
}

// ChangeArrow devolve a seta de variação da probabilidade desde a última
// atualização
func ChangeArrow(change float64) string {
	switch {
	case change > 0:
		return "↑"
	case change < 0:
		return "↓"
	default:
		return "→"
	}
}

// StatusBadge devolve o rótulo curto do status da partida
func StatusBadge(status events.GameStatus) string {
	switch status {
	case events.StatusInPlay:
		return "LIVE"
	case events.StatusPaused:
		return "HT"
	case events.StatusFinished:
		return "FT"
	default:
		return "UPCOMING"
	}
}
