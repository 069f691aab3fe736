package events

import "time"

// GameStatus representa a situação de uma partida conforme reportada pelo
// provedor de dados esportivos
type GameStatus string

const (
	StatusScheduled GameStatus = "SCHEDULED"
	StatusInPlay    GameStatus = "IN_PLAY"
	StatusPaused    GameStatus = "PAUSED"
	StatusFinished  GameStatus = "FINISHED"
)

// PredictionSnapshot é uma foto da previsão de vitória para um jogo
// Reasoning mantém a ordem dos motivos gerados pelo motor de previsão
type PredictionSnapshot struct {
	WinProbability float64  `json:"win_probability"` // 0..100
	Confidence     string   `json:"confidence"`      // "low" | "medium" | "high"
	ExpectedValue  *float64 `json:"expected_value,omitempty"`
	Reasoning      []string `json:"reasoning,omitempty"`
}

// Game representa um jogo acompanhado dentro de um formulário de apostas
// InitialPrediction é calculada antes do início da partida e nunca muda;
// UpdatedPrediction é substituída inteira a cada atualização recebida
type Game struct {
	GameID       string     `json:"game_id"`
	HomeTeam     string     `json:"home_team"`
	AwayTeam     string     `json:"away_team"`
	Status       GameStatus `json:"status"`
	CurrentScore string     `json:"current_score,omitempty"` // ex: "1-0", vazio antes do início
	Minute       int        `json:"minute,omitempty"`
	KickoffTime  time.Time  `json:"kickoff_time,omitempty"`

	BetType    string  `json:"bet_type"`
	OddValue   float64 `json:"odd_value"`
	StakeCents int64   `json:"stake_cents"`

	InitialPrediction PredictionSnapshot  `json:"initial_prediction"`
	UpdatedPrediction *PredictionSnapshot `json:"updated_prediction,omitempty"`
	Change            float64             `json:"change"` // última probabilidade - anterior, já calculada no backend
}
