package events

import (
	"encoding/json"
	"time"
)

// GameUpdate é uma atualização parcial de um jogo
// Campos nil não foram enviados e devem preservar o valor atual do registro
type GameUpdate struct {
	GameID            string              `json:"game_id"`
	CurrentScore      *string             `json:"current_score,omitempty"`
	Minute            *int                `json:"minute,omitempty"`
	Status            *GameStatus         `json:"status,omitempty"`
	UpdatedPrediction *PredictionSnapshot `json:"updated_prediction,omitempty"`
	Change            *float64            `json:"change,omitempty"`
}

// UpdateEvent é o payload do evento "live-update" entregue no canal de um formulário
type UpdateEvent struct {
	Updates   []GameUpdate `json:"updates"`
	Timestamp time.Time    `json:"timestamp"`
}

// PredictionUpdate é o payload do evento "prediction-update": a previsão
// recalculada de um único jogo
type PredictionUpdate struct {
	GameID     string             `json:"game_id"`
	Prediction PredictionSnapshot `json:"prediction"`
}

// Notification é o payload do evento "notification"; apenas informativo,
// nunca aplicado sobre o estado dos jogos
type Notification struct {
	Message string `json:"message"`
}

// Envelope embrulha todo evento publicado no canal Pub/Sub de um formulário
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// FormUpdateMessage é a mensagem produzida no tópico Kafka "form_updates"
// pelo simulador e consumida pelo update-relay
type FormUpdateMessage struct {
	FormID string      `json:"form_id"`
	Event  UpdateEvent `json:"event"`
	Source string      `json:"source"` // ex: "form-simulator"
}
