package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	skafka "github.com/radieske/live-form-tracker-poc/internal/shared/kafka"
	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
)

// Generator produz atualizações parciais sintéticas para os jogos de um
// formulário e publica no tópico Kafka form_updates
// Faz o papel do backend de monitoramento ao rodar a plataforma localmente
type Generator struct {
	Log    *zap.Logger
	Writer *skafka.Writer
	FormID string

	OnProduced func() // métricas (counter++)
	OnError    func() // métricas

	games []gameSim
	rng   *rand.Rand
}

// gameSim é o estado interno da simulação de um jogo
type gameSim struct {
	id       string
	status   events.GameStatus
	homeGoal int
	awayGoal int
	minute   int
	prob     float64 // última probabilidade divulgada
}

// NewGenerator semeia a simulação com os jogos do formulário
func NewGenerator(log *zap.Logger, w *skafka.Writer, formID string, games []events.Game) *Generator {
	sims := make([]gameSim, len(games))
	for i, g := range games {
		sims[i] = gameSim{
			id:     g.GameID,
			status: events.StatusScheduled,
			prob:   g.InitialPrediction.WinProbability,
		}
	}
	return &Generator{
		Log:    log,
		Writer: w,
		FormID: formID,
		games:  sims,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run publica uma leva de atualizações a cada intervalo até o contexto encerrar
func (g *Generator) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			msg := g.next()
			if len(msg.Event.Updates) == 0 {
				continue // todos os jogos já terminaram
			}
			b, err := json.Marshal(msg)
			if err != nil {
				g.Log.Warn("marshal update failed", zap.Error(err))
				continue
			}
			if err := skafka.WriteJSON(ctx, g.Writer, msg.FormID, b); err != nil {
				g.Log.Warn("kafka write failed", zap.Error(err))
				if g.OnError != nil {
					g.OnError()
				}
				continue
			}
			if g.OnProduced != nil {
				g.OnProduced()
			}
			g.Log.Debug("update batch produced",
				zap.String("form_id", msg.FormID),
				zap.Int("updates", len(msg.Event.Updates)),
			)
		}
	}
}

// next avança a simulação de cada jogo ainda em andamento e monta o evento
func (g *Generator) next() events.FormUpdateMessage {
	var updates []events.GameUpdate
	for i := range g.games {
		if g.games[i].status == events.StatusFinished {
			continue
		}
		updates = append(updates, g.advance(&g.games[i]))
	}
	return events.FormUpdateMessage{
		FormID: g.FormID,
		Source: "form-simulator",
		Event: events.UpdateEvent{
			Updates:   updates,
			Timestamp: time.Now().UTC(),
		},
	}
}

// advance move o jogo pela máquina de estados da partida e recalcula a
// previsão com um passeio aleatório
func (g *Generator) advance(s *gameSim) events.GameUpdate {
	switch s.status {
	case events.StatusScheduled:
		s.status = events.StatusInPlay
		s.minute = 1
	case events.StatusPaused:
		s.status = events.StatusInPlay
		s.minute = 46
	case events.StatusInPlay:
		s.minute += 1 + g.rng.Intn(5)
		if g.rng.Intn(100) < 15 { // gol
			if g.rng.Intn(2) == 0 {
				s.homeGoal++
			} else {
				s.awayGoal++
			}
		}
		switch {
		case s.minute >= 90:
			s.minute = 90
			s.status = events.StatusFinished
		case s.minute >= 45 && s.minute < 50:
			s.status = events.StatusPaused
		}
	}

	prev := s.prob
	s.prob = clamp(s.prob+(g.rng.Float64()*16-8), 1, 99)
	change := round2(s.prob - prev)

	score := fmt.Sprintf("%d-%d", s.homeGoal, s.awayGoal)
	minute := s.minute
	status := s.status
	pred := events.PredictionSnapshot{
		WinProbability: round2(s.prob),
		Confidence:     confidenceFor(s.prob),
		Reasoning:      reasoningFor(s),
	}

	return events.GameUpdate{
		GameID:            s.id,
		CurrentScore:      &score,
		Minute:            &minute,
		Status:            &status,
		UpdatedPrediction: &pred,
		Change:            &change,
	}
}

func confidenceFor(prob float64) string {
	switch {
	case prob >= 70 || prob <= 30:
		return "high"
	case prob >= 55 || prob <= 45:
		return "medium"
	default:
		return "low"
	}
}

func reasoningFor(s *gameSim) []string {
	out := []string{fmt.Sprintf("placar %d-%d aos %d min", s.homeGoal, s.awayGoal, s.minute)}
	if s.homeGoal > s.awayGoal {
		out = append(out, "mandante na frente")
	} else if s.awayGoal > s.homeGoal {
		out = append(out, "visitante na frente")
	}
	return out
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
