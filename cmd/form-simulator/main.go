package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	simulator "github.com/radieske/live-form-tracker-poc/internal/form-simulator"
	"github.com/radieske/live-form-tracker-poc/internal/form-watcher/fetch"
	"github.com/radieske/live-form-tracker-poc/internal/shared/config"
	skafka "github.com/radieske/live-form-tracker-poc/internal/shared/kafka"
	"github.com/radieske/live-form-tracker-poc/internal/shared/logger"
	"github.com/radieske/live-form-tracker-poc/internal/shared/metrics"
	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
)

// Catálogo usado quando o form-api não está de pé; os game_ids batem com a
// carga de demonstração do banco
var fallbackGames = []events.Game{
	{GameID: "GAME_001", HomeTeam: "Flamengo", AwayTeam: "Palmeiras", InitialPrediction: events.PredictionSnapshot{WinProbability: 58.5}},
	{GameID: "GAME_002", HomeTeam: "Grêmio", AwayTeam: "Internacional", InitialPrediction: events.PredictionSnapshot{WinProbability: 44.0}},
	{GameID: "GAME_003", HomeTeam: "Corinthians", AwayTeam: "Santos", InitialPrediction: events.PredictionSnapshot{WinProbability: 51.2}},
	{GameID: "GAME_004", HomeTeam: "São Paulo", AwayTeam: "Vasco", InitialPrediction: events.PredictionSnapshot{WinProbability: 62.3}},
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Busca os jogos reais do formulário para simular ids consistentes
	games := fallbackGames
	fetchCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if form, err := fetch.New(cfg.FormAPIURL).Form(fetchCtx, cfg.FormID); err != nil {
		log.Warn("form-api unavailable, using fallback catalog", zap.Error(err))
	} else {
		games = form.Games
	}
	cancel()

	writer := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicFormUpdates)
	defer writer.Close()

	produced := prometheus.NewCounter(prometheus.CounterOpts{Name: "simulator_batches_produced_total", Help: "levas de atualização produzidas"})
	writeErrors := prometheus.NewCounter(prometheus.CounterOpts{Name: "simulator_write_errors_total", Help: "falhas de escrita no Kafka"})
	prometheus.MustRegister(produced, writeErrors)

	metrics.StartMetricsServer(cfg.MetricsPort, func(context.Context) error { return nil })

	gen := simulator.NewGenerator(log, writer, cfg.FormID, games)
	gen.OnProduced = func() { produced.Inc() }
	gen.OnError = func() { writeErrors.Inc() }

	log.Info("form-simulator running",
		zap.String("form_id", cfg.FormID),
		zap.Int("games", len(games)),
		zap.Duration("interval", cfg.SimulatorInterval),
	)

	if err := gen.Run(ctx, cfg.SimulatorInterval); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("simulator stopped", zap.Error(err))
	}
	log.Info("form-simulator shutdown complete")
}
