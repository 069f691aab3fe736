package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/live-form-tracker-poc/internal/form-watcher/display"
	"github.com/radieske/live-form-tracker-poc/internal/form-watcher/fetch"
	sharedcache "github.com/radieske/live-form-tracker-poc/internal/shared/cache"
	"github.com/radieske/live-form-tracker-poc/internal/shared/config"
	"github.com/radieske/live-form-tracker-poc/internal/shared/logger"
	"github.com/radieske/live-form-tracker-poc/internal/shared/metrics"
	"github.com/radieske/live-form-tracker-poc/internal/tracker"
	"github.com/radieske/live-form-tracker-poc/internal/tracker/merge"
	"github.com/radieske/live-form-tracker-poc/internal/tracker/transport"
	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
	"github.com/radieske/live-form-tracker-poc/pkg/contracts/topics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Fetch inicial: a lista de jogos que ancora a sessão
	fetchCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	form, err := fetch.New(cfg.FormAPIURL).Form(fetchCtx, cfg.FormID)
	cancel()
	if err != nil {
		log.Fatal("initial form fetch failed", zap.Error(err))
	}
	log.Info("form loaded",
		zap.String("form_id", form.FormID),
		zap.Int("games", len(form.Games)),
	)

	// Transporte Pub/Sub sobre Redis
	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Métricas Prometheus da sessão
	updates := prometheus.NewCounter(prometheus.CounterOpts{Name: "watcher_updates_received_total", Help: "eventos live-update recebidos"})
	notifications := prometheus.NewCounter(prometheus.CounterOpts{Name: "watcher_notifications_total", Help: "notificações recebidas"})
	listenerPanics := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "watcher_listener_panics_total", Help: "panics isolados em listeners"}, []string{"event"})
	connState := prometheus.NewGauge(prometheus.GaugeOpts{Name: "watcher_connected", Help: "1 quando a sessão está conectada"})
	prometheus.MustRegister(updates, notifications, listenerPanics, connState)

	session := tracker.NewSession(log, transport.NewRedis(redisClient, log), form.Games)
	session.OnUpdate = func() { updates.Inc() }
	session.OnNotification = func() { notifications.Inc() }
	session.OnListenerPanic = func(event string) { listenerPanics.WithLabelValues(event).Inc() }

	// A "tela": cada atualização vira linhas estruturadas no log
	session.On(topics.EventLiveUpdate, func(payload any) {
		ev := payload.(events.UpdateEvent)
		touched := make(map[string]bool, len(ev.Updates))
		for _, u := range ev.Updates {
			touched[u.GameID] = true
		}
		for _, g := range session.Games() {
			if !touched[g.GameID] {
				continue
			}
			pred := merge.EffectivePrediction(g)
			log.Info("game update",
				zap.String("game", g.HomeTeam+" x "+g.AwayTeam),
				zap.String("badge", display.StatusBadge(g.Status)),
				zap.String("score", g.CurrentScore),
				zap.Int("minute", g.Minute),
				zap.Float64("win_probability", pred.WinProbability),
				zap.String("bucket", display.ProbabilityBucket(pred.WinProbability)),
				zap.String("trend", display.ChangeArrow(g.Change)),
				zap.Float64("change", g.Change),
			)
		}
	})

	session.On(topics.EventPredictionUpdate, func(payload any) {
		pu := payload.(events.PredictionUpdate)
		log.Info("prediction update",
			zap.String("game_id", pu.GameID),
			zap.Float64("win_probability", pu.Prediction.WinProbability),
			zap.String("confidence", pu.Prediction.Confidence),
		)
	})

	session.On(topics.EventNotification, func(payload any) {
		log.Info("notification", zap.String("message", payload.(events.Notification).Message))
	})

	session.On(tracker.EventConnection, func(any) {
		connState.Set(1)
		log.Info("live channel connected", zap.String("form_id", form.FormID))
	})
	session.On(tracker.EventDisconnection, func(any) {
		connState.Set(0)
		log.Warn("live channel disconnected", zap.String("form_id", form.FormID))
	})
	session.On(tracker.EventError, func(payload any) {
		connState.Set(0)
		log.Warn("live channel error", zap.Error(payload.(tracker.ErrorPayload).Err))
	})

	if err := session.Connect(ctx, form.FormID); err != nil {
		log.Fatal("session connect failed", zap.Error(err))
	}

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})

	log.Info("form-watcher running",
		zap.String("form_id", form.FormID),
		zap.String("metrics_port", cfg.MetricsPort),
	)

	<-ctx.Done()

	historyLen := len(session.History())
	session.Disconnect()
	log.Info("form-watcher shutdown complete", zap.Int("history_entries", historyLen))
}
