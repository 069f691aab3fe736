package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	sharedcache "github.com/radieske/live-form-tracker-poc/internal/shared/cache"
	"github.com/radieske/live-form-tracker-poc/internal/shared/config"
	skafka "github.com/radieske/live-form-tracker-poc/internal/shared/kafka"
	"github.com/radieske/live-form-tracker-poc/internal/shared/logger"
	"github.com/radieske/live-form-tracker-poc/internal/shared/metrics"
	"github.com/radieske/live-form-tracker-poc/internal/update-relay/consumer"
	"github.com/radieske/live-form-tracker-poc/internal/update-relay/pubsub"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis: destino do broadcast por formulário
	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Kafka: origem das atualizações (consumer group update-relay)
	reader := skafka.NewReader(cfg.KafkaBrokers, cfg.TopicFormUpdates, "update-relay")
	defer reader.Close()

	dlq := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicFormUpdatesDLQ)
	defer dlq.Close()

	// Métricas Prometheus para monitoramento do relay
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "relay_messages_consumed_total", Help: "mensagens consumidas do Kafka"})
	published := prometheus.NewCounter(prometheus.CounterOpts{Name: "relay_messages_published_total", Help: "envelopes publicados no Redis Pub/Sub"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "relay_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, published, errorsBy)

	relay := &consumer.Relay{
		Log:         log,
		Reader:      reader,
		Broadcaster: pubsub.NewRedisBroadcaster(redisClient),
		DLQ:         dlq,

		OnConsumed:  func() { consumed.Inc() },
		OnPublished: func() { published.Inc() },
		OnError:     func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})

	log.Info("update-relay running",
		zap.String("topic", cfg.TopicFormUpdates),
		zap.String("metrics_port", cfg.MetricsPort),
	)

	if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("relay stopped", zap.Error(err))
	}
	log.Info("update-relay shutdown complete")
}
