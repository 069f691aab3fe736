package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	skafka "github.com/radieske/live-form-tracker-poc/internal/shared/kafka"
	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
	"github.com/radieske/live-form-tracker-poc/pkg/contracts/topics"
)

// Broadcaster publica um payload em um canal Pub/Sub
type Broadcaster interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Relay consome mensagens de atualização de formulários do Kafka e as
// republica, embrulhadas no envelope de evento, no canal Redis do formulário
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Relay struct {
	Log         *zap.Logger
	Reader      *kafka.Reader
	Broadcaster Broadcaster
	DLQ         *kafka.Writer // opcional; recebe mensagens que não decodificam

	OnConsumed  func()       // métricas (counter++)
	OnPublished func()       // métricas
	OnError     func(string) // métricas por fase
}

// Run inicia o loop principal de consumo e republicação
func (r *Relay) Run(ctx context.Context) error {
	for {
		m, err := r.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			r.Log.Warn("kafka read failed", zap.Error(err))
			if r.OnError != nil {
				r.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if r.OnConsumed != nil {
			r.OnConsumed()
		}

		channel, payload, err := EnvelopeFor(m.Value)
		if err != nil {
			r.Log.Warn("invalid message", zap.Error(err))
			if r.OnError != nil {
				r.OnError("decode")
			}
			r.toDLQ(ctx, m)
			continue
		}

		pubCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		err = r.Broadcaster.Publish(pubCtx, channel, payload)
		cancel()
		if err != nil {
			r.Log.Warn("broadcast publish failed",
				zap.String("channel", channel),
				zap.Error(err),
			)
			if r.OnError != nil {
				r.OnError("publish")
			}
			continue
		}

		if r.OnPublished != nil {
			r.OnPublished()
		}
	}
}

// EnvelopeFor transforma uma mensagem Kafka do tópico form_updates no canal
// de destino e no envelope "live-update" publicado nele
func EnvelopeFor(value []byte) (channel string, payload []byte, err error) {
	var msg events.FormUpdateMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		return "", nil, fmt.Errorf("decode form update: %w", err)
	}
	if msg.FormID == "" {
		return "", nil, fmt.Errorf("form update without form_id")
	}

	data, err := json.Marshal(msg.Event)
	if err != nil {
		return "", nil, fmt.Errorf("encode update event: %w", err)
	}
	env, err := json.Marshal(events.Envelope{
		Event: topics.EventLiveUpdate,
		Data:  data,
	})
	if err != nil {
		return "", nil, fmt.Errorf("encode envelope: %w", err)
	}
	return topics.FormChannel(msg.FormID), env, nil
}

// toDLQ encaminha a mensagem crua para o tópico de DLQ, se configurado
func (r *Relay) toDLQ(ctx context.Context, m kafka.Message) {
	if r.DLQ == nil {
		return
	}
	dlqCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := skafka.WriteJSON(dlqCtx, r.DLQ, string(m.Key), m.Value); err != nil {
		r.Log.Warn("dlq write failed", zap.Error(err))
		if r.OnError != nil {
			r.OnError("dlq")
		}
	}
}
