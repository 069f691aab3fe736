package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
)

// RedisTransport implementa Transport sobre Redis Pub/Sub
// Cada mensagem publicada no canal é um events.Envelope em JSON
type RedisTransport struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedis(rdb *redis.Client, log *zap.Logger) *RedisTransport {
	return &RedisTransport{rdb: rdb, log: log}
}

// Subscribe assina o canal e só retorna depois do Redis confirmar a inscrição
func (t *RedisTransport) Subscribe(ctx context.Context, topic string) (Channel, error) {
	sub := t.rdb.Subscribe(ctx, topic)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	c := &redisChannel{
		log:      t.log,
		sub:      sub,
		topic:    topic,
		state:    StateConnected,
		handlers: make(map[string][]Handler),
	}
	go c.loop(ctx)
	return c, nil
}

// redisChannel é uma inscrição ativa em um canal Redis
// mu serializa dispatch e teardown: Close só retorna depois que qualquer
// dispatch em andamento termina, e nenhum handler roda depois dele
type redisChannel struct {
	log   *zap.Logger
	sub   *redis.PubSub
	topic string

	mu       sync.Mutex
	closed   bool
	state    State
	handlers map[string][]Handler
	stateHs  []StateHandler
}

func (c *redisChannel) Bind(event string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.handlers[event] = append(c.handlers[event], h)
}

func (c *redisChannel) BindState(h StateHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stateHs = append(c.stateHs, h)
	h(c.state, nil) // entrega o estado corrente na hora do bind
}

func (c *redisChannel) UnbindAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = make(map[string][]Handler)
	c.stateHs = nil
}

func (c *redisChannel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.handlers = make(map[string][]Handler)
	c.stateHs = nil
	c.mu.Unlock()
	return c.sub.Close()
}

// loop drena a inscrição e despacha cada envelope para os handlers do evento
// Erros de leitura viram StateError; o go-redis reconecta sozinho na próxima
// chamada e a recuperação vira StateConnected
func (c *redisChannel) loop(ctx context.Context) {
	for {
		msg, err := c.sub.ReceiveMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || c.isClosed() {
				c.emitState(StateDisconnected, nil)
				return
			}
			c.emitState(StateError, err)
			continue
		}

		c.emitState(StateConnected, nil)

		var env events.Envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			c.log.Warn("invalid channel message",
				zap.String("topic", c.topic),
				zap.Error(err),
			)
			continue
		}
		c.dispatch(env.Event, env.Data)
	}
}

func (c *redisChannel) dispatch(event string, data json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for _, h := range c.handlers[event] {
		h(data)
	}
}

// emitState notifica os handlers de estado apenas em transições
func (c *redisChannel) emitState(s State, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state == s {
		return
	}
	c.state = s
	for _, h := range c.stateHs {
		h(s, err)
	}
}

func (c *redisChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
