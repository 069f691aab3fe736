package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/radieske/live-form-tracker-poc/internal/tracker/history"
	"github.com/radieske/live-form-tracker-poc/internal/tracker/merge"
	"github.com/radieske/live-form-tracker-poc/internal/tracker/registry"
	"github.com/radieske/live-form-tracker-poc/internal/tracker/transport"
	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
	"github.com/radieske/live-form-tracker-poc/pkg/contracts/topics"
)

// ErrAlreadyConnected é retornado por Connect quando a sessão já está
// inscrita em outro formulário sem um Disconnect no meio
var ErrAlreadyConnected = errors.New("tracker: session already connected to another form")

// Eventos expostos ao consumidor além dos entregues pelo canal
const (
	EventConnection    = "connection"
	EventDisconnection = "disconnection"
	EventError         = "error"
)

// StatusPayload é o payload dos eventos "connection" e "disconnection"
type StatusPayload struct {
	Status string `json:"status"`
}

// ErrorPayload é o payload do evento "error"; carrega o erro bruto do transporte
type ErrorPayload struct {
	Err error
}

// Session acompanha um formulário de apostas em tempo real: mantém uma
// inscrição no canal do formulário, funde cada atualização parcial recebida
// na coleção de jogos e repassa os eventos tipados aos listeners registrados
//
// Uma sessão cobre exatamente um formulário por vez; crie uma por tela/tópico
// em vez de compartilhar uma instância global
type Session struct {
	log *zap.Logger
	tr  transport.Transport
	reg *registry.Registry

	// estado inicial vindo do fetch; a coleção viva é recriada a partir dele
	// a cada Connect
	initial []events.Game

	mu        sync.Mutex
	formID    string
	ch        transport.Channel
	connected bool
	games     []events.Game
	hist      *history.Log

	// callbacks opcionais de métricas, ligados antes do Connect
	OnUpdate        func()
	OnNotification  func()
	OnListenerPanic func(event string)
}

// NewSession cria uma sessão sobre o transporte dado, semeada com os jogos
// retornados pelo fetch inicial do formulário
func NewSession(log *zap.Logger, tr transport.Transport, games []events.Game) *Session {
	s := &Session{
		log:     log,
		tr:      tr,
		initial: append([]events.Game(nil), games...),
	}
	s.reg = registry.New(func(event string, recovered any) {
		log.Error("listener panic",
			zap.String("event", event),
			zap.Any("panic", recovered),
		)
		if s.OnListenerPanic != nil {
			s.OnListenerPanic(event)
		}
	})
	return s
}

// Connect assina o canal do formulário e liga os handlers fixos do canal
// aos listeners da sessão. Não bloqueia esperando dados: eventos chegam
// depois, na goroutine de entrega do transporte.
//
// Chamar Connect de novo para o mesmo formulário é no-op (os bindings já
// existentes são mantidos, nunca duplicados); para um formulário diferente
// retorna ErrAlreadyConnected até que Disconnect seja chamado.
func (s *Session) Connect(ctx context.Context, formID string) error {
	s.mu.Lock()
	if s.ch != nil {
		same := s.formID == formID
		s.mu.Unlock()
		if same {
			return nil
		}
		return ErrAlreadyConnected
	}
	s.mu.Unlock()

	ch, err := s.tr.Subscribe(ctx, topics.FormChannel(formID))
	if err != nil {
		return fmt.Errorf("connect form %s: %w", formID, err)
	}

	s.mu.Lock()
	if s.ch != nil {
		// outro Connect ganhou a corrida; descarta a inscrição extra
		same := s.formID == formID
		s.mu.Unlock()
		_ = ch.Close()
		if same {
			return nil
		}
		return ErrAlreadyConnected
	}
	s.formID = formID
	s.ch = ch
	s.games = append([]events.Game(nil), s.initial...)
	s.hist = history.New(history.DefaultLimit)
	s.mu.Unlock()

	ch.Bind(topics.EventLiveUpdate, s.onLiveUpdate)
	ch.Bind(topics.EventPredictionUpdate, s.onPredictionUpdate)
	ch.Bind(topics.EventNotification, s.onNotification)
	ch.BindState(s.onState)

	s.log.Info("session connected", zap.String("form_id", formID))
	return nil
}

// Disconnect desfaz os bindings, encerra a inscrição, limpa os listeners e
// descarta jogos e histórico. Seguro quando nunca conectou e idempotente:
// a segunda chamada seguida não faz nada. Quando retorna, nenhum listener
// será mais invocado.
func (s *Session) Disconnect() {
	s.mu.Lock()
	ch := s.ch
	formID := s.formID
	s.ch = nil
	s.formID = ""
	s.connected = false
	s.mu.Unlock()

	if ch == nil {
		return
	}

	// Close é síncrono: espera qualquer dispatch em andamento e bloqueia os
	// próximos antes de retornar
	ch.UnbindAll()
	_ = ch.Close()
	s.reg.Clear()

	s.mu.Lock()
	s.games = nil
	s.hist = nil
	s.mu.Unlock()

	s.log.Info("session disconnected", zap.String("form_id", formID))
}

// IsConnected reflete o último estado reportado pelo transporte
func (s *Session) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch != nil && s.connected
}

// On registra um callback para um dos eventos expostos ("connection",
// "disconnection", "live-update", "prediction-update", "notification",
// "error") e retorna a função que desfaz essa inscrição
func (s *Session) On(event string, fn registry.Handler) (off func()) {
	id := s.reg.Register(event, fn)
	return func() { s.reg.Unregister(event, id) }
}

// Games retorna uma cópia da coleção corrente de jogos, na ordem do fetch
// inicial
func (s *Session) Games() []events.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]events.Game, len(s.games))
	copy(out, s.games)
	return out
}

// History retorna os últimos eventos brutos recebidos, do mais recente para
// o mais antigo; vazio quando desconectado
func (s *Session) History() []events.UpdateEvent {
	s.mu.Lock()
	h := s.hist
	s.mu.Unlock()
	if h == nil {
		return nil
	}
	return h.All()
}

// onLiveUpdate valida o payload na borda, funde na coleção, grava no
// histórico e repassa o evento tipado aos listeners
func (s *Session) onLiveUpdate(data json.RawMessage) {
	var ev events.UpdateEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		s.log.Warn("invalid live-update payload", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.games = merge.Apply(s.games, ev)
	h := s.hist
	s.mu.Unlock()

	if h != nil {
		h.Record(ev)
	}
	if s.OnUpdate != nil {
		s.OnUpdate()
	}
	s.reg.Dispatch(topics.EventLiveUpdate, ev)
}

// onPredictionUpdate trata a previsão recalculada de um jogo como uma
// atualização parcial que toca só updated_prediction
func (s *Session) onPredictionUpdate(data json.RawMessage) {
	var pu events.PredictionUpdate
	if err := json.Unmarshal(data, &pu); err != nil {
		s.log.Warn("invalid prediction-update payload", zap.Error(err))
		return
	}

	p := pu.Prediction
	s.mu.Lock()
	s.games = merge.Apply(s.games, events.UpdateEvent{
		Updates: []events.GameUpdate{{GameID: pu.GameID, UpdatedPrediction: &p}},
	})
	s.mu.Unlock()

	s.reg.Dispatch(topics.EventPredictionUpdate, pu)
}

func (s *Session) onNotification(data json.RawMessage) {
	var n events.Notification
	if err := json.Unmarshal(data, &n); err != nil {
		s.log.Warn("invalid notification payload", zap.Error(err))
		return
	}
	if s.OnNotification != nil {
		s.OnNotification()
	}
	s.reg.Dispatch(topics.EventNotification, n)
}

// onState traduz transições do transporte nos eventos de conexão expostos
// A sessão só observa: retry de conexão é problema do transporte
func (s *Session) onState(st transport.State, err error) {
	s.mu.Lock()
	s.connected = st == transport.StateConnected
	s.mu.Unlock()

	switch st {
	case transport.StateConnected:
		s.reg.Dispatch(EventConnection, StatusPayload{Status: string(st)})
	case transport.StateDisconnected:
		s.reg.Dispatch(EventDisconnection, StatusPayload{Status: string(st)})
	case transport.StateError:
		if err != nil {
			s.log.Warn("transport error", zap.Error(err))
		}
		s.reg.Dispatch(EventError, ErrorPayload{Err: err})
	}
}
