package transport

import (
	"context"
	"encoding/json"
)

// State é o estado da conexão reportado pelo transporte
type State string

const (
	StateConnected    State = "connected"
	StateDisconnected State = "disconnected"
	StateError        State = "error"
)

// Handler recebe o payload bruto de um evento nomeado entregue no canal
type Handler func(data json.RawMessage)

// StateHandler recebe transições de estado da conexão
// err só é preenchido quando state == StateError
type StateHandler func(state State, err error)

// Channel é uma inscrição ativa em um tópico
// Os handlers executam na goroutine de entrega do transporte, um de cada vez
type Channel interface {
	// Bind registra um handler para um evento nomeado do canal
	Bind(event string, h Handler)
	// BindState registra um handler de estado; o estado corrente é entregue
	// de forma síncrona no momento do bind
	BindState(h StateHandler)
	// UnbindAll remove todos os handlers do canal
	UnbindAll()
	// Close encerra a inscrição; após o retorno nenhum handler é invocado
	Close() error
}

// Transport expõe a capacidade "assine um canal nomeado e receba eventos
// nomeados publicados nele". A negociação de conexão, autenticação e retry
// ficam por conta da implementação.
type Transport interface {
	Subscribe(ctx context.Context, topic string) (Channel, error)
}
