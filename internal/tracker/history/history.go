package history

import (
	"sync"

	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
)

// DefaultLimit é quantos eventos brutos ficam retidos para exibição/auditoria
const DefaultLimit = 10

// Log guarda os últimos eventos de atualização recebidos na sessão, do mais
// recente para o mais antigo. Só vive em memória: é criado no connect e
// descartado no disconnect.
type Log struct {
	mu    sync.Mutex
	limit int
	items []events.UpdateEvent
}

// New cria um log vazio; limit <= 0 usa DefaultLimit
func New(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{limit: limit}
}

// Record insere o evento no topo do log e descarta o mais antigo quando o
// limite é excedido
func (l *Log) Record(ev events.UpdateEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]events.UpdateEvent{ev}, l.items...)
	if len(l.items) > l.limit {
		l.items = l.items[:l.limit]
	}
}

// All retorna uma cópia do log, do mais recente para o mais antigo
func (l *Log) All() []events.UpdateEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]events.UpdateEvent, len(l.items))
	copy(out, l.items)
	return out
}

// Len retorna quantos eventos estão retidos
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
