package registry

import "sync"

// Handler é um callback registrado para um evento nomeado
type Handler func(payload any)

// PanicFunc é chamada quando um callback entra em panic durante o dispatch
type PanicFunc func(event string, recovered any)

type entry struct {
	id int
	fn Handler
}

// Registry mantém listas ordenadas de callbacks por nome de evento
// Não conhece transporte nem semântica de domínio; o mesmo callback pode ser
// registrado mais de uma vez e será invocado uma vez por registro
type Registry struct {
	mu      sync.Mutex
	nextID  int
	subs    map[string][]entry
	onPanic PanicFunc
}

// New cria um registry; onPanic pode ser nil
func New(onPanic PanicFunc) *Registry {
	return &Registry{
		subs:    make(map[string][]entry),
		onPanic: onPanic,
	}
}

// Register adiciona o callback ao final da lista do evento e retorna o id
// da inscrição, usado em Unregister
func (r *Registry) Register(event string, fn Handler) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.subs[event] = append(r.subs[event], entry{id: r.nextID, fn: fn})
	return r.nextID
}

// Unregister remove a inscrição identificada por id; no-op se o id ou o
// evento não existirem
func (r *Registry) Unregister(event string, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.subs[event]
	for i := range list {
		if list[i].id == id {
			r.subs[event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Dispatch invoca os callbacks do evento na ordem de registro, de forma
// síncrona. Um panic em um callback não impede os demais de rodar.
// Disparar um evento sem listeners não é erro.
func (r *Registry) Dispatch(event string, payload any) {
	r.mu.Lock()
	list := append([]entry(nil), r.subs[event]...)
	r.mu.Unlock()

	for _, e := range list {
		r.invoke(event, e.fn, payload)
	}
}

func (r *Registry) invoke(event string, fn Handler, payload any) {
	defer func() {
		if rec := recover(); rec != nil && r.onPanic != nil {
			r.onPanic(event, rec)
		}
	}()
	fn(payload)
}

// Clear descarta todas as inscrições; usado no teardown da sessão
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = make(map[string][]entry)
}

// Len retorna o número de callbacks registrados para o evento
func (r *Registry) Len(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs[event])
}
