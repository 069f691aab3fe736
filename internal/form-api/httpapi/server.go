package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/radieske/live-form-tracker-poc/internal/form-api/cache"
	"github.com/radieske/live-form-tracker-poc/internal/form-api/dto"
	"github.com/radieske/live-form-tracker-poc/internal/form-api/repo"
)

// API expõe o endpoint REST de consulta de formulários de apostas
// É o colaborador de fetch inicial do form-watcher: um request/response
// simples que devolve a lista de jogos do formulário
type API struct {
	ReadRepo *repo.ReadRepo // acesso ao banco de dados
	Cache    *cache.Cache   // cache de formulários
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/forms/{id}", a.getForm)
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// getForm retorna um formulário com seus jogos, preferencialmente do cache
func (a *API) getForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var fromCache dto.FormResponse
	if ok, _ := a.Cache.GetForm(r.Context(), id, &fromCache); ok {
		writeJSON(w, http.StatusOK, fromCache)
		return
	}

	form, err := a.ReadRepo.GetForm(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	_ = a.Cache.SetForm(r.Context(), id, form, 30*time.Second) // salva no cache por 30s
	writeJSON(w, http.StatusOK, form)
}
