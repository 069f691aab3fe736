package dto

import "github.com/radieske/live-form-tracker-poc/pkg/contracts/events"

// FormResponse é a resposta do GET /v1/forms/{id}
// games vem na ordem de inserção do formulário; essa ordem é a que o cliente
// preserva durante toda a sessão
type FormResponse struct {
	FormID string        `json:"form_id"`
	Games  []events.Game `json:"games"`
}
