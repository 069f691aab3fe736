package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
)

// ErrFormNotFound indica que o form-api não conhece o formulário pedido
var ErrFormNotFound = errors.New("form not found")

// FormResponse é a resposta do GET /v1/forms/{id} do form-api
type FormResponse struct {
	FormID string        `json:"form_id"`
	Games  []events.Game `json:"games"`
}

// Client consulta o form-api para obter o estado inicial de um formulário
// É o fetch único que semeia a sessão; as atualizações seguintes chegam pelo
// canal Pub/Sub
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Form busca o formulário e sua lista de jogos
// Qualquer falha é recuperável: o chamador decide se mostra erro ou tenta de novo
func (c *Client) Form(ctx context.Context, formID string) (FormResponse, error) {
	url := c.BaseURL + "/v1/forms/" + formID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FormResponse{}, fmt.Errorf("fetch form %s: %w", formID, err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return FormResponse{}, fmt.Errorf("fetch form %s: %w", formID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return FormResponse{}, fmt.Errorf("fetch form %s: %w", formID, ErrFormNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return FormResponse{}, fmt.Errorf("fetch form %s: unexpected status %d", formID, resp.StatusCode)
	}

	var out FormResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return FormResponse{}, fmt.Errorf("fetch form %s: decode: %w", formID, err)
	}
	return out, nil
}
