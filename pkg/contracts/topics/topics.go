package topics

const (
	// Kafka
	FormUpdates = "form_updates"

	FormUpdatesDLQ = "form_updates_dlq"
)

// Eventos nomeados entregues no canal Pub/Sub de um formulário
const (
	EventLiveUpdate       = "live-update"
	EventPredictionUpdate = "prediction-update"
	EventNotification     = "notification"
)

// FormChannel retorna o nome do canal Pub/Sub de um formulário
func FormChannel(formID string) string { return "form-" + formID }
