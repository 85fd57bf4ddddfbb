package models

// WebhookMessage is one delivery attempt to the account's webhook URL.
type WebhookMessage struct {
	ID           int64  `json:"id"`
	EventType    string `json:"eventType"`
	URL          string `json:"url"`
	Status       string `json:"status"` // pending, delivered, failed
	ResponseCode int    `json:"responseCode,omitempty"`
	Attempts     int    `json:"attempts"`
	CreatedAt    string `json:"createdAt"`
}

func (m WebhookMessage) CursorKey() (string, int64) { return m.CreatedAt, m.ID }
