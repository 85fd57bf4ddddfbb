package models

// APILog is one request recorded against an API key.
type APILog struct {
	ID         int64  `json:"id"`
	APIKeyID   int64  `json:"apiKeyId"`
	Module     string `json:"module"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	StatusCode int    `json:"statusCode"`
	DurationMs int64  `json:"durationMs"`
	CreatedAt  string `json:"createdAt"`
}

func (l APILog) CursorKey() (string, int64) { return l.CreatedAt, l.ID }
