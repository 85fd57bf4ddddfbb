package models

type Team struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
	CreatedAt   string `json:"createdAt"`
}

func (t Team) CursorKey() (string, int64) { return t.CreatedAt, t.ID }

// Ticket is a support request opened from the dashboard.
type Ticket struct {
	ID        int64  `json:"id"`
	Subject   string `json:"subject"`
	Module    string `json:"module"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
	CreatedAt string `json:"createdAt"`
}

func (t Ticket) CursorKey() (string, int64) { return t.CreatedAt, t.ID }
