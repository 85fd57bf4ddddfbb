package models

type Calendar struct {
	ID        int64  `json:"id"`
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Provider  string `json:"provider"` // google, microsoft
	CreatedAt string `json:"createdAt"`
}

func (c Calendar) CursorKey() (string, int64) { return c.CreatedAt, c.ID }

// CalendarEvent is a meeting synced from a connected calendar.
type CalendarEvent struct {
	ID         int64  `json:"id"`
	CalendarID int64  `json:"calendarId"`
	Title      string `json:"title"`
	MeetingURL string `json:"meetingUrl,omitempty"`
	Status     string `json:"status"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	BotBooked  bool   `json:"botBooked"`
}

func (e CalendarEvent) CursorKey() (string, int64) { return e.StartTime, e.ID }
