package models

// Bot statuses as reported by GET /bots
const (
	BotJoining   = "joining"
	BotInCall    = "in_call"
	BotCompleted = "completed"
	BotFailed    = "failed"
)

// Scheduled bot statuses
const (
	ScheduledPending   = "scheduled"
	ScheduledCompleted = "completed"
	ScheduledFailed    = "failed"
	ScheduledCancelled = "cancelled"
)

// Bot is one bot that joined (or tried to join) a meeting.
type Bot struct {
	ID              int64  `json:"id"`
	UUID            string `json:"uuid"`
	BotName         string `json:"botName"`
	MeetingURL      string `json:"meetingUrl"`
	MeetingPlatform string `json:"meetingPlatform"` // zoom, meet, teams
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	EndedAt         string `json:"endedAt,omitempty"`
}

func (b Bot) CursorKey() (string, int64) { return b.CreatedAt, b.ID }

// ScheduledBot is a bot queued to join at JoinAt.
type ScheduledBot struct {
	ID              int64  `json:"id"`
	BotName         string `json:"botName"`
	MeetingURL      string `json:"meetingUrl"`
	MeetingPlatform string `json:"meetingPlatform"`
	Status          string `json:"status"`
	JoinAt          string `json:"joinAt"`
	CreatedAt       string `json:"createdAt"`
}

func (b ScheduledBot) CursorKey() (string, int64) { return b.JoinAt, b.ID }

// Screenshot is captured by a bot while in a call.
type Screenshot struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	CreatedAt string `json:"createdAt"`
}

func (s Screenshot) CursorKey() (string, int64) { return s.CreatedAt, s.ID }
