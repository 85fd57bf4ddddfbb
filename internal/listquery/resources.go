package listquery

import "time"

type BotFilters struct {
	Status          []string   `url:"status,comma,omitempty" validate:"omitempty,dive,oneof=joining in_call completed failed"`
	MeetingPlatform []string   `url:"meetingPlatform,comma,omitempty" validate:"omitempty,dive,oneof=zoom meet teams"`
	BotName         *string    `url:"botName,omitempty"`
	MeetingURL      *string    `url:"meetingUrl,omitempty"`
	CreatedAfter    *time.Time `url:"createdAfter,omitempty"`
	CreatedBefore   *time.Time `url:"createdBefore,omitempty"`
}

type ScheduledBotFilters struct {
	Status          []string   `url:"status,comma,omitempty" validate:"omitempty,dive,oneof=scheduled completed failed cancelled"`
	MeetingPlatform []string   `url:"meetingPlatform,comma,omitempty" validate:"omitempty,dive,oneof=zoom meet teams"`
	BotName         *string    `url:"botName,omitempty"`
	CreatedAfter    *time.Time `url:"createdAfter,omitempty"`
	CreatedBefore   *time.Time `url:"createdBefore,omitempty"`
	JoinAfter       *time.Time `url:"joinAfter,omitempty"`
	JoinBefore      *time.Time `url:"joinBefore,omitempty"`
}

type LogFilters struct {
	ID            *int64     `url:"id,omitempty" validate:"omitempty,gt=0"`
	APIKeyID      *int64     `url:"apiKeyId,omitempty" validate:"omitempty,gt=0"`
	Module        []string   `url:"module,comma,omitempty" validate:"omitempty,dive,oneof=bots calendars webhooks teams billing"`
	Method        []string   `url:"method,comma,omitempty" validate:"omitempty,dive,oneof=GET POST PUT PATCH DELETE"`
	Path          *string    `url:"path,omitempty"`
	CreatedAfter  *time.Time `url:"createdAfter,omitempty"`
	CreatedBefore *time.Time `url:"createdBefore,omitempty"`
}

type CalendarFilters struct {
	Provider []string `url:"provider,comma,omitempty" validate:"omitempty,dive,oneof=google microsoft"`
	Email    *string  `url:"email,omitempty"`
}

type CalendarEventFilters struct {
	Status      []string   `url:"status,comma,omitempty" validate:"omitempty,dive,oneof=upcoming ongoing past cancelled"`
	Title       *string    `url:"title,omitempty"`
	StartAfter  *time.Time `url:"startAfter,omitempty"`
	StartBefore *time.Time `url:"startBefore,omitempty"`
}

type WebhookMessageFilters struct {
	Status        []string   `url:"status,comma,omitempty" validate:"omitempty,dive,oneof=pending delivered failed"`
	EventType     *string    `url:"eventType,omitempty"`
	CreatedAfter  *time.Time `url:"createdAfter,omitempty"`
	CreatedBefore *time.Time `url:"createdBefore,omitempty"`
}

type TeamFilters struct {
	Name *string `url:"name,omitempty"`
}

type TicketFilters struct {
	Status        []string   `url:"status,comma,omitempty" validate:"omitempty,dive,oneof=open pending resolved closed"`
	Priority      []string   `url:"priority,comma,omitempty" validate:"omitempty,dive,oneof=low normal high urgent"`
	Module        []string   `url:"module,comma,omitempty" validate:"omitempty,dive,oneof=bots calendars webhooks teams billing"`
	Subject       *string    `url:"subject,omitempty"`
	CreatedAfter  *time.Time `url:"createdAfter,omitempty"`
	CreatedBefore *time.Time `url:"createdBefore,omitempty"`
}

// ScreenshotFilters is empty; screenshots are only fetched whole.
type ScreenshotFilters struct{}

var createdRange = Range{After: "createdAfter", Before: "createdBefore"}

var (
	Bots = NewSchema[BotFilters](Config{
		Resource: "bots",
		Ranges:   []Range{createdRange},
	})
	ScheduledBots = NewSchema[ScheduledBotFilters](Config{
		Resource: "scheduled-bots",
		Ranges:   []Range{createdRange, {After: "joinAfter", Before: "joinBefore"}},
	})
	Logs = NewSchema[LogFilters](Config{
		Resource:     "logs",
		DefaultLimit: 50,
		Ranges:       []Range{createdRange},
	})
	Calendars = NewSchema[CalendarFilters](Config{
		Resource: "calendars",
	})
	CalendarEvents = NewSchema[CalendarEventFilters](Config{
		Resource: "calendar-events",
		Ranges:   []Range{{After: "startAfter", Before: "startBefore"}},
	})
	WebhookMessages = NewSchema[WebhookMessageFilters](Config{
		Resource: "webhook-messages",
		Ranges:   []Range{createdRange},
	})
	Teams = NewSchema[TeamFilters](Config{
		Resource: "teams",
	})
	Tickets = NewSchema[TicketFilters](Config{
		Resource: "tickets",
		Ranges:   []Range{createdRange},
	})
	Screenshots = NewSchema[ScreenshotFilters](Config{
		Resource: "screenshots",
	})
)
