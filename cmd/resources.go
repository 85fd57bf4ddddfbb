package cmd

import (
	"strconv"

	"botdash/internal/client"
	"botdash/internal/listquery"
	"botdash/pkg/models"
	"github.com/spf13/cobra"
)

// resource binds one paginated endpoint to its filter schema and its table
// layout. Nested endpoints name the flag that carries the parent ID.
type resource[F any, T models.Keyed] struct {
	name   string
	short  string
	schema *listquery.Schema[F]
	path   func(parentID string) string
	parent string
	search string
	header []string
	row    func(T) []string
}

func fixed(path string) func(string) string {
	return func(string) string { return path }
}

func register[F any, T models.Keyed](r resource[F, T]) {
	group := &cobra.Command{
		Use:   r.name,
		Short: r.short,
	}
	group.AddCommand(newListCmd(r), newBrowseCmd(r))
	rootCmd.AddCommand(group)
}

func init() {
	register(resource[listquery.BotFilters, models.Bot]{
		name:   "bots",
		short:  "Bots that joined or tried to join a meeting",
		schema: listquery.Bots,
		path:   fixed(client.BotsPath),
		search: "botName",
		header: []string{"ID", "UUID", "NAME", "PLATFORM", "STATUS", "CREATED"},
		row: func(b models.Bot) []string {
			return []string{id(b.ID), b.UUID, b.BotName, b.MeetingPlatform, b.Status, b.CreatedAt}
		},
	})
	register(resource[listquery.ScheduledBotFilters, models.ScheduledBot]{
		name:   "scheduled-bots",
		short:  "Bots queued to join a future meeting",
		schema: listquery.ScheduledBots,
		path:   fixed(client.ScheduledBotsPath),
		search: "botName",
		header: []string{"ID", "NAME", "PLATFORM", "STATUS", "JOIN AT"},
		row: func(b models.ScheduledBot) []string {
			return []string{id(b.ID), b.BotName, b.MeetingPlatform, b.Status, b.JoinAt}
		},
	})
	register(resource[listquery.LogFilters, models.APILog]{
		name:   "logs",
		short:  "Requests made with the account's API keys",
		schema: listquery.Logs,
		path:   fixed(client.LogsPath),
		search: "path",
		header: []string{"ID", "KEY", "METHOD", "PATH", "STATUS", "MS", "CREATED"},
		row: func(l models.APILog) []string {
			return []string{id(l.ID), id(l.APIKeyID), l.Method, l.Path, strconv.Itoa(l.StatusCode), strconv.FormatInt(l.DurationMs, 10), l.CreatedAt}
		},
	})
	register(resource[listquery.CalendarFilters, models.Calendar]{
		name:   "calendars",
		short:  "Connected calendars",
		schema: listquery.Calendars,
		path:   fixed(client.CalendarsPath),
		search: "email",
		header: []string{"ID", "UUID", "NAME", "EMAIL", "PROVIDER"},
		row: func(c models.Calendar) []string {
			return []string{id(c.ID), c.UUID, c.Name, c.Email, c.Provider}
		},
	})
	register(resource[listquery.CalendarEventFilters, models.CalendarEvent]{
		name:   "calendar-events",
		short:  "Events synced from one calendar",
		schema: listquery.CalendarEvents,
		path:   client.CalendarEventsPath,
		parent: "calendar",
		search: "title",
		header: []string{"ID", "TITLE", "STATUS", "START", "END", "BOT"},
		row: func(e models.CalendarEvent) []string {
			return []string{id(e.ID), e.Title, e.Status, e.StartTime, e.EndTime, strconv.FormatBool(e.BotBooked)}
		},
	})
	register(resource[listquery.WebhookMessageFilters, models.WebhookMessage]{
		name:   "webhook-messages",
		short:  "Webhook delivery attempts",
		schema: listquery.WebhookMessages,
		path:   fixed(client.WebhookMessagesPath),
		search: "eventType",
		header: []string{"ID", "EVENT", "STATUS", "CODE", "ATTEMPTS", "CREATED"},
		row: func(m models.WebhookMessage) []string {
			return []string{id(m.ID), m.EventType, m.Status, strconv.Itoa(m.ResponseCode), strconv.Itoa(m.Attempts), m.CreatedAt}
		},
	})
	register(resource[listquery.TeamFilters, models.Team]{
		name:   "teams",
		short:  "Teams on the account",
		schema: listquery.Teams,
		path:   fixed(client.TeamsPath),
		search: "name",
		header: []string{"ID", "NAME", "MEMBERS", "CREATED"},
		row: func(t models.Team) []string {
			return []string{id(t.ID), t.Name, strconv.Itoa(t.MemberCount), t.CreatedAt}
		},
	})
	register(resource[listquery.TicketFilters, models.Ticket]{
		name:   "tickets",
		short:  "Support tickets",
		schema: listquery.Tickets,
		path:   fixed(client.TicketsPath),
		search: "subject",
		header: []string{"ID", "SUBJECT", "MODULE", "PRIORITY", "STATUS", "CREATED"},
		row: func(t models.Ticket) []string {
			return []string{id(t.ID), t.Subject, t.Module, t.Priority, t.Status, t.CreatedAt}
		},
	})
	register(resource[listquery.ScreenshotFilters, models.Screenshot]{
		name:   "screenshots",
		short:  "Screenshots taken by one bot",
		schema: listquery.Screenshots,
		path:   client.ScreenshotsPath,
		parent: "bot",
		header: []string{"ID", "URL", "CREATED"},
		row: func(s models.Screenshot) []string {
			return []string{id(s.ID), s.URL, s.CreatedAt}
		},
	})
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
