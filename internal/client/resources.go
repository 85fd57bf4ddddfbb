package client

import (
	"context"
	"net/url"

	"botdash/pkg/models"
)

// Remote List API paths.
const (
	BotsPath            = "/bots"
	ScheduledBotsPath   = "/bots/scheduled"
	LogsPath            = "/logs"
	CalendarsPath       = "/calendars"
	WebhookMessagesPath = "/webhooks/messages"
	TeamsPath           = "/teams"
	TicketsPath         = "/support/tickets"
)

func (c *BotClient) ListBots(ctx context.Context, params url.Values) (*models.Page[models.Bot], error) {
	return List[models.Bot](ctx, c, BotsPath, params)
}

func (c *BotClient) ListScheduledBots(ctx context.Context, params url.Values) (*models.Page[models.ScheduledBot], error) {
	return List[models.ScheduledBot](ctx, c, ScheduledBotsPath, params)
}

func (c *BotClient) ListLogs(ctx context.Context, params url.Values) (*models.Page[models.APILog], error) {
	return List[models.APILog](ctx, c, LogsPath, params)
}

func (c *BotClient) ListCalendars(ctx context.Context, params url.Values) (*models.Page[models.Calendar], error) {
	return List[models.Calendar](ctx, c, CalendarsPath, params)
}

// ListCalendarEvents pages through the events of one calendar.
func (c *BotClient) ListCalendarEvents(ctx context.Context, calendarID string, params url.Values) (*models.Page[models.CalendarEvent], error) {
	return List[models.CalendarEvent](ctx, c, CalendarEventsPath(calendarID), params)
}

func (c *BotClient) ListWebhookMessages(ctx context.Context, params url.Values) (*models.Page[models.WebhookMessage], error) {
	return List[models.WebhookMessage](ctx, c, WebhookMessagesPath, params)
}

func (c *BotClient) ListTeams(ctx context.Context, params url.Values) (*models.Page[models.Team], error) {
	return List[models.Team](ctx, c, TeamsPath, params)
}

func (c *BotClient) ListTickets(ctx context.Context, params url.Values) (*models.Page[models.Ticket], error) {
	return List[models.Ticket](ctx, c, TicketsPath, params)
}

func (c *BotClient) ListScreenshots(ctx context.Context, botUUID string, params url.Values) (*models.Page[models.Screenshot], error) {
	return List[models.Screenshot](ctx, c, ScreenshotsPath(botUUID), params)
}

// AllCalendarEvents loads every event of a calendar matching params.
func (c *BotClient) AllCalendarEvents(ctx context.Context, calendarID string, params url.Values) ([]models.CalendarEvent, error) {
	return FetchAll[models.CalendarEvent](ctx, c, CalendarEventsPath(calendarID), params)
}

// AllScreenshots loads every screenshot a bot took.
func (c *BotClient) AllScreenshots(ctx context.Context, botUUID string) ([]models.Screenshot, error) {
	return FetchAll[models.Screenshot](ctx, c, ScreenshotsPath(botUUID), nil)
}

func (c *BotClient) AllCalendars(ctx context.Context) ([]models.Calendar, error) {
	return FetchAll[models.Calendar](ctx, c, CalendarsPath, nil)
}

func (c *BotClient) AllTeams(ctx context.Context) ([]models.Team, error) {
	return FetchAll[models.Team](ctx, c, TeamsPath, nil)
}

// CalendarEventsPath is the events collection of one calendar.
func CalendarEventsPath(calendarID string) string {
	return "/calendars/" + url.PathEscape(calendarID) + "/events"
}

// ScreenshotsPath is the screenshots collection of one bot.
func ScreenshotsPath(botUUID string) string {
	return "/bots/" + url.PathEscape(botUUID) + "/screenshots"
}
