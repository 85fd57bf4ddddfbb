// Package dashboard serves the list views over HTTP as JSON pages with
// previous/next links.
package dashboard

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"botdash/internal/client"
	"botdash/internal/listquery"
	"botdash/internal/metrics"
	"botdash/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

type Server struct {
	api     *client.BotClient
	metrics *metrics.Metrics
	log     *logrus.Logger
	engine  *gin.Engine
}

func New(api *client.BotClient, m *metrics.Metrics, log *logrus.Logger) *Server {
	if m == nil {
		m = metrics.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestID())

	s := &Server{api: api, metrics: m, log: log, engine: engine}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	listRoute(s, "/bots", listquery.Bots, func(ctx context.Context, _ *gin.Context, p url.Values) (*models.Page[models.Bot], error) {
		return s.api.ListBots(ctx, p)
	})
	listRoute(s, "/scheduled-bots", listquery.ScheduledBots, func(ctx context.Context, _ *gin.Context, p url.Values) (*models.Page[models.ScheduledBot], error) {
		return s.api.ListScheduledBots(ctx, p)
	})
	listRoute(s, "/logs", listquery.Logs, func(ctx context.Context, _ *gin.Context, p url.Values) (*models.Page[models.APILog], error) {
		return s.api.ListLogs(ctx, p)
	})
	listRoute(s, "/calendars", listquery.Calendars, func(ctx context.Context, _ *gin.Context, p url.Values) (*models.Page[models.Calendar], error) {
		return s.api.ListCalendars(ctx, p)
	})
	listRoute(s, "/calendars/:id/events", listquery.CalendarEvents, func(ctx context.Context, c *gin.Context, p url.Values) (*models.Page[models.CalendarEvent], error) {
		return s.api.ListCalendarEvents(ctx, c.Param("id"), p)
	})
	listRoute(s, "/webhook-messages", listquery.WebhookMessages, func(ctx context.Context, _ *gin.Context, p url.Values) (*models.Page[models.WebhookMessage], error) {
		return s.api.ListWebhookMessages(ctx, p)
	})
	listRoute(s, "/teams", listquery.Teams, func(ctx context.Context, _ *gin.Context, p url.Values) (*models.Page[models.Team], error) {
		return s.api.ListTeams(ctx, p)
	})
	listRoute(s, "/tickets", listquery.Tickets, func(ctx context.Context, _ *gin.Context, p url.Values) (*models.Page[models.Ticket], error) {
		return s.api.ListTickets(ctx, p)
	})

	s.engine.GET("/bots/:id/screenshots", s.screenshots)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) entry(c *gin.Context, resource string) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"resource":   resource,
		"request_id": c.GetString(requestIDKey),
	})
}

// screenshots returns every screenshot of a bot in one response; the
// collection is small enough that pagination is not exposed.
func (s *Server) screenshots(c *gin.Context) {
	start := time.Now()
	log := s.entry(c, "screenshots")

	shots, err := s.api.AllScreenshots(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.WithError(err).Error("remote list failed")
		s.metrics.Observe("screenshots", metrics.OutcomeUpstreamError, time.Since(start))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if shots == nil {
		shots = []models.Screenshot{}
	}
	s.metrics.Observe("screenshots", metrics.OutcomeOK, time.Since(start))
	c.JSON(http.StatusOK, gin.H{"data": shots})
}
