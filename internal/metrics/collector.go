package metrics

import (
	"context"
	"strings"
	"sync"
	"time"

	"botdash/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Source is the slice of the API client the collector needs.
type Source interface {
	AllCalendars(ctx context.Context) ([]models.Calendar, error)
	AllTeams(ctx context.Context) ([]models.Team, error)
}

// AccountCollector scrapes account-wide counts from the remote API on
// every Prometheus scrape.
type AccountCollector struct {
	Source  Source
	Timeout time.Duration
	Log     *logrus.Entry

	mu sync.Mutex
}

var (
	upDesc = prometheus.NewDesc(
		"botdash_up", "Was the last scrape of the remote API successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"botdash_scrape_duration_seconds", "Time taken to scrape the remote API.", nil, nil,
	)
	calendarsDesc = prometheus.NewDesc(
		"botdash_calendars_total", "Connected calendars grouped by provider.", []string{"provider"}, nil,
	)
	teamsDesc = prometheus.NewDesc(
		"botdash_teams_total", "Teams on the account.", nil, nil,
	)
)

func (c *AccountCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- calendarsDesc
	ch <- teamsDesc
}

func (c *AccountCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	success := 1.0

	if cals, err := c.Source.AllCalendars(ctx); err == nil {
		byProvider := make(map[string]float64)
		for _, cal := range cals {
			p := strings.ToLower(cal.Provider)
			if p == "" {
				p = "unknown"
			}
			byProvider[p]++
		}
		for p, n := range byProvider {
			ch <- prometheus.MustNewConstMetric(calendarsDesc, prometheus.GaugeValue, n, p)
		}
	} else {
		success = 0
		c.logError("calendars", err)
	}

	if teams, err := c.Source.AllTeams(ctx); err == nil {
		ch <- prometheus.MustNewConstMetric(teamsDesc, prometheus.GaugeValue, float64(len(teams)))
	} else {
		success = 0
		c.logError("teams", err)
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

func (c *AccountCollector) logError(what string, err error) {
	if c.Log != nil {
		c.Log.WithError(err).WithField("resource", what).Warn("scrape failed")
	}
}
