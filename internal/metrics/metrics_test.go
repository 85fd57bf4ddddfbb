package metrics_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"botdash/internal/metrics"
	"botdash/pkg/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calendars []models.Calendar
	teams     []models.Team
	teamsErr  error
}

func (f *fakeSource) AllCalendars(ctx context.Context) ([]models.Calendar, error) {
	return f.calendars, nil
}

func (f *fakeSource) AllTeams(ctx context.Context) ([]models.Team, error) {
	return f.teams, f.teamsErr
}

func TestAccountCollector(t *testing.T) {
	src := &fakeSource{
		calendars: []models.Calendar{{Provider: "google"}, {Provider: "Google"}, {Provider: "microsoft"}, {}},
		teams:     []models.Team{{ID: 1}, {ID: 2}},
	}
	c := &metrics.AccountCollector{Source: src}

	expected := `
# HELP botdash_calendars_total Connected calendars grouped by provider.
# TYPE botdash_calendars_total gauge
botdash_calendars_total{provider="google"} 2
botdash_calendars_total{provider="microsoft"} 1
botdash_calendars_total{provider="unknown"} 1
# HELP botdash_teams_total Teams on the account.
# TYPE botdash_teams_total gauge
botdash_teams_total 2
# HELP botdash_up Was the last scrape of the remote API successful.
# TYPE botdash_up gauge
botdash_up 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"botdash_calendars_total", "botdash_teams_total", "botdash_up"))
}

func TestAccountCollectorReportsDown(t *testing.T) {
	src := &fakeSource{teamsErr: errors.New("boom")}
	c := &metrics.AccountCollector{Source: src}

	expected := `
# HELP botdash_up Was the last scrape of the remote API successful.
# TYPE botdash_up gauge
botdash_up 0
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "botdash_up"))
}

func TestObserve(t *testing.T) {
	m := metrics.New()
	m.Observe("bots", metrics.OutcomeOK, 10*time.Millisecond)
	m.Observe("bots", metrics.OutcomeOK, 20*time.Millisecond)
	m.Observe("bots", metrics.OutcomeRedirect, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests("bots", metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests("bots", metrics.OutcomeRedirect)))

	n, err := testutil.GatherAndCount(m.Registry, "botdash_list_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
