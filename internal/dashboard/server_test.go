package dashboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"botdash/internal/client"
	"botdash/internal/cursor"
	"botdash/internal/dashboard"
	"botdash/internal/metrics"
	"botdash/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type remote struct {
	mu      sync.Mutex
	queries []url.Values
	paths   []string
	status  int
	page    any
}

func (r *remote) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.queries = append(r.queries, req.URL.Query())
	r.paths = append(r.paths, req.URL.Path)
	r.mu.Unlock()

	if r.status != 0 {
		w.WriteHeader(r.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(r.page)
}

type harness struct {
	remote  *remote
	metrics *metrics.Metrics
	handler http.Handler
	logs    *test.Hook
}

func newHarness(t *testing.T, page any) *harness {
	t.Helper()
	r := &remote{page: page}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	m := metrics.New()
	api := client.New(client.ClientConfig{BaseURL: srv.URL, APIKey: "k"})
	return &harness{remote: r, metrics: m, handler: dashboard.New(api, m, logger).Handler(), logs: hook}
}

func (h *harness) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

type body struct {
	Data  []map[string]any `json:"data"`
	Links struct {
		Prev string `json:"prev"`
		Next string `json:"next"`
	} `json:"links"`
	State   string `json:"state"`
	Anchors *struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"anchors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) body {
	t.Helper()
	var b body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	return b
}

func strptr(s string) *string { return &s }

func TestFirstPageHidesPrev(t *testing.T) {
	h := newHarness(t, models.Page[models.Bot]{
		Data:       []models.Bot{{ID: 1, CreatedAt: "2024-01-01T00:00:00Z"}},
		PrevCursor: strptr("abc"),
	})

	rec := h.get(t, "/bots?status=completed")
	require.Equal(t, http.StatusOK, rec.Code)
	b := decode(t, rec)
	assert.Empty(t, b.Links.Prev)
	assert.Empty(t, b.Links.Next)
	assert.Equal(t, "first-page", b.State)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "completed", h.remote.queries[0].Get("status"))
}

func TestMiddlePageLinks(t *testing.T) {
	in := cursor.Encode(cursor.Cursor{SortKey: "2024-01-15T10:00:00.000Z", ID: 42})
	next := cursor.Encode(cursor.Cursor{SortKey: "2024-01-16T10:00:00.000Z", ID: 50})
	prev := cursor.Encode(cursor.Cursor{SortKey: "2024-01-14T10:00:00.000Z", ID: 40, Backward: true})

	h := newHarness(t, models.Page[models.ScheduledBot]{
		Data: []models.ScheduledBot{
			{ID: 41, JoinAt: "2024-01-15T11:00:00Z"},
			{ID: 49, JoinAt: "2024-01-16T09:00:00Z"},
		},
		Cursor:     &next,
		PrevCursor: &prev,
	})

	target := "/scheduled-bots?status=scheduled%2Ccompleted&tab=upcoming&cursor=" + url.QueryEscape(in)
	rec := h.get(t, target)
	require.Equal(t, http.StatusOK, rec.Code)
	b := decode(t, rec)

	assert.Equal(t, "/scheduled-bots?status=scheduled%2Ccompleted&tab=upcoming&cursor="+url.QueryEscape(next), b.Links.Next)
	assert.Equal(t, "/scheduled-bots?status=scheduled%2Ccompleted&tab=upcoming&cursor="+url.QueryEscape(prev), b.Links.Prev)
	assert.Equal(t, "forward", b.State)
	require.Len(t, b.Data, 2)

	require.NotNil(t, b.Anchors)
	first, err := cursor.Decode(b.Anchors.First)
	require.NoError(t, err)
	assert.Equal(t, int64(41), first.ID)
	assert.True(t, first.Backward)

	sent := h.remote.queries[0]
	assert.Equal(t, in, sent.Get("cursor"), "the remote API receives the opaque token")
	assert.Equal(t, "scheduled,completed", sent.Get("status"))
	assert.False(t, sent.Has("tab"))
}

func TestInvalidQueryRedirectsToFirstPage(t *testing.T) {
	h := newHarness(t, models.Page[models.Bot]{})

	targets := []string{
		"/bots?status=bogus&tab=x",
		"/bots?cursor=not-valid-base64!!",
		"/bots?createdAfter=2024-02-01T00:00:00Z&createdBefore=2024-01-01T00:00:00Z",
		"/bots?limit=1000",
	}
	for _, target := range targets {
		rec := h.get(t, target)
		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.Equal(t, "/bots", rec.Header().Get("Location"), target)
	}
	assert.Empty(t, h.remote.queries, "invalid queries never reach the remote API")
	assert.Equal(t, 4.0, testutil.ToFloat64(h.metrics.Requests("bots", metrics.OutcomeRedirect)))
}

func TestLogsDefaultLimit(t *testing.T) {
	h := newHarness(t, models.Page[models.APILog]{})

	rec := h.get(t, "/logs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "50", h.remote.queries[0].Get("limit"))

	b := decode(t, rec)
	assert.NotNil(t, b.Data)
	assert.Nil(t, b.Anchors)
}

func TestCalendarEventsRoute(t *testing.T) {
	h := newHarness(t, models.Page[models.CalendarEvent]{Data: []models.CalendarEvent{{ID: 1}}})

	rec := h.get(t, "/calendars/cal-7/events?status=upcoming")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/calendars/cal-7/events", h.remote.paths[0])
	assert.Equal(t, "upcoming", h.remote.queries[0].Get("status"))
}

func TestUpstreamFailure(t *testing.T) {
	h := newHarness(t, nil)
	h.remote.status = http.StatusInternalServerError

	rec := h.get(t, "/teams")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Requests("teams", metrics.OutcomeUpstreamError)))
	require.NotNil(t, h.logs.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, h.logs.LastEntry().Level)
	assert.Equal(t, "teams", h.logs.LastEntry().Data["resource"])
}

func TestScreenshotsFetchesAllPages(t *testing.T) {
	h := newHarness(t, models.Page[models.Screenshot]{Data: []models.Screenshot{{ID: 1}}})

	rec := h.get(t, "/bots/b-1/screenshots")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec).Data, 1)
	assert.Equal(t, "/bots/b-1/screenshots", h.remote.paths[0])
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t, models.Page[models.Team]{})
	assert.Equal(t, http.StatusOK, h.get(t, "/healthz").Code)

	h.get(t, "/teams")
	rec := h.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `botdash_list_requests_total{outcome="ok",resource="teams"} 1`)
}
