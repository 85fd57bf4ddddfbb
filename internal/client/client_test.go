package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"botdash/internal/client"
	"botdash/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

type fakeAPI struct {
	mu       sync.Mutex
	requests []*http.Request
	handler  func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()
	f.handler(w, r)
}

func newClient(t *testing.T, api *fakeAPI) *client.BotClient {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return client.New(client.ClientConfig{BaseURL: srv.URL, APIKey: "secret", MaxPages: 5})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestListSendsParamsAndKey(t *testing.T) {
	api := &fakeAPI{handler: func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Page[models.Bot]{
			Data:   []models.Bot{{ID: 1, Status: models.BotCompleted}},
			Cursor: strptr("next-token"),
		})
	}}
	c := newClient(t, api)

	page, err := c.ListBots(context.Background(), url.Values{"status": {"completed,failed"}, "cursor": {"a+b="}})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "next-token", *page.Cursor)
	assert.Nil(t, page.PrevCursor)

	require.Len(t, api.requests, 1)
	req := api.requests[0]
	assert.Equal(t, "/bots", req.URL.Path)
	assert.Equal(t, "secret", req.Header.Get(client.APIKeyHeader))
	assert.Equal(t, "completed,failed", req.URL.Query().Get("status"))
	assert.Equal(t, "a+b=", req.URL.Query().Get("cursor"))
}

func TestListAPIError(t *testing.T) {
	api := &fakeAPI{handler: func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}}
	c := newClient(t, api)

	_, err := c.ListTeams(context.Background(), nil)
	require.Error(t, err)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "/teams", apiErr.Path)
	assert.True(t, client.IsAuthError(err))
	assert.False(t, client.IsAuthError(assert.AnError))
}

func TestFetchAllFollowsCursorsUntilNull(t *testing.T) {
	api := &fakeAPI{handler: func(w http.ResponseWriter, r *http.Request) {
		n, _ := strconv.Atoi(r.URL.Query().Get("cursor"))
		page := models.Page[models.CalendarEvent]{Data: []models.CalendarEvent{{ID: int64(n + 1)}}}
		if n < 2 {
			page.Cursor = strptr(strconv.Itoa(n + 1))
		}
		writeJSON(w, page)
	}}
	c := newClient(t, api)

	events, err := c.AllCalendarEvents(context.Background(), "cal/1", url.Values{"cursor": {"ignored"}, "status": {"upcoming"}})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, int64(3), events[2].ID)

	require.Len(t, api.requests, 3)
	assert.Equal(t, "/calendars/cal%2F1/events", api.requests[0].URL.EscapedPath())
	assert.False(t, api.requests[0].URL.Query().Has("cursor"))
	assert.Equal(t, "upcoming", api.requests[2].URL.Query().Get("status"))
	assert.Equal(t, "2", api.requests[2].URL.Query().Get("cursor"))
}

func TestFetchAllStopsOnRepeatedCursor(t *testing.T) {
	api := &fakeAPI{handler: func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Page[models.Screenshot]{Data: []models.Screenshot{{ID: 1}}, Cursor: strptr("same")})
	}}
	c := newClient(t, api)

	shots, err := c.AllScreenshots(context.Background(), "bot-1")
	require.ErrorIs(t, err, client.ErrTooManyPages)
	assert.Len(t, shots, 2)
}

func TestFetchAllPageLimit(t *testing.T) {
	var n int
	api := &fakeAPI{handler: func(w http.ResponseWriter, r *http.Request) {
		n++
		writeJSON(w, models.Page[models.Team]{Data: []models.Team{{ID: int64(n)}}, Cursor: strptr(strconv.Itoa(n))})
	}}
	c := newClient(t, api)

	teams, err := c.AllTeams(context.Background())
	require.ErrorIs(t, err, client.ErrTooManyPages)
	assert.Len(t, teams, 5)
}

func TestPing(t *testing.T) {
	api := &fakeAPI{handler: func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Page[models.Bot]{Data: []models.Bot{}})
	}}
	c := newClient(t, api)

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "1", api.requests[0].URL.Query().Get("limit"))
}
