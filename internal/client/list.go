package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"botdash/pkg/models"
	"github.com/sirupsen/logrus"
)

// DefaultMaxPages bounds FetchAll when the config leaves it unset.
const DefaultMaxPages = 100

// ErrTooManyPages stops a FetchAll loop that never reaches a null cursor.
var ErrTooManyPages = errors.New("too many pages")

// List fetches one page from a cursor-paginated endpoint.
func List[T any](ctx context.Context, c *BotClient, path string, params url.Values) (*models.Page[T], error) {
	var page models.Page[T]

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetResult(&page).
		Get(path)

	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}

	if resp.IsError() {
		return nil, &APIError{Method: "GET", Path: path, Status: resp.StatusCode(), Body: resp.String()}
	}

	c.log.WithFields(logrus.Fields{
		"path":     path,
		"rows":     len(page.Data),
		"has_next": page.Cursor != nil,
		"elapsed":  resp.Time(),
	}).Debug("fetched page")

	return &page, nil
}

// FetchAll follows next cursors until the API returns a null one and
// returns every row. It is meant for small, bounded collections.
func FetchAll[T any](ctx context.Context, c *BotClient, path string, params url.Values) ([]T, error) {
	q := url.Values{}
	for k, vs := range params {
		q[k] = append([]string(nil), vs...)
	}
	q.Del("cursor")

	var all []T
	seen := make(map[string]bool)
	for pages := 0; ; pages++ {
		if pages >= c.Config.MaxPages {
			return all, fmt.Errorf("%s: %w (limit %d)", path, ErrTooManyPages, c.Config.MaxPages)
		}

		page, err := List[T](ctx, c, path, q)
		if err != nil {
			return all, err
		}
		all = append(all, page.Data...)

		if page.Cursor == nil || *page.Cursor == "" {
			return all, nil
		}
		if seen[*page.Cursor] {
			return all, fmt.Errorf("%s: %w (cursor repeated)", path, ErrTooManyPages)
		}
		seen[*page.Cursor] = true
		q.Set("cursor", *page.Cursor)
	}
}
