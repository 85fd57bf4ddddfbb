// Package filterstate applies filter edits to a list location. Every edit
// drops the cursor so the list restarts from its first page under the new
// filter set.
package filterstate

import (
	"strings"
	"time"

	"botdash/internal/navigation"
)

// Mutation edits one filter parameter.
type Mutation func(navigation.Query) navigation.Query

// SetText sets a free-text filter. Blank text removes the filter.
func SetText(key, text string) Mutation {
	return func(q navigation.Query) navigation.Query {
		text = strings.TrimSpace(text)
		if text == "" {
			return q.Without(key)
		}
		return q.With(key, text)
	}
}

// SetValues sets a multi-select filter as a comma-joined list. Blank and
// repeated values are dropped; no values removes the filter.
func SetValues(key string, values ...string) Mutation {
	return func(q navigation.Query) navigation.Query {
		seen := make(map[string]bool, len(values))
		kept := make([]string, 0, len(values))
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			kept = append(kept, v)
		}
		if len(kept) == 0 {
			return q.Without(key)
		}
		return q.With(key, strings.Join(kept, ","))
	}
}

// SetTime sets one side of a date range. The zero time removes it.
func SetTime(key string, t time.Time) Mutation {
	return func(q navigation.Query) navigation.Query {
		if t.IsZero() {
			return q.Without(key)
		}
		return q.With(key, t.UTC().Format(time.RFC3339Nano))
	}
}

// Clear removes a filter.
func Clear(key string) Mutation {
	return func(q navigation.Query) navigation.Query {
		return q.Without(key)
	}
}

// Apply runs the mutations in order and removes the cursor key. The key
// is omitted rather than emptied: its absence is what marks page one.
func Apply(q navigation.Query, ms ...Mutation) navigation.Query {
	for _, m := range ms {
		q = m(q)
	}
	return q.Without(navigation.CursorKey)
}

// Reset drops every filter and the cursor.
func Reset(q navigation.Query) navigation.Query {
	return q.Bare()
}
