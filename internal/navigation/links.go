package navigation

import (
	"strings"

	"botdash/internal/cursor"
	"botdash/pkg/models"
)

const CursorKey = "cursor"

// Cursors are the two opaque tokens a remote page response carries.
// Nil or empty means no page in that direction.
type Cursors struct {
	Next *string
	Prev *string
}

// CursorsOf extracts the navigation tokens from a page.
func CursorsOf[T any](p *models.Page[T]) Cursors {
	if p == nil {
		return Cursors{}
	}
	return Cursors{Next: p.Cursor, Prev: p.PrevCursor}
}

// Links holds the hrefs for the previous and next controls. An empty
// string means the control is disabled.
type Links struct {
	Prev string `json:"prev,omitempty"`
	Next string `json:"next,omitempty"`
}

func (l Links) HasPrev() bool { return l.Prev != "" }
func (l Links) HasNext() bool { return l.Next != "" }

// Compute derives both links from the current location and the page the
// remote API returned. The previous link needs a cursor in the current
// query as well: the first page never offers one, whatever the API says.
func Compute(current Query, c Cursors) Links {
	var links Links
	if token := deref(c.Next); token != "" {
		links.Next = current.With(CursorKey, token).Href()
	}
	if token := deref(c.Prev); token != "" && current.Get(CursorKey) != "" {
		links.Prev = current.With(CursorKey, token).Href()
	}
	return links
}

// State classifies a list location by the cursor it carries.
type State uint8

const (
	NoCursor State = iota
	ForwardCursor
	BackwardCursor
)

func (s State) String() string {
	switch s {
	case ForwardCursor:
		return "forward"
	case BackwardCursor:
		return "backward"
	default:
		return "first-page"
	}
}

// StateOf reads the direction marker off the current cursor, if any.
func StateOf(q Query) State {
	token := q.Get(CursorKey)
	switch {
	case token == "":
		return NoCursor
	case strings.HasPrefix(token, "-"):
		return BackwardCursor
	default:
		return ForwardCursor
	}
}

// Anchors derives boundary cursors from the rows on screen: a backward
// cursor at the first row and a forward cursor at the last. Both are nil
// for an empty page.
func Anchors[T models.Keyed](rows []T) (first, last *cursor.Cursor) {
	if len(rows) == 0 {
		return nil, nil
	}
	fk, fid := rows[0].CursorKey()
	lk, lid := rows[len(rows)-1].CursorKey()
	return &cursor.Cursor{SortKey: fk, ID: fid, Backward: true},
		&cursor.Cursor{SortKey: lk, ID: lid}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
