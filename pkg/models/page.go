package models

// Page is the envelope every list endpoint returns.
type Page[T any] struct {
	Data       []T     `json:"data"`
	Cursor     *string `json:"cursor"`     // next page; null on the last page
	PrevCursor *string `json:"prevCursor"` // previous page; null on the first page
}

// Keyed rows expose the (sortKey, id) pair the remote API orders by.
type Keyed interface {
	CursorKey() (sortKey string, id int64)
}
