// Package cursor encodes and decodes the opaque keyset tokens issued by the
// remote list API.
package cursor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	separator      = "::"
	backwardMarker = "-"
)

// ErrInvalidCursor is returned by Decode for any token it cannot parse.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is a keyset boundary over a collection ordered by (SortKey, ID).
type Cursor struct {
	SortKey  string // ISO-8601 timestamp, kept verbatim
	ID       int64
	Backward bool
}

// Encode builds the wire token: base64("<sortKey>::<id>"), prefixed with
// "-" when the cursor points backward.
func Encode(c Cursor) string {
	plain := c.SortKey + separator + strconv.FormatInt(c.ID, 10)
	token := base64.StdEncoding.EncodeToString([]byte(plain))
	if c.Backward {
		return backwardMarker + token
	}
	return token
}

// Decode parses a wire token. An empty token means "first page" and
// yields a nil cursor with no error.
func Decode(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}

	wire := token
	backward := false
	if strings.HasPrefix(token, backwardMarker) {
		backward = true
		token = token[len(backwardMarker):]
	}

	raw, err := base64.StdEncoding.Strict().DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: not base64", ErrInvalidCursor)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: not utf-8", ErrInvalidCursor)
	}

	parts := strings.Split(string(raw), separator)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: expected 2 parts, got %d", ErrInvalidCursor, len(parts))
	}

	if _, err := ParseTime(parts[0]); err != nil {
		return nil, fmt.Errorf("%w: bad sort key %q", ErrInvalidCursor, parts[0])
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: bad id %q", ErrInvalidCursor, parts[1])
	}

	c := &Cursor{SortKey: parts[0], ID: id, Backward: backward}
	// Tokens are forwarded upstream re-encoded, so only the canonical
	// spelling of a cursor is accepted: no line breaks in the base64, no
	// sign or leading zeros in the id.
	if Encode(*c) != wire {
		return nil, fmt.Errorf("%w: not in canonical form", ErrInvalidCursor)
	}
	return c, nil
}

// String returns the wire token.
func (c Cursor) String() string {
	return Encode(c)
}

// Time returns the parsed sort key. Cursors built by Decode always parse.
func (c Cursor) Time() time.Time {
	t, _ := ParseTime(c.SortKey)
	return t
}

// Reverse returns the same boundary pointing the other way.
func (c Cursor) Reverse() Cursor {
	c.Backward = !c.Backward
	return c
}

// ParseTime accepts full ISO-8601 date-times with a zone designator,
// with or without fractional seconds.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
