// Package navigation computes previous/next links for cursor-paginated
// list views.
package navigation

import (
	"net/url"
	"strings"
)

// Query is the current list location: a path plus its raw query string.
// It is a value; every edit returns a new Query and leaves the receiver
// untouched. Edits only rewrite the segments of the key being changed,
// so all other parameters keep their exact bytes and order.
type Query struct {
	path string
	raw  string
}

func NewQuery(path, rawQuery string) Query {
	return Query{path: path, raw: strings.TrimPrefix(rawQuery, "?")}
}

// ParseHref splits "path?query" into a Query.
func ParseHref(href string) Query {
	path, raw, _ := strings.Cut(href, "?")
	return NewQuery(path, raw)
}

func FromURL(u *url.URL) Query {
	return NewQuery(u.EscapedPath(), u.RawQuery)
}

func (q Query) Path() string     { return q.path }
func (q Query) RawQuery() string { return q.raw }

// Href renders the query as a relative link.
func (q Query) Href() string {
	if q.raw == "" {
		return q.path
	}
	return q.path + "?" + q.raw
}

// Values parses the raw query.
func (q Query) Values() url.Values {
	v, _ := url.ParseQuery(q.raw)
	return v
}

// Get returns the first value for key, unescaped.
func (q Query) Get(key string) string {
	for _, seg := range q.segments() {
		k, v := splitSegment(seg)
		if k == key {
			return v
		}
	}
	return ""
}

// Has reports whether key appears at all, even with an empty value.
func (q Query) Has(key string) bool {
	for _, seg := range q.segments() {
		if k, _ := splitSegment(seg); k == key {
			return true
		}
	}
	return false
}

// With sets key to value. The first existing occurrence is replaced in
// place and any repeats are dropped; a missing key is appended.
func (q Query) With(key, value string) Query {
	encoded := url.QueryEscape(key) + "=" + url.QueryEscape(value)
	segs := q.segments()
	out := make([]string, 0, len(segs)+1)
	replaced := false
	for _, seg := range segs {
		if k, _ := splitSegment(seg); k == key {
			if !replaced {
				out = append(out, encoded)
				replaced = true
			}
			continue
		}
		out = append(out, seg)
	}
	if !replaced {
		out = append(out, encoded)
	}
	return Query{path: q.path, raw: strings.Join(out, "&")}
}

// Without removes every occurrence of key.
func (q Query) Without(key string) Query {
	segs := q.segments()
	out := make([]string, 0, len(segs))
	for _, seg := range segs {
		if k, _ := splitSegment(seg); k == key {
			continue
		}
		out = append(out, seg)
	}
	return Query{path: q.path, raw: strings.Join(out, "&")}
}

// Bare drops the whole query string.
func (q Query) Bare() Query {
	return Query{path: q.path}
}

func (q Query) segments() []string {
	if q.raw == "" {
		return nil
	}
	return strings.Split(q.raw, "&")
}

func splitSegment(seg string) (string, string) {
	k, v, _ := strings.Cut(seg, "=")
	if uk, err := url.QueryUnescape(k); err == nil {
		k = uk
	}
	if uv, err := url.QueryUnescape(v); err == nil {
		v = uv
	}
	return k, v
}
