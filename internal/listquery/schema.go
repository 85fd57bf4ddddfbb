// Package listquery turns raw list-view query input into typed, validated
// queries. One generic Schema is declared per resource; the filter shape
// is a struct whose `url` tags name the query keys and whose `validate`
// tags carry the value constraints.
package listquery

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"botdash/internal/cursor"
	"github.com/go-playground/validator/v10"
	"github.com/google/go-querystring/query"
)

const (
	CursorKey = "cursor"
	LimitKey  = "limit"

	// MaxLimit is the largest page size the remote API accepts.
	MaxLimit = 250
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(sf reflect.StructField) string {
		return tagName(sf)
	})
}

// Range names two timestamp filters bounding the same axis.
type Range struct {
	After  string
	Before string
}

// Config is the shared core every resource schema is built from.
type Config struct {
	Resource string
	// DefaultLimit applies when no limit is given. Zero leaves the limit
	// unset so the remote API picks its own default.
	DefaultLimit int
	MaxLimit     int
	Ranges       []Range
}

// ListQuery is one validated list request.
type ListQuery[F any] struct {
	Cursor  *cursor.Cursor
	Limit   *int
	Filters F

	// times keeps validated timestamp filters as written, keyed by query key.
	times map[string]string
}

// HasCursor reports whether the query points past the first page.
func (q ListQuery[F]) HasCursor() bool {
	return q.Cursor != nil
}

// Params encodes the query as remote API request parameters. The cursor
// goes out in its opaque wire form and timestamps go out as the caller
// wrote them, fractional seconds included.
func (q ListQuery[F]) Params() (url.Values, error) {
	v, err := query.Values(q.Filters)
	if err != nil {
		return nil, fmt.Errorf("encode filters: %w", err)
	}
	for key, ts := range q.times {
		v.Set(key, ts)
	}
	if q.Cursor != nil {
		v.Set(CursorKey, q.Cursor.String())
	}
	if q.Limit != nil {
		v.Set(LimitKey, strconv.Itoa(*q.Limit))
	}
	return v, nil
}

type fieldKind uint8

const (
	kindList fieldKind = iota
	kindTime
	kindInt
	kindText
)

var kindNames = map[fieldKind]string{
	kindList: "list",
	kindTime: "timestamp",
	kindInt:  "integer",
	kindText: "text",
}

var (
	stringSliceType = reflect.TypeOf([]string(nil))
	timePtrType     = reflect.TypeOf((*time.Time)(nil))
	int64PtrType    = reflect.TypeOf((*int64)(nil))
	stringPtrType   = reflect.TypeOf((*string)(nil))
)

type field struct {
	key   string
	index int
	kind  fieldKind
	enum  []string
}

// FieldInfo describes one filter key, for help output.
type FieldInfo struct {
	Key  string
	Type string
	Enum []string
}

// Schema parses raw input for one resource.
type Schema[F any] struct {
	cfg    Config
	fields []field
	byKey  map[string]int
}

// NewSchema builds a schema for the filter struct F. It panics when F
// declares a field type it cannot decode or a range over unknown keys,
// since both are programming errors caught at startup.
func NewSchema[F any](cfg Config) *Schema[F] {
	t := reflect.TypeOf((*F)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("listquery: %s filters must be a struct, got %s", cfg.Resource, t))
	}
	if cfg.MaxLimit <= 0 || cfg.MaxLimit > MaxLimit {
		cfg.MaxLimit = MaxLimit
	}

	s := &Schema[F]{cfg: cfg, byKey: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		key := tagName(sf)
		if !sf.IsExported() || key == "" || key == "-" {
			continue
		}
		if key == CursorKey || key == LimitKey {
			panic(fmt.Sprintf("listquery: %s filter %q shadows a pagination key", cfg.Resource, key))
		}

		f := field{key: key, index: i}
		switch sf.Type {
		case stringSliceType:
			f.kind = kindList
			f.enum = enumOf(sf.Tag.Get("validate"))
		case timePtrType:
			f.kind = kindTime
		case int64PtrType:
			f.kind = kindInt
		case stringPtrType:
			f.kind = kindText
		default:
			panic(fmt.Sprintf("listquery: %s filter %q has unsupported type %s", cfg.Resource, key, sf.Type))
		}
		s.byKey[key] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	for _, r := range cfg.Ranges {
		for _, key := range []string{r.After, r.Before} {
			i, ok := s.byKey[key]
			if !ok || s.fields[i].kind != kindTime {
				panic(fmt.Sprintf("listquery: %s range key %q is not a timestamp filter", cfg.Resource, key))
			}
		}
	}
	return s
}

// Resource returns the resource name the schema was declared for.
func (s *Schema[F]) Resource() string {
	return s.cfg.Resource
}

// Fields lists the filter keys in declaration order.
func (s *Schema[F]) Fields() []FieldInfo {
	out := make([]FieldInfo, 0, len(s.fields))
	for _, f := range s.fields {
		out = append(out, FieldInfo{Key: f.key, Type: kindNames[f.kind], Enum: f.enum})
	}
	return out
}

// ParseValues is Parse over url.Values.
func (s *Schema[F]) ParseValues(values url.Values) (ListQuery[F], error) {
	return s.Parse(FromValues(values))
}

// Parse validates raw input. On failure the error is a *ValidationError
// and the returned query is the zero value.
func (s *Schema[F]) Parse(raw Raw) (ListQuery[F], error) {
	var q ListQuery[F]
	verr := &ValidationError{Resource: s.cfg.Resource}

	if token, ok := raw.Get(CursorKey).Normalize(); ok {
		c, err := cursor.Decode(token)
		if err != nil {
			verr.addField(CursorKey, err.Error())
		} else {
			q.Cursor = c
		}
	}

	s.parseLimit(raw, &q, verr)

	fv := reflect.ValueOf(&q.Filters).Elem()
	for _, f := range s.fields {
		str, ok := raw.Get(f.key).Normalize()
		if !ok {
			continue
		}
		if err := decodeField(f, str, fv.Field(f.index)); err != nil {
			verr.addField(f.key, err.Error())
			continue
		}
		if f.kind == kindTime && !fv.Field(f.index).IsNil() {
			if q.times == nil {
				q.times = make(map[string]string)
			}
			q.times[f.key] = strings.TrimSpace(str)
		}
	}

	if err := validate.Struct(q.Filters); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return ListQuery[F]{}, fmt.Errorf("validate %s filters: %w", s.cfg.Resource, err)
		}
		for _, e := range fieldErrs {
			verr.addField(fieldKey(e), messageFor(e))
		}
	}

	for _, r := range s.cfg.Ranges {
		after, before := s.timeAt(fv, r.After), s.timeAt(fv, r.Before)
		if after != nil && before != nil && after.After(*before) {
			verr.Query = append(verr.Query, fmt.Sprintf("%s must not be later than %s", r.After, r.Before))
		}
	}

	if !verr.empty() {
		return ListQuery[F]{}, verr
	}
	return q, nil
}

func (s *Schema[F]) parseLimit(raw Raw, q *ListQuery[F], verr *ValidationError) {
	str, ok := raw.Get(LimitKey).Normalize()
	str = strings.TrimSpace(str)
	if !ok || str == "" {
		if s.cfg.DefaultLimit > 0 {
			n := s.cfg.DefaultLimit
			q.Limit = &n
		}
		return
	}

	n, err := strconv.Atoi(str)
	if err != nil {
		verr.addField(LimitKey, "must be a base-10 integer")
		return
	}
	if err := validate.Var(n, fmt.Sprintf("min=1,max=%d", s.cfg.MaxLimit)); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			verr.addField(LimitKey, messageFor(fieldErrs[0]))
			return
		}
		verr.addField(LimitKey, err.Error())
		return
	}
	q.Limit = &n
}

func (s *Schema[F]) timeAt(fv reflect.Value, key string) *time.Time {
	ts, _ := fv.Field(s.fields[s.byKey[key]].index).Interface().(*time.Time)
	return ts
}

// decodeField converts the normalized string into the field's type. Empty
// input leaves the field nil, meaning "no filter".
func decodeField(f field, str string, target reflect.Value) error {
	switch f.kind {
	case kindList:
		if tokens := splitList(str); len(tokens) > 0 {
			target.Set(reflect.ValueOf(tokens))
		}
	case kindText:
		if text := strings.TrimSpace(str); text != "" {
			target.Set(reflect.ValueOf(&text))
		}
	case kindTime:
		str = strings.TrimSpace(str)
		if str == "" {
			return nil
		}
		ts, err := cursor.ParseTime(str)
		if err != nil {
			return errors.New("must be an ISO-8601 date-time")
		}
		target.Set(reflect.ValueOf(&ts))
	case kindInt:
		str = strings.TrimSpace(str)
		if str == "" {
			return nil
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return errors.New("must be a base-10 integer")
		}
		target.Set(reflect.ValueOf(&n))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func tagName(sf reflect.StructField) string {
	return strings.Split(sf.Tag.Get("url"), ",")[0]
}

func enumOf(tag string) []string {
	for _, rule := range strings.Split(tag, ",") {
		if strings.HasPrefix(rule, "oneof=") {
			return strings.Fields(strings.TrimPrefix(rule, "oneof="))
		}
	}
	return nil
}
