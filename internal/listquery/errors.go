package listquery

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidQuery is matched by every *ValidationError.
var ErrInvalidQuery = errors.New("invalid list query")

// ValidationError reports field-level failures and whole-query failures
// (such as a reversed date range) for one parse.
type ValidationError struct {
	Resource string
	Fields   map[string]string
	Query    []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields)+len(e.Query))
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	parts = append(parts, e.Query...)
	return fmt.Sprintf("%s query: %s", e.Resource, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidQuery
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0 && len(e.Query) == 0
}

func (e *ValidationError) addField(key, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[key]; !exists {
		e.Fields[key] = msg
	}
}

var tagMessages = map[string]string{
	"oneof": "'%v' is not one of [%s]",
	"min":   "must be at least %s",
	"max":   "must be at most %s",
	"gt":    "must be greater than %s",
	"gte":   "must be greater than or equal to %s",
	"lte":   "must be less than or equal to %s",
}

func messageFor(e validator.FieldError) string {
	msg, ok := tagMessages[e.Tag()]
	if !ok {
		return fmt.Sprintf("failed '%s' check", e.Tag())
	}
	if e.Tag() == "oneof" {
		return fmt.Sprintf(msg, e.Value(), e.Param())
	}
	return fmt.Sprintf(msg, e.Param())
}

// fieldKey strips the element index validator appends for dive errors.
func fieldKey(e validator.FieldError) string {
	name := e.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}
