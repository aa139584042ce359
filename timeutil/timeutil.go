package timeutil

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Timestamp layouts used by the providers. Twitter still speaks the
// Ruby-style format from its 1.1 API, everybody else does ISO 8601
// with a literal Z.
const (
	TwitterLayout = time.RubyDate
	ISOLayout     = "2006-01-02T15:04:05Z"
)

// ParseError is returned when a provider timestamp does not match its
// expected layout. Callers drop the offending item and keep going.
type ParseError struct {
	Value  string
	Layout string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse timestamp %q with layout %q", e.Value, e.Layout)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse normalizes a provider timestamp string to UTC. All feed
// ordering and rendering happens on the returned time.
func Parse(value string, layout string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, &ParseError{Value: value, Layout: layout, Err: err}
	}
	return t.UTC(), nil
}

// Relative renders a rough past-tense duration like "3 hours ago".
// This is the only representation of the timestamp that leaves the
// process; the absolute time is never serialized.
func Relative(t time.Time) string {
	return humanize.Time(t)
}
