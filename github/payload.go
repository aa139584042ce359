package github

import (
	"fmt"
	"math"
	"strings"
)

// Payload is the loosely-typed event payload. Its shape varies per
// event type, so fields are pulled out by dotted path and every
// lookup can fail.
type Payload map[string]any

// MissingFieldError reports the path segment (or full path, for type
// mismatches) that could not be resolved in a payload.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("invalid key supplied (%s), ignoring event", e.Path)
}

// UnsupportedEventError reports a discriminant value outside the
// fixed set of handled event types.
type UnsupportedEventError struct {
	Type string
}

func (e *UnsupportedEventError) Error() string {
	return fmt.Sprintf("unsupported event type %q, ignoring event", e.Type)
}

func (p Payload) walk(path string) (any, error) {
	var node any = map[string]any(p)

	for _, key := range strings.Split(path, ".") {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, &MissingFieldError{Path: path}
		}
		node, ok = obj[key]
		if !ok {
			return nil, &MissingFieldError{Path: key}
		}
	}

	return node, nil
}

// GetString resolves a dotted path like "pull_request.base.repo.full_name"
// to a string value. A missing segment or a non-string leaf is an
// error, never a default.
func (p Payload) GetString(path string) (string, error) {
	node, err := p.walk(path)
	if err != nil {
		return "", err
	}

	s, ok := node.(string)
	if !ok {
		return "", &MissingFieldError{Path: path}
	}
	return s, nil
}

// GetInt resolves a dotted path to an integer. JSON numbers decode as
// float64, so anything with a fractional part is rejected.
func (p Payload) GetInt(path string) (int64, error) {
	node, err := p.walk(path)
	if err != nil {
		return 0, err
	}

	n, ok := node.(float64)
	if !ok || n != math.Trunc(n) {
		return 0, &MissingFieldError{Path: path}
	}
	return int64(n), nil
}
