package loader

import (
	"context"
	"strings"
	"time"
)

// Source fetches the raw catalog document.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// NewSource picks an HTTP source for http(s) URLs and a file source for
// anything else, including file:// URLs.
func NewSource(location string, timeout time.Duration) Source {
	location = strings.TrimSpace(location)
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return NewHTTPSource(location, timeout)
	case strings.HasPrefix(lower, "file://"):
		return NewFileSource(location[len("file://"):])
	default:
		return NewFileSource(location)
	}
}
