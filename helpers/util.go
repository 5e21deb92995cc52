package helpers

import (
	"strings"
)

// LastPathSegment returns the final path segment of a URL, ignoring any
// query string and a trailing slash.
func LastPathSegment(rawURL string) string {
	base := strings.Split(rawURL, "?")[0]
	base = strings.TrimRight(base, "/")
	parts := strings.Split(base, "/")
	return parts[len(parts)-1]
}
