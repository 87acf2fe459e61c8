package router

import (
	"strings"
)

// JoinPath composes a route path from prefix segments. Each segment is
// trimmed of leading and trailing separators, empty segments are dropped,
// and the remainder is joined by a single separator. The result always
// starts with "/"; joining nothing yields "/".
func JoinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.Trim(segment, "/")
		if segment == "" {
			continue
		}
		parts = append(parts, segment)
	}
	return "/" + strings.Join(parts, "/")
}
