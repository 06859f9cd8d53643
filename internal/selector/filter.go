package selector

import (
	"strings"

	"carpick/internal/models"
)

// Filter returns the options whose title starts with query, ignoring case.
// An empty query returns every option. Order is preserved and the result is
// always a fresh, non-nil slice.
func Filter[T models.Entity](options []T, query string) []T {
	out := make([]T, 0, len(options))
	if query == "" {
		return append(out, options...)
	}

	q := strings.ToLower(query)
	for _, o := range options {
		if strings.HasPrefix(strings.ToLower(o.Title()), q) {
			out = append(out, o)
		}
	}
	return out
}
