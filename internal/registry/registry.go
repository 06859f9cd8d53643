package registry

import (
	"context"
	"sort"
	"strings"

	"carpick/internal/models"
)

// Provider abstracts access to the vehicle registry.
// Lookups never fail outright: failures come back as an empty Result tagged
// OutcomeFailed.
type Provider interface {
	Manufacturers(ctx context.Context) Result[models.Manufacturer]
	Makes(ctx context.Context, manufacturerID int) Result[models.Make]
	Models(ctx context.Context, makeID int) Result[models.Model]
}

// Sort orders items case-insensitively by title, keeping the original order
// of items whose titles compare equal.
func Sort[T models.Entity](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Title()) < strings.ToLower(items[j].Title())
	})
}
