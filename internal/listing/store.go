package listing

import (
	"context"

	"github.com/vendetucasa/intake/pkg/pagination"
)

// Store defines listing persistence keyed by normalized phone number.
type Store interface {
	// Get loads the listing for a phone number.
	// Returns ErrNotFound when no listing exists.
	Get(ctx context.Context, phone string) (*Listing, error)

	// Put saves the full listing state under its phone key,
	// overwriting any previous state.
	Put(ctx context.Context, l *Listing) error

	// Create opens a new listing from an intake form submission.
	// Returns ErrDuplicate when the phone already has a listing.
	Create(ctx context.Context, cmd CreateCommand) (*Listing, error)

	// List returns a page of listing summaries for the admin surface.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Summary], error)

	// All returns every stored listing.
	All(ctx context.Context) ([]Listing, error)

	// Delete removes the listing for a phone number. Reports whether
	// anything was removed.
	Delete(ctx context.Context, phone string) (bool, error)
}
