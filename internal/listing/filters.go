package listing

import (
	"net/url"

	"github.com/vendetucasa/intake/pkg/query"
)

// Filters contains optional criteria for filtering listing queries.
type Filters struct {
	Status *string
}

// FiltersFromQuery extracts listing filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Status != nil {
		b.WhereEquals("Status", *f.Status)
	}
	return b
}
