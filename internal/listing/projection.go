package listing

import "github.com/vendetucasa/intake/pkg/query"

var projection = query.NewProjectionMap("public", "listings", "l").
	Project("phone", "Phone").
	Project("id", "Id").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "UpdatedAt", Descending: true}
