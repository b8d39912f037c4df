// Package routes provides declarative HTTP route registration.
// Handlers describe their endpoints as route groups; Register wires the
// groups into a standard library ServeMux.
package routes

import "net/http"

// Route binds an HTTP method and path pattern to a handler function.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
	Children    []Group
}
