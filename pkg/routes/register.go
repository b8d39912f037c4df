package routes

import (
	"net/http"
	"strings"
)

// Register wires every route in the provided groups into the mux under
// the base path. Child groups inherit their parent's prefix.
func Register(mux *http.ServeMux, basePath string, groups ...Group) {
	base := strings.TrimSuffix(basePath, "/")
	for _, g := range groups {
		registerGroup(mux, base, g)
	}
}

func registerGroup(mux *http.ServeMux, prefix string, g Group) {
	full := prefix + g.Prefix
	for _, r := range g.Routes {
		pattern := full + r.Pattern
		if r.Method != "" {
			pattern = r.Method + " " + pattern
		}
		mux.HandleFunc(pattern, r.Handler)
	}
	for _, child := range g.Children {
		registerGroup(mux, full, child)
	}
}
