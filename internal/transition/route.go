// Package transition models page navigation between the portfolio's routes
// and the slide animation that runs between them.
package transition

import (
	"errors"
	"strings"
)

// Route is one of the portfolio's pages.
type Route int

const (
	Projects Route = iota
	About
	Contact
)

// ErrUnknownRoute is returned for paths that do not map to a route.
var ErrUnknownRoute = errors.New("unknown route")

var routePaths = []string{"/", "/about", "/contact"}

var routeNames = []string{"Projects", "About", "Contact"}

// Routes returns all routes in navigation order.
func Routes() []Route {
	return []Route{Projects, About, Contact}
}

// Parse maps a URL path to a Route. A trailing slash is ignored.
func Parse(path string) (Route, error) {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "" {
		path = "/"
	}
	for i, p := range routePaths {
		if p == path {
			return Route(i), nil
		}
	}
	return Projects, ErrUnknownRoute
}

// Path returns the URL path of the route.
func (r Route) Path() string {
	if r < 0 || int(r) >= len(routePaths) {
		return "/"
	}
	return routePaths[r]
}

func (r Route) String() string {
	if r < 0 || int(r) >= len(routeNames) {
		return "Unknown"
	}
	return routeNames[r]
}

// Direction is the slide direction of a transition.
type Direction int

const (
	Forward Direction = 1
	Back    Direction = -1
)

// DirectionOf returns Forward when to comes after from in navigation order.
func DirectionOf(from, to Route) Direction {
	if to > from {
		return Forward
	}
	return Back
}
