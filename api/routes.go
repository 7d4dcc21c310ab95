package api

import (
	"fmt"
	"net/url"
)

// Route is one delivery path for a request; Wrap turns the Reddit URL into the URL actually fetched
type Route struct {
	Name string
	Wrap func(target string) string
}

// DirectRoute fetches the Reddit URL as is
func DirectRoute() Route {
	return Route{Name: "direct", Wrap: func(target string) string { return target }}
}

// CorsProxyRoute relays through corsproxy.io
func CorsProxyRoute() Route {
	return Route{Name: "corsproxy", Wrap: func(target string) string {
		return "https://corsproxy.io/?" + url.QueryEscape(target)
	}}
}

// AllOriginsRoute relays through api.allorigins.win
func AllOriginsRoute() Route {
	return Route{Name: "allorigins", Wrap: func(target string) string {
		return "https://api.allorigins.win/raw?url=" + url.QueryEscape(target)
	}}
}

// DefaultRoutes is the fixed priority order used when none are configured
func DefaultRoutes() []Route {
	return []Route{DirectRoute(), CorsProxyRoute(), AllOriginsRoute()}
}

// RoutesByName resolves configured route names, keeping their order
func RoutesByName(names []string) ([]Route, error) {
	routes := make([]Route, 0, len(names))
	for _, name := range names {
		switch name {
		case "direct":
			routes = append(routes, DirectRoute())
		case "corsproxy":
			routes = append(routes, CorsProxyRoute())
		case "allorigins":
			routes = append(routes, AllOriginsRoute())
		default:
			return nil, fmt.Errorf("unknown route %q", name)
		}
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("no routes configured")
	}
	return routes, nil
}
