package ratelimit

import (
	"strings"
)

// MatchEndpoint finds the EndpointConfig covering a request, or nil when
// only the global default applies. Exact path+method matches win over
// prefix matches; configs whose Path ends in "/" match by prefix (so
// "/classify/" covers "/classify/keyword" and "/classify/page").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// The health check is never limited.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
