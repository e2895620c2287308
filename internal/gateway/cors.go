// Package gateway implements the HTTP surface of the file access-control
// gateway: route dispatch, CORS policy, and response rewriting in front of
// the private storage backend.
package gateway

import (
	"net/http"
	"slices"
)

// exposeHeaders is advertised on every cross-origin response so range
// request clients (video/audio seeking) can read delivery metadata.
const exposeHeaders = "Content-Length, Content-Range, Accept-Ranges"

// CORSDecision is the per-request outcome of resolving the Origin header
// against the configured allow-list. The zero value means deny: no CORS
// header is emitted at all.
type CORSDecision struct {
	// AllowOrigin is the value for Access-Control-Allow-Origin, either a
	// concrete origin or "*". Empty means no header.
	AllowOrigin string

	// Vary is set when a concrete origin is echoed back. The response is
	// then origin-dependent and shared caches must key on Origin.
	Vary bool
}

// ResolveOrigin derives a CORSDecision from the request's Origin header and
// the configured allow-list. An empty allow-list keeps the legacy fully
// open wildcard. With a non-empty list, only a literal member is echoed
// back; anything else (including a missing Origin) is denied.
func ResolveOrigin(origin string, allowed []string) CORSDecision {
	if len(allowed) == 0 {
		return CORSDecision{AllowOrigin: "*"}
	}
	if origin == "" {
		return CORSDecision{}
	}
	if slices.Contains(allowed, origin) {
		return CORSDecision{AllowOrigin: origin, Vary: true}
	}
	return CORSDecision{}
}

// Apply writes the decision onto the response headers. Set (not Add) keeps
// repeated application idempotent.
func (d CORSDecision) Apply(h http.Header) {
	if d.AllowOrigin == "" {
		return
	}
	h.Set("Access-Control-Allow-Origin", d.AllowOrigin)
	h.Set("Access-Control-Expose-Headers", exposeHeaders)
	if d.Vary {
		h.Set("Vary", "Origin")
	}
}
