package token

import (
	"net/http"
	"strings"
)

const (
	// BearerPrefix is the expected Authorization scheme.
	BearerPrefix = "Bearer "

	// QueryParam is the query parameter checked as a last resort, for
	// contexts that cannot set headers (embedded media links).
	QueryParam = "token"
)

// Extract returns the first credential found on the request, trying the
// Authorization header, then the named cookie, then the token query
// parameter. The ordering is a contract: a native client's header must win
// over a browser cookie, which must win over an embedded link's query
// parameter, when more than one is attached.
//
// Returns "" and false when no credential is present.
func Extract(r *http.Request, cookieName string) (string, bool) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if tok, ok := strings.CutPrefix(auth, BearerPrefix); ok && tok != "" {
			return tok, true
		}
	}

	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			return c.Value, true
		}
	}

	if tok := r.URL.Query().Get(QueryParam); tok != "" {
		return tok, true
	}

	return "", false
}
