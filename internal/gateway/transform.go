package gateway

import (
	"fmt"
	"net/http"

	"github.com/prn-tf/doorman/internal/authz"
)

// Cache durations per key prefix, chosen by mutability expectations:
// system assets rarely change, user media is immutable once uploaded but
// may be replaced, and partner deliveries can be updated during an active
// delivery window.
const (
	cacheSystem  = 86400
	cacheUser    = 14400
	cacheDefault = 3600
)

// cacheSeconds returns the cache duration for an object key prefix.
func cacheSeconds(prefix string) int {
	switch prefix {
	case authz.PrefixSystem:
		return cacheSystem
	case authz.PrefixUser:
		return cacheUser
	default:
		return cacheDefault
	}
}

// TransformHeaders rewrites backend response headers before they are
// returned to the caller. CORS headers are applied on every response path;
// caching, range and disposition headers only on success (200/206) so that
// backend failure semantics pass through untouched.
//
// The rewrite is idempotent: every mutation is a Set keyed off the final
// state, so applying it twice yields identical headers.
func TransformHeaders(h http.Header, status int, key authz.ObjectKey, cors CORSDecision) {
	cors.Apply(h)

	if status != http.StatusOK && status != http.StatusPartialContent {
		return
	}

	d := cacheSeconds(key.Prefix())
	h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d, s-maxage=%d", d, d))

	// Needed for correct video/audio seeking.
	if h.Get("Accept-Ranges") == "" {
		h.Set("Accept-Ranges", "bytes")
	}

	ct := h.Get("Content-Type")
	if ct == "" || ct == octetStream {
		if mapped := ContentTypeByExt(key.Ext()); mapped != octetStream {
			ct = mapped
			h.Set("Content-Type", ct)
		}
	}

	// Render media in the browser instead of downloading it.
	if isMediaType(ct) && h.Get("Content-Disposition") == "" {
		h.Set("Content-Disposition", "inline")
	}
}
