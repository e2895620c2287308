// Package authz decides whether a caller may read a stored object. The
// decision is keyed entirely on the object key's first path segment; the
// mapping from prefix to policy is a lookup table so that adding a
// namespace never touches control flow.
package authz

import (
	"strings"
)

// Well-known object key prefixes.
const (
	// PrefixUser is the per-user namespace: u/<userID>/...
	PrefixUser = "u"

	// PrefixPartners is the per-partner namespace: partners/<partnerID>/...
	PrefixPartners = "partners"

	// PrefixSystem is the public namespace for shared assets: sys/...
	PrefixSystem = "sys"

	// PrefixTemp is upload scratch space, never readable externally.
	PrefixTemp = "tmp"
)

// ObjectKey is the slash-delimited path identifying a stored object. The
// first segment is the authorization prefix; for scoped prefixes the second
// segment is the owner id.
type ObjectKey struct {
	raw      string
	segments []string
}

// ParseKey builds an ObjectKey from a request path with the route prefix
// already stripped. Leading and trailing slashes are ignored. The zero key
// (empty path) is reported via IsEmpty.
func ParseKey(path string) ObjectKey {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return ObjectKey{}
	}
	return ObjectKey{
		raw:      trimmed,
		segments: strings.Split(trimmed, "/"),
	}
}

// String returns the full object key.
func (k ObjectKey) String() string { return k.raw }

// IsEmpty reports whether the key has no segments at all.
func (k ObjectKey) IsEmpty() bool { return len(k.segments) == 0 }

// Prefix returns the first segment, or "" for an empty key.
func (k ObjectKey) Prefix() string {
	if k.IsEmpty() {
		return ""
	}
	return k.segments[0]
}

// Owner returns the second segment and whether it exists. Policies that
// compare identities must check ok before using the value; a scoped key
// with no owner segment is malformed, not owned by "".
func (k ObjectKey) Owner() (string, bool) {
	if len(k.segments) < 2 || k.segments[1] == "" {
		return "", false
	}
	return k.segments[1], true
}

// Ext returns the lowercase file extension of the final segment, without
// the dot, or "" when there is none.
func (k ObjectKey) Ext() string {
	if k.IsEmpty() {
		return ""
	}
	last := k.segments[len(k.segments)-1]
	i := strings.LastIndexByte(last, '.')
	if i < 0 || i == len(last)-1 {
		return ""
	}
	return strings.ToLower(last[i+1:])
}
