package authz

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prn-tf/doorman/internal/apierr"
	"github.com/prn-tf/doorman/internal/token"
)

// policy describes how one key prefix is authorized.
type policy struct {
	// public grants access with no credential at all.
	public bool

	// deny rejects unconditionally, before any credential is even read.
	deny bool

	// requiresOwner marks scoped prefixes whose second segment is an owner
	// id. Keys under such a prefix with no owner segment are malformed and
	// fail before any identity comparison runs.
	requiresOwner bool

	// decide runs the identity check for claim-requiring prefixes. Only
	// called with verified claims and, when requiresOwner is set, a
	// non-empty owner segment.
	decide func(claims *token.Claims, owner string) *apierr.Error
}

// policies maps each recognized prefix to its policy. Prefixes not in the
// table are denied by default.
var policies = map[string]policy{
	PrefixSystem: {public: true},
	PrefixTemp:   {deny: true},
	PrefixUser: {
		requiresOwner: true,
		decide: func(claims *token.Claims, owner string) *apierr.Error {
			if claims.Owns(owner) {
				return nil
			}
			return apierr.AccessDenied
		},
	},
	PrefixPartners: {
		requiresOwner: true,
		decide: func(claims *token.Claims, owner string) *apierr.Error {
			switch claims.EffectiveRole() {
			case token.RoleAdmin:
				return nil
			case token.RolePhotographer:
				if claims.PartnerID == owner {
					return nil
				}
				return apierr.AccessDenied
			default:
				return apierr.RoleInsufficient
			}
		},
	},
}

// Authorizer enforces the prefix policies against a request's credential.
type Authorizer struct {
	verifier   *token.Verifier
	cookieName string
	logger     zerolog.Logger
}

// New creates an Authorizer. cookieName is the cookie consulted by the
// token extractor after the Authorization header.
func New(verifier *token.Verifier, cookieName string, logger zerolog.Logger) *Authorizer {
	return &Authorizer{
		verifier:   verifier,
		cookieName: cookieName,
		logger:     logger.With().Str("component", "authz").Logger(),
	}
}

// Authorize decides whether the request may read the given key. It returns
// the verified claims when a credential was required and checked, or nil
// for public access. A nil error means access is granted.
//
// Denied prefixes reject before the credential is read: an admin token does
// not open tmp, and a garbage token does not change the answer for an
// unknown prefix.
func (a *Authorizer) Authorize(r *http.Request, key ObjectKey) (*token.Claims, *apierr.Error) {
	pol, known := policies[key.Prefix()]
	if !known || pol.deny {
		return nil, apierr.AccessDenied
	}
	if pol.public {
		return nil, nil
	}

	// Malformed scoped keys fail before any ownership comparison, so the
	// identity check can never run against a missing segment.
	owner := ""
	if pol.requiresOwner {
		var ok bool
		if owner, ok = key.Owner(); !ok {
			return nil, apierr.PathInvalid
		}
	}

	raw, found := token.Extract(r, a.cookieName)
	if !found {
		return nil, apierr.AuthRequired
	}
	claims, valid := a.verifier.Verify(raw)
	if !valid {
		return nil, apierr.AuthInvalid
	}

	if err := pol.decide(claims, owner); err != nil {
		a.logger.Debug().
			Str("prefix", key.Prefix()).
			Str("code", string(err.Code)).
			Msg("access denied")
		return nil, err
	}
	return claims, nil
}
