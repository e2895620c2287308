package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// signingMethod is the only accepted token algorithm. Pinning it is a
// non-configurable constant so that algorithm confusion is structurally
// impossible rather than merely discouraged.
var signingMethod = jwt.SigningMethodHS256

// Verifier validates tokens against a shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks the token's signature and temporal claims (exp, nbf) and
// returns the decoded claims. Every failure mode collapses into ok == false:
// a bad signature, an expired token, a malformed token, and a token signed
// with the wrong algorithm are indistinguishable to the caller, so the
// response cannot be used as an oracle.
func (v *Verifier) Verify(tokenString string) (*Claims, bool) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc,
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
	)
	if err != nil || !tok.Valid {
		return nil, false
	}
	if claims.Subject == "" {
		return nil, false
	}
	return claims, true
}

// keyFunc returns the shared secret. The declared method must be the
// pinned one; nothing else ever receives key material.
func (v *Verifier) keyFunc(t *jwt.Token) (any, error) {
	if t.Method != signingMethod {
		return nil, jwt.ErrSignatureInvalid
	}
	return v.secret, nil
}
