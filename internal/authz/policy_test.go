package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/doorman/internal/apierr"
	"github.com/prn-tf/doorman/internal/token"
)

const (
	testSecret = "authz-test-secret"
	testCookie = "bb_token"
)

func newAuthorizer() *Authorizer {
	return New(token.NewVerifier(testSecret), testCookie, zerolog.Nop())
}

// mintToken issues a valid token for the given identity.
func mintToken(t *testing.T, subject, account string, role token.Role, partnerID string) string {
	t.Helper()
	claims := token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		AccountID: account,
		Role:      role,
		PartnerID: partnerID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func requestWithToken(tok string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/v1/file/any", nil)
	if tok != "" {
		r.Header.Set("Authorization", "Bearer "+tok)
	}
	return r
}

func TestAuthorize_PrefixPolicies(t *testing.T) {
	a := newAuthorizer()

	tests := []struct {
		name     string
		key      string
		token    func(t *testing.T) string
		wantCode apierr.Code
	}{
		{
			name:  "user namespace granted to subject owner",
			key:   "u/U1/m/M1/photo.jpg",
			token: func(t *testing.T) string { return mintToken(t, "U1", "", "", "") },
		},
		{
			name:  "user namespace granted to account identity",
			key:   "u/A1/m/M1/photo.jpg",
			token: func(t *testing.T) string { return mintToken(t, "U1", "A1", "", "") },
		},
		{
			name:     "user namespace denied to other user",
			key:      "u/U1/m/M1/photo.jpg",
			token:    func(t *testing.T) string { return mintToken(t, "U2", "", "", "") },
			wantCode: apierr.CodeAccessDenied,
		},
		{
			name:  "partners granted to admin anywhere",
			key:   "partners/P9/d1/v.mp4",
			token: func(t *testing.T) string { return mintToken(t, "U1", "", token.RoleAdmin, "") },
		},
		{
			name:  "partners granted to matching photographer",
			key:   "partners/P1/d1/v.mp4",
			token: func(t *testing.T) string { return mintToken(t, "U1", "", token.RolePhotographer, "P1") },
		},
		{
			name:     "partners denied to other photographer",
			key:      "partners/P1/d1/v.mp4",
			token:    func(t *testing.T) string { return mintToken(t, "U1", "", token.RolePhotographer, "P2") },
			wantCode: apierr.CodeAccessDenied,
		},
		{
			name:     "partners denied to standard user",
			key:      "partners/P1/d1/v.mp4",
			token:    func(t *testing.T) string { return mintToken(t, "U1", "", "", "") },
			wantCode: apierr.CodeRoleInsufficient,
		},
		{
			name: "sys is public, no claims needed",
			key:  "sys/logo.png",
		},
		{
			name:     "tmp denied even to admin",
			key:      "tmp/anything",
			token:    func(t *testing.T) string { return mintToken(t, "U1", "", token.RoleAdmin, "") },
			wantCode: apierr.CodeAccessDenied,
		},
		{
			name:     "unknown prefix denied by default",
			key:      "secret/whatever.bin",
			token:    func(t *testing.T) string { return mintToken(t, "U1", "", token.RoleAdmin, "") },
			wantCode: apierr.CodeAccessDenied,
		},
		{
			name:     "no credential on protected prefix",
			key:      "u/U1/photo.jpg",
			wantCode: apierr.CodeAuthRequired,
		},
		{
			name:     "garbage credential on protected prefix",
			key:      "u/U1/photo.jpg",
			token:    func(t *testing.T) string { return "not.a.token" },
			wantCode: apierr.CodeAuthInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tok string
			if tt.token != nil {
				tok = tt.token(t)
			}
			_, err := a.Authorize(requestWithToken(tok), ParseKey(tt.key))

			if tt.wantCode == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantCode, err.Code)
		})
	}
}

func TestAuthorize_MalformedScopedKeyFailsBeforeIdentityCheck(t *testing.T) {
	a := newAuthorizer()

	// A scoped key with no owner segment must be rejected as an invalid
	// path, never attempted against the identity comparison. Even a valid
	// admin token does not change the answer.
	for _, key := range []string{"u", "partners", "partners/"} {
		_, err := a.Authorize(requestWithToken(mintToken(t, "U1", "", token.RoleAdmin, "")), ParseKey(key))
		require.NotNil(t, err, key)
		assert.Equal(t, apierr.CodePathInvalid, err.Code, key)
	}
}

func TestAuthorize_DeniedPrefixesIgnoreCredential(t *testing.T) {
	a := newAuthorizer()

	// tmp and unknown prefixes deny before the credential is read, so a
	// malformed token must not change the code to auth.invalid.
	for _, key := range []string{"tmp/x", "nope/x"} {
		_, err := a.Authorize(requestWithToken("garbage"), ParseKey(key))
		require.NotNil(t, err, key)
		assert.Equal(t, apierr.CodeAccessDenied, err.Code, key)
	}
}

func TestAuthorize_CookieCredential(t *testing.T) {
	a := newAuthorizer()

	r := httptest.NewRequest(http.MethodGet, "/v1/file/u/U1/photo.jpg", nil)
	r.AddCookie(&http.Cookie{Name: testCookie, Value: mintToken(t, "U1", "", "", "")})

	claims, err := a.Authorize(r, ParseKey("u/U1/photo.jpg"))
	assert.Nil(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, "U1", claims.Subject)
}
