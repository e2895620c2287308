// Package apierr defines the typed error values returned by the gateway.
// Every expected failure is represented as an *Error carrying its own HTTP
// status and a stable machine-readable code, raised close to the failing
// check and mapped into the response exactly once at the route boundary.
package apierr

import (
	"encoding/json"
	"net/http"
)

// Code identifies a failure condition with a stable dot-delimited code.
type Code string

const (
	// CodePathEmpty maps to HTTP 400: no object key in the request path.
	CodePathEmpty Code = "path.empty"

	// CodePathInvalid maps to HTTP 400: scoped prefix with too few segments.
	CodePathInvalid Code = "path.invalid"

	// CodeAuthRequired maps to HTTP 401: no credential found.
	CodeAuthRequired Code = "auth.required"

	// CodeAuthInvalid maps to HTTP 401: credential present but failed verification.
	CodeAuthInvalid Code = "auth.invalid"

	// CodeRoleInsufficient maps to HTTP 403: caller lacks the required role.
	CodeRoleInsufficient Code = "role.insufficient"

	// CodeAccessDenied maps to HTTP 403: identity mismatch or denied prefix.
	CodeAccessDenied Code = "access.denied"

	// CodeFetchFailed maps to HTTP 500: unexpected signing or backend failure.
	CodeFetchFailed Code = "file.fetch_failed"
)

// Error is a failure with an HTTP status and client-safe message.
// The message never contains the requested key, caller identity, or any
// backend error text.
type Error struct {
	// Code is the stable error code for client-side branching.
	Code Code

	// Message is the human-readable description.
	Message string

	// HTTPStatus is the HTTP status code to respond with.
	HTTPStatus int
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Well-known gateway errors.
var (
	PathEmpty        = &Error{Code: CodePathEmpty, Message: "no file path provided", HTTPStatus: http.StatusBadRequest}
	PathInvalid      = &Error{Code: CodePathInvalid, Message: "invalid file path", HTTPStatus: http.StatusBadRequest}
	AuthRequired     = &Error{Code: CodeAuthRequired, Message: "authentication required", HTTPStatus: http.StatusUnauthorized}
	AuthInvalid      = &Error{Code: CodeAuthInvalid, Message: "invalid or expired credential", HTTPStatus: http.StatusUnauthorized}
	RoleInsufficient = &Error{Code: CodeRoleInsufficient, Message: "insufficient role", HTTPStatus: http.StatusForbidden}
	AccessDenied     = &Error{Code: CodeAccessDenied, Message: "access denied", HTTPStatus: http.StatusForbidden}
	FetchFailed      = &Error{Code: CodeFetchFailed, Message: "failed to fetch file", HTTPStatus: http.StatusInternalServerError}
)

// envelope is the JSON wire shape of an error response.
type envelope struct {
	Error body `json:"error"`
}

type body struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Write renders the error as a JSON response.
func Write(w http.ResponseWriter, e *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.HTTPStatus)
	_ = json.NewEncoder(w).Encode(envelope{Error: body{Code: e.Code, Message: e.Message}})
}
