package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrTokenMalformed is returned when a token fails structural checks
// before any signature verification takes place.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// ErrInvalidSignature is returned when a token was tampered with or signed
// with a different secret. Callers should log this as security relevant.
var ErrInvalidSignature = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode("TOKEN_BAD_SIGNATURE").
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned for structurally valid tokens past their
// expiry; clients should re-authenticate or refresh.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrWrongTokenPurpose is returned when a refresh token is presented where
// an access token is expected, or vice versa.
var ErrWrongTokenPurpose = errors.New("token presented for wrong purpose", errors.CategoryAuth).
	WithTextCode("TOKEN_WRONG_PURPOSE").
	WithCode(errors.CodeUnauthorized)

// ErrPrincipalNotFound is returned when a valid token references a user
// record that no longer exists. Surfaced as an authentication failure.
var ErrPrincipalNotFound = errors.New("principal not found", errors.CategoryAuth).
	WithTextCode("PRINCIPAL_NOT_FOUND").
	WithCode(errors.CodeUnauthorized)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(errors.CodeUnauthorized)

// ErrDuplicateIdentity is returned on sign up when the name or email is taken
var ErrDuplicateIdentity = errors.New("account name or email already registered", errors.CategoryConflict).
	WithTextCode("DUPLICATE_IDENTITY")

// ErrNoEmptyString rejects empty required string inputs
var ErrNoEmptyString = errors.New("value should not be an empty string", errors.CategoryBadInput)

// ErrMismatchedHashAndPassword is the bcrypt mismatch error
var ErrMismatchedHashAndPassword = errors.New("mismatched password", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

func isAuthTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.TextCode == code
	}
	return false
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if isAuthTextCode(err, ErrTokenExpired.TextCode) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for structurally invalid tokens
func IsMalformedError(err error) bool {
	if isAuthTextCode(err, ErrTokenMalformed.TextCode) {
		return true
	}
	return err != nil && (strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT"))
}

// IsSignatureError will check for tampered or wrongly keyed tokens
func IsSignatureError(err error) bool {
	if isAuthTextCode(err, ErrInvalidSignature.TextCode) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "signature is invalid")
}
