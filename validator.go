package auth

import "time"

// TokenValidator checks a token's signature, structure, expiry, and purpose.
// Validation is a pure function of (token, now, secret); there is no I/O and
// no retry. Failures map onto the token error taxonomy so callers never need
// to branch on jwt library internals.
type TokenValidator struct {
	codec *TokenCodec
	now   func() time.Time
}

// ValidatorOption customizes a TokenValidator
type ValidatorOption func(*TokenValidator)

// WithValidatorClock overrides the validation clock, mainly for tests.
func WithValidatorClock(now func() time.Time) ValidatorOption {
	return func(tv *TokenValidator) {
		if now != nil {
			tv.now = now
		}
	}
}

// NewTokenValidator creates a validator on top of the given codec.
func NewTokenValidator(codec *TokenCodec, opts ...ValidatorOption) *TokenValidator {
	tv := &TokenValidator{
		codec: codec,
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(tv)
		}
	}
	return tv
}

// Decode exposes the codec's structural and signature checks without the
// temporal ones. The refresh flow uses it to read claims from an access
// token that may already be expired.
func (tv *TokenValidator) Decode(tokenString string) (*TokenClaims, error) {
	return tv.codec.Decode(tokenString)
}

// Validate decodes the token then checks expiry and purpose, in that order:
//
//  1. structural or signature failure surfaces ErrTokenMalformed or
//     ErrInvalidSignature from the codec
//  2. expiresAt <= now is ErrTokenExpired; a token expiring exactly now is
//     already expired
//  3. a subject other than expectedSubject is ErrWrongTokenPurpose
func (tv *TokenValidator) Validate(tokenString, expectedSubject string) (*TokenClaims, error) {
	claims, err := tv.codec.Decode(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.RegisteredClaims.ExpiresAt == nil {
		return nil, ErrTokenMalformed
	}

	if !claims.Expires().After(tv.now()) {
		return nil, ErrTokenExpired
	}

	if claims.Subject() != expectedSubject {
		return nil, ErrWrongTokenPurpose
	}

	return claims, nil
}
