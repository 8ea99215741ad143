package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenCodec encodes claim sets into signed compact tokens and decodes
// token strings back into claims. The wire format is the standard compact
// serialization, header.payload.signature, each segment base64url encoded
// and the signature being HMAC-SHA-512 over "header.payload".
//
// Decode verifies structure and signature only; it deliberately does NOT
// check expiry. Temporal validity is TokenValidator's job so that the
// refresh flow can inspect claims of an expired access token.
type TokenCodec struct {
	signingKey []byte
	method     jwt.SigningMethod
	logger     Logger
}

// NewTokenCodec creates a codec bound to an immutable signing secret.
// HS512 is the only accepted algorithm on both encode and decode.
func NewTokenCodec(signingKey []byte, logger Logger) *TokenCodec {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenCodec{
		signingKey: signingKey,
		method:     jwt.SigningMethodHS512,
		logger:     logger,
	}
}

// Encode serializes and signs the given claims. Timestamps must already be
// set by the caller; Encode never touches the clock, which keeps the output
// deterministic for identical claims and secret.
func (c *TokenCodec) Encode(claims *TokenClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(c.method, claims)

	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// Decode parses a compact token string and verifies its signature. Returns
// ErrTokenMalformed for structural problems, ErrInvalidSignature when the
// recomputed signature does not match.
func (c *TokenCodec) Decode(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			c.logger.Error("TokenCodec decode encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.signingKey, nil
	}, jwt.WithoutClaimsValidation())

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		c.logger.Error("TokenCodec decode could not map claims")
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
