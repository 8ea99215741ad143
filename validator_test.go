package auth_test

import (
	"testing"
	"time"

	auth "github.com/circleGiven/jwt-study"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(codec *auth.TokenCodec, at time.Time) *auth.TokenValidator {
	return auth.NewTokenValidator(codec, auth.WithValidatorClock(fixedClock(at)))
}

func signedToken(t *testing.T, codec *auth.TokenCodec, subject string, exp time.Time) string {
	t.Helper()
	return encodeClaims(t, codec, &auth.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID: "user-1",
	})
}

func TestTokenValidator_AcceptsCurrentToken(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := auth.NewTokenCodec(testSigningKey, nil)
	validator := newTestValidator(codec, at)

	token := signedToken(t, codec, auth.SubjectAccessToken, at.Add(30*time.Minute))

	claims, err := validator.Validate(token, auth.SubjectAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestTokenValidator_ExpiryBoundary(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := auth.NewTokenCodec(testSigningKey, nil)
	validator := newTestValidator(codec, at)

	t.Run("expiring exactly now is expired", func(t *testing.T) {
		token := signedToken(t, codec, auth.SubjectAccessToken, at)

		_, err := validator.Validate(token, auth.SubjectAccessToken)
		require.Error(t, err)
		assert.True(t, auth.IsTokenExpiredError(err), "expected expired error, got: %v", err)
	})

	t.Run("expiring a moment later is valid", func(t *testing.T) {
		token := signedToken(t, codec, auth.SubjectAccessToken, at.Add(time.Second))

		_, err := validator.Validate(token, auth.SubjectAccessToken)
		assert.NoError(t, err)
	})

	t.Run("long past expiry", func(t *testing.T) {
		token := signedToken(t, codec, auth.SubjectAccessToken, at.Add(-time.Hour))

		_, err := validator.Validate(token, auth.SubjectAccessToken)
		require.Error(t, err)
		assert.True(t, auth.IsTokenExpiredError(err))
	})
}

// An access token with a one hour lifetime stays valid through the hour and
// dies after it, regardless of how much later the refresh token would last.
func TestTokenValidator_LifetimeWindow(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := auth.NewTokenCodec(testSigningKey, nil)

	issuer, err := auth.NewTokenIssuer(codec, time.Hour, 14*24*time.Hour, "issuer-test", nil,
		auth.WithClock(fixedClock(issuedAt)),
	)
	require.NoError(t, err)

	token, err := issuer.IssueAccessToken(testIdentity{id: "user-1"})
	require.NoError(t, err)

	t.Run("valid mid lifetime", func(t *testing.T) {
		validator := newTestValidator(codec, issuedAt.Add(30*time.Minute))
		_, err := validator.Validate(token, auth.SubjectAccessToken)
		assert.NoError(t, err)
	})

	t.Run("expired just past the hour", func(t *testing.T) {
		validator := newTestValidator(codec, issuedAt.Add(time.Hour+time.Second))
		_, err := validator.Validate(token, auth.SubjectAccessToken)
		require.Error(t, err)
		assert.True(t, auth.IsTokenExpiredError(err))
	})
}

func TestTokenValidator_PurposeIsolation(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := auth.NewTokenCodec(testSigningKey, nil)
	validator := newTestValidator(codec, at)

	access := signedToken(t, codec, auth.SubjectAccessToken, at.Add(time.Hour))
	refresh := signedToken(t, codec, auth.SubjectRefreshToken, at.Add(time.Hour))

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		_, err := validator.Validate(refresh, auth.SubjectAccessToken)
		assert.ErrorIs(t, err, auth.ErrWrongTokenPurpose)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		_, err := validator.Validate(access, auth.SubjectRefreshToken)
		assert.ErrorIs(t, err, auth.ErrWrongTokenPurpose)
	})

	t.Run("matching purpose accepted", func(t *testing.T) {
		_, err := validator.Validate(refresh, auth.SubjectRefreshToken)
		assert.NoError(t, err)
	})
}

func TestTokenValidator_ExpiryCheckedBeforePurpose(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := auth.NewTokenCodec(testSigningKey, nil)
	validator := newTestValidator(codec, at)

	// expired AND wrong purpose: expiry wins
	token := signedToken(t, codec, auth.SubjectRefreshToken, at.Add(-time.Minute))

	_, err := validator.Validate(token, auth.SubjectAccessToken)
	require.Error(t, err)
	assert.True(t, auth.IsTokenExpiredError(err))
}

func TestTokenValidator_MissingExpiryIsMalformed(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := auth.NewTokenCodec(testSigningKey, nil)
	validator := newTestValidator(codec, at)

	token := encodeClaims(t, codec, &auth.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: auth.SubjectAccessToken,
		},
		UserID: "user-1",
	})

	_, err := validator.Validate(token, auth.SubjectAccessToken)
	require.Error(t, err)
	assert.True(t, auth.IsMalformedError(err))
}

func TestTokenValidator_DecodeSkipsExpiry(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := auth.NewTokenCodec(testSigningKey, nil)
	validator := newTestValidator(codec, at)

	expired := signedToken(t, codec, auth.SubjectAccessToken, at.Add(-time.Hour))

	claims, err := validator.Decode(expired)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = validator.Validate(expired, auth.SubjectAccessToken)
	assert.Error(t, err, "the same token still fails full validation")
}

func TestTokenValidator_RejectsForeignSignature(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := auth.NewTokenCodec(testSigningKey, nil)
	other := auth.NewTokenCodec([]byte("completely-different-secret-key!!!!"), nil)
	validator := newTestValidator(codec, at)

	foreign := signedToken(t, other, auth.SubjectAccessToken, at.Add(time.Hour))

	_, err := validator.Validate(foreign, auth.SubjectAccessToken)
	require.Error(t, err)
	assert.True(t, auth.IsSignatureError(err))
}
