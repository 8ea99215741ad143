package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenIssuer builds signed access and refresh tokens for an identity,
// applying the configured expiry policy. Expiry is always issuedAt + TTL,
// never anchored on any other instant.
type TokenIssuer struct {
	codec      *TokenCodec
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	logger     Logger
	now        func() time.Time
}

// IssuerOption customizes a TokenIssuer
type IssuerOption func(*TokenIssuer)

// WithClock overrides the issuance clock. Zero-argument issuance uses
// time.Now; tests inject a fixed clock here.
func WithClock(now func() time.Time) IssuerOption {
	return func(ti *TokenIssuer) {
		if now != nil {
			ti.now = now
		}
	}
}

// NewTokenIssuer creates a TokenIssuer. Both TTLs must be strictly positive.
func NewTokenIssuer(codec *TokenCodec, accessTTL, refreshTTL time.Duration, issuer string, logger Logger, opts ...IssuerOption) (*TokenIssuer, error) {
	if codec == nil {
		return nil, goerrors.New("token codec is required", goerrors.CategoryBadInput)
	}
	if accessTTL <= 0 {
		return nil, goerrors.New("access token TTL must be positive", goerrors.CategoryBadInput)
	}
	if refreshTTL <= 0 {
		return nil, goerrors.New("refresh token TTL must be positive", goerrors.CategoryBadInput)
	}
	if logger == nil {
		logger = defLogger{}
	}

	ti := &TokenIssuer{
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		logger:     logger,
		now:        time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(ti)
		}
	}

	return ti, nil
}

// IssueAccessToken builds an access token for the identity. The claims carry
// uid, email, name, and the admin flag, plus a freshly issued refresh token
// under the refresh_token claim. The clock is captured once so issuedAt,
// expiresAt, and the embedded refresh token share the same instant.
func (ti *TokenIssuer) IssueAccessToken(identity Identity) (string, error) {
	if identity == nil {
		return "", goerrors.New("identity is required", goerrors.CategoryBadInput)
	}

	now := ti.now()

	refresh, err := ti.issueRefreshToken(identity.ID(), nil, now)
	if err != nil {
		ti.logger.Error("IssueAccessToken failed to derive refresh token", "error", err)
		return "", err
	}

	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   SubjectAccessToken,
			Issuer:    ti.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.accessTTL)),
		},
		UserID:       identity.ID(),
		Email:        identity.Email(),
		Name:         identity.Name(),
		Admin:        identity.IsAdmin(),
		RefreshToken: refresh,
	}

	return ti.codec.Encode(claims)
}

// IssueRefreshToken builds a standalone refresh token. It carries only the
// user id and optional extension claims; email and the admin flag are
// deliberately excluded so a leaked refresh token cannot impersonate role
// claims. The resolver re-fetches authoritative user data on redemption.
func (ti *TokenIssuer) IssueRefreshToken(userID string, extensions map[string]string) (string, error) {
	if userID == "" {
		return "", goerrors.New("user id is required", goerrors.CategoryBadInput)
	}
	return ti.issueRefreshToken(userID, extensions, ti.now())
}

func (ti *TokenIssuer) issueRefreshToken(userID string, extensions map[string]string, now time.Time) (string, error) {
	var ext map[string]string
	if len(extensions) > 0 {
		ext = make(map[string]string, len(extensions))
		for k, v := range extensions {
			ext[k] = v
		}
	}

	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   SubjectRefreshToken,
			Issuer:    ti.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.refreshTTL)),
		},
		UserID:     userID,
		Extensions: ext,
	}

	return ti.codec.Encode(claims)
}

// NewTokenPipeline builds the issuer and validator from configuration. The
// signing method is fixed to HS512; a config asking for anything else is
// rejected up front rather than silently ignored.
func NewTokenPipeline(cfg Config, logger Logger, opts ...IssuerOption) (*TokenIssuer, *TokenValidator, error) {
	if cfg == nil {
		return nil, nil, goerrors.New("config is required", goerrors.CategoryBadInput)
	}

	if method := cfg.GetSigningMethod(); method != "" && method != "HS512" {
		return nil, nil, goerrors.New("unsupported signing method: "+method, goerrors.CategoryBadInput)
	}

	codec := NewTokenCodec([]byte(cfg.GetSigningKey()), logger)

	issuer, err := NewTokenIssuer(codec, cfg.GetAccessTokenTTL(), cfg.GetRefreshTokenTTL(), cfg.GetIssuer(), logger, opts...)
	if err != nil {
		return nil, nil, err
	}

	return issuer, NewTokenValidator(codec), nil
}

// AccessTokenTTL exposes the configured access-token lifetime
func (ti *TokenIssuer) AccessTokenTTL() time.Duration {
	return ti.accessTTL
}

// RefreshTokenTTL exposes the configured refresh-token lifetime
func (ti *TokenIssuer) RefreshTokenTTL() time.Duration {
	return ti.refreshTTL
}
