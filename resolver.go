package auth

import (
	"context"
)

// AuthenticationResolver turns validated token claims into a Principal. The
// user record is always re-read from the store and roles derive from its
// admin flag, never from the token claim, so revoking admin status takes
// effect even for still-valid outstanding tokens.
type AuthenticationResolver struct {
	store  UserStore
	logger Logger
}

// NewAuthenticationResolver creates a resolver over the given user store.
func NewAuthenticationResolver(store UserStore, logger Logger) *AuthenticationResolver {
	if logger == nil {
		logger = defLogger{}
	}
	return &AuthenticationResolver{
		store:  store,
		logger: logger,
	}
}

// Resolve looks up the user referenced by the claims, by uid when present
// and falling back to the email claim otherwise. A missing record fails
// with ErrPrincipalNotFound: the token was valid but the account is gone,
// which is an authentication failure, not something to ignore.
func (r *AuthenticationResolver) Resolve(ctx context.Context, claims *TokenClaims) (*Principal, error) {
	if claims == nil {
		return nil, ErrPrincipalNotFound
	}

	user, err := r.lookup(ctx, claims)
	if err != nil {
		r.logger.Error("Resolve user lookup failed", "error", err)
		return nil, err
	}

	if user == nil {
		r.logger.Warn("Resolve found no user for valid token", "uid", claims.UserID)
		return nil, ErrPrincipalNotFound
	}

	return &Principal{
		UserID: user.ID.String(),
		Name:   user.Name,
		Email:  user.Email,
		Roles:  rolesForAdminFlag(user.Admin),
	}, nil
}

func (r *AuthenticationResolver) lookup(ctx context.Context, claims *TokenClaims) (*User, error) {
	if claims.UserID != "" {
		return r.store.FindByID(ctx, claims.UserID)
	}
	if claims.Email != "" {
		return r.store.FindByEmail(ctx, claims.Email)
	}
	return nil, nil
}
