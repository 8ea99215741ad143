// Package bearerware authenticates requests that carry a bearer token in
// the Authorization header. The middleware validates and resolves the token
// into a Principal and attaches it to the request context; it never blocks
// the chain on authentication failure. Role enforcement is a separate,
// per-endpoint guard so that unauthenticated requests still reach handlers
// that allow them.
package bearerware

import (
	"context"
	"net/http"
	"strings"

	auth "github.com/circleGiven/jwt-study"
	"github.com/goliatone/go-router"
)

// TokenValidator validates a raw token under an expected purpose. This
// mirrors auth.TokenValidator without creating an import cycle for callers
// that plug in their own implementation.
type TokenValidator interface {
	Validate(tokenString, expectedSubject string) (*auth.TokenClaims, error)
}

// PrincipalResolver resolves validated claims into a principal
type PrincipalResolver interface {
	Resolve(ctx context.Context, claims *auth.TokenClaims) (*auth.Principal, error)
}

// Config configures the authentication middleware
type Config struct {
	// Filter skips the middleware entirely when it returns true
	Filter func(router.Context) bool

	// SuccessHandler runs after a principal was attached. Defaults to
	// continuing the chain.
	SuccessHandler router.HandlerFunc

	// UnauthenticatedHandler runs when no principal could be attached, for
	// any reason: missing header, wrong scheme, invalid token, vanished
	// account. Defaults to continuing the chain unauthenticated.
	UnauthenticatedHandler router.HandlerFunc

	// Validator is required
	Validator TokenValidator

	// Resolver is required
	Resolver PrincipalResolver

	// ContextKey is the router locals key for the principal. Default "principal".
	ContextKey string

	// AuthScheme defaults to "Bearer". Matching is case sensitive; a header
	// with any other scheme reads as no token at all.
	AuthScheme string

	Logger auth.Logger
}

// GetDefaultConfig fills in middleware defaults
func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Validator == nil {
		panic("AUTH: bearer middleware configuration: Validator is required.")
	}

	if cfg.Resolver == nil {
		panic("AUTH: bearer middleware configuration: Resolver is required.")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.UnauthenticatedHandler == nil {
		cfg.UnauthenticatedHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "principal"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}

	return cfg
}

// New builds the request authentication middleware. Per request:
//
//	no token, or malformed scheme      -> pass through unauthenticated
//	token present, validation fails    -> pass through unauthenticated
//	token valid, resolution fails      -> pass through unauthenticated
//	token valid, principal resolved    -> attach principal, pass through
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			raw, ok := extractToken(ctx, cfg.AuthScheme)
			if !ok {
				return cfg.UnauthenticatedHandler(ctx)
			}

			claims, err := cfg.Validator.Validate(raw, auth.SubjectAccessToken)
			if err != nil {
				if auth.IsSignatureError(err) {
					cfg.Logger.Warn("rejected token with invalid signature", "error", err)
				} else {
					cfg.Logger.Debug("rejected token", "error", err)
				}
				return cfg.UnauthenticatedHandler(ctx)
			}

			principal, err := cfg.Resolver.Resolve(ctx.Context(), claims)
			if err != nil {
				cfg.Logger.Debug("could not resolve principal", "error", err)
				return cfg.UnauthenticatedHandler(ctx)
			}

			ctx.Locals(cfg.ContextKey, principal)
			ctx.SetContext(auth.WithPrincipal(ctx.Context(), principal))

			return cfg.SuccessHandler(ctx)
		}
	}
}

// RequireRole is the per-endpoint authorization guard. Requests without a
// resolved principal get 401; principals missing the role get 403.
func RequireRole(role string, contextKey ...string) router.MiddlewareFunc {
	key := ""
	if len(contextKey) > 0 {
		key = contextKey[0]
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			principal, ok := auth.PrincipalFromRouterContext(ctx, key)
			if !ok {
				return ctx.Status(http.StatusUnauthorized).SendString("authentication required")
			}

			if !principal.HasRole(role) {
				return ctx.Status(http.StatusForbidden).SendString("insufficient role")
			}

			return next(ctx)
		}
	}
}

func extractToken(ctx router.Context, scheme string) (string, bool) {
	header := ctx.GetString(router.HeaderAuthorization, "")
	prefix := scheme + " "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

type noopLogger struct{}

func (noopLogger) Debug(format string, args ...any) {}
func (noopLogger) Info(format string, args ...any)  {}
func (noopLogger) Warn(format string, args ...any)  {}
func (noopLogger) Error(format string, args ...any) {}
