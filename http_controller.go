package auth

import (
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// SignInRequest is the signin payload. The service has no password
// verification flow; identity is asserted by email only.
type SignInRequest struct {
	Email string `json:"email" form:"email" query:"email"`
}

// Validate will run validation rules
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
	)
}

// SignUpRequest is the account creation payload
type SignUpRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Admin    bool   `json:"admin_flag" form:"admin_flag"`
	Password string `json:"password,omitempty" form:"password"`
}

// Validate will run validation rules
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Length(10, 100)),
	)
}

// AuthController serves the token issuance endpoints: signin, signup, and
// refresh, plus the authenticated profile and admin listings.
type AuthController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Issuer       *TokenIssuer
	Validator    *TokenValidator
	Resolver     *AuthenticationResolver
	ErrorHandler router.ErrorHandler
}

// AuthControllerOption configures the controller
type AuthControllerOption func(*AuthController) *AuthController

// NewAuthController builds a controller with default logging and error
// handling; required collaborators come in through options.
func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	if c.ErrorHandler == nil {
		c.ErrorHandler = defaultErrHandler(c.Logger)
	}

	return c
}

// WithControllerLogger sets the controller logger
func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

// WithControllerRepo sets the repository manager
func WithControllerRepo(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

// WithControllerTokens sets the token pipeline collaborators
func WithControllerTokens(issuer *TokenIssuer, validator *TokenValidator, resolver *AuthenticationResolver) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Issuer = issuer
		c.Validator = validator
		c.Resolver = resolver
		return c
	}
}

// WithControllerErrorHandler sets a custom error handler
func WithControllerErrorHandler(handler router.ErrorHandler) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.ErrorHandler = handler
		return c
	}
}

// RegisterAuthRoutes wires the public token endpoints
func RegisterAuthRoutes[T any](app router.Router[T], controller *AuthController) {
	app.Post("/auth/signin", controller.SignIn).SetName("auth.signin")
	app.Post("/auth/signup", controller.SignUp).SetName("auth.signup")
	app.Get("/auth/refresh", controller.Refresh).SetName("auth.refresh")
}

// RegisterProtectedRoutes wires the endpoints that read the authenticated
// principal. The authn middleware attaches principals without blocking;
// the guards enforce roles per endpoint.
func RegisterProtectedRoutes[T any](app router.Router[T], controller *AuthController, authn router.MiddlewareFunc, userGuard, adminGuard router.MiddlewareFunc) {
	app.Get("/auth/me", controller.Me, authn, userGuard).SetName("auth.me")
	app.Get("/auth/admin/users", controller.AdminUsers, authn, adminGuard).SetName("auth.admin.users")
}

// SignIn issues an access token for a registered email
func (a *AuthController) SignIn(ctx router.Context) error {
	payload := new(SignInRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse signin payload"))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryValidation, "invalid signin payload"))
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(payload))
	}

	user, err := a.Repo.Users().FindByEmail(ctx.Context(), payload.Email)
	if err != nil {
		a.Logger.Error("SignIn user lookup failed", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	if user == nil {
		a.Logger.Info("SignIn unknown email", "email", payload.Email)
		return a.ErrorHandler(ctx, ErrIdentityNotFound)
	}

	token, err := a.Issuer.IssueAccessToken(IdentityFromUser(user))
	if err != nil {
		a.Logger.Error("SignIn token issuance failed", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, NewTokenResponse(token))
}

// SignUp registers a new account. Duplicate name or email is a conflict.
func (a *AuthController) SignUp(ctx router.Context) error {
	payload := new(SignUpRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "failed to parse signup payload"))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryValidation, "invalid signup payload"))
	}

	user := &User{
		Name:  payload.Name,
		Email: payload.Email,
		Admin: payload.Admin,
	}

	if payload.Password != "" {
		hash, err := HashPassword(payload.Password)
		if err != nil {
			return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryInternal, "failed to hash password"))
		}
		user.PasswordHash = hash
	}

	created, err := a.Repo.Users().Register(ctx.Context(), user)
	if err != nil {
		a.Logger.Error("SignUp registration failed", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]any{
		"id":      created.ID.String(),
		"message": "user created",
	})
}

// Refresh re-issues an access token when the presented refresh token is
// currently valid. The caller sends its (possibly expired) access token in
// the Authorization header and the refresh token as a query parameter. The
// response embeds a newly issued refresh token: redemption rotates.
func (a *AuthController) Refresh(ctx router.Context) error {
	raw, ok := BearerToken(ctx.GetString(router.HeaderAuthorization, ""))
	if !ok {
		return a.ErrorHandler(ctx, errors.New("missing bearer token", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized))
	}

	refreshRaw := ctx.Query("refresh_token", "")
	if refreshRaw == "" {
		return a.ErrorHandler(ctx, errors.New("refresh_token parameter is required", errors.CategoryValidation))
	}

	// Structural and signature checks only; the access token is allowed to
	// be expired here, expiry is exactly what refresh exists for.
	accessClaims, err := a.Validator.Decode(raw)
	if err != nil {
		a.Logger.Info("Refresh rejected access token", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	refreshClaims, err := a.Validator.Validate(refreshRaw, SubjectRefreshToken)
	if err != nil {
		a.Logger.Info("Refresh rejected refresh token", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	if accessClaims.UserID != "" && accessClaims.UserID != refreshClaims.UserID {
		return a.ErrorHandler(ctx, errors.New("refresh token does not belong to the presented access token", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized))
	}

	principal, err := a.Resolver.Resolve(ctx.Context(), refreshClaims)
	if err != nil {
		a.Logger.Info("Refresh could not resolve principal", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	token, err := a.Issuer.IssueAccessToken(IdentityFromPrincipal(principal))
	if err != nil {
		a.Logger.Error("Refresh token issuance failed", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, NewTokenResponse(token))
}

// Me returns the authenticated principal for the current request
func (a *AuthController) Me(ctx router.Context) error {
	principal, ok := PrincipalFromRouterContext(ctx, "")
	if !ok {
		return a.ErrorHandler(ctx, ErrPrincipalNotFound)
	}
	return ctx.JSON(http.StatusOK, principal)
}

// AdminUsers lists every registered account
func (a *AuthController) AdminUsers(ctx router.Context) error {
	records, err := a.Repo.Users().All(ctx.Context())
	if err != nil {
		a.Logger.Error("AdminUsers listing failed", "error", err)
		return a.ErrorHandler(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]any{
		"users": records,
	})
}
