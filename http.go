package auth

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// TokenResponse is the issuance payload returned by signin and refresh
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewTokenResponse wraps a signed token in the standard response shape
func NewTokenResponse(token string) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	}
}

// BearerToken extracts the raw token from an Authorization header value.
// The scheme is exactly "Bearer " with that capitalization; anything else,
// including a missing prefix, reads as no token at all.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// StatusFromError maps rich error categories onto HTTP status codes.
// Anything that is not a rich error is a 500.
func StatusFromError(err error) int {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return http.StatusInternalServerError
	}

	switch rich.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return http.StatusUnauthorized
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func defaultErrHandler(logger Logger) router.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c router.Context, err error) error {
		var rich *errors.Error
		if !errors.As(err, &rich) {
			rich = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		logger.Info(
			"Request error handler",
			"error", rich.Message,
			"category", rich.Category,
			"details", print.MaybePrettyJSON(rich.Metadata),
		)

		return c.JSON(StatusFromError(rich), map[string]any{
			"error": rich.Message,
			"code":  rich.TextCode,
		})
	}
}
