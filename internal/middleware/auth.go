package middleware

import (
	"net/http"
	"razorpay-checkout-demo/internal/identity"
	"strings"

	"github.com/labstack/echo/v4"
)

const UserContextKey = "user"

// Auth validates the bearer session token and puts the signed-in identity on
// the request context.
func Auth(tokens *identity.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			user, err := tokens.Parse(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

func UserFromContext(c echo.Context) (*identity.Identity, error) {
	user, ok := c.Get(UserContextKey).(*identity.Identity)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	return user, nil
}
