package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "todo-folders.com/todo-folders/internal/errors"
	model "todo-folders.com/todo-folders/internal/models"
	"todo-folders.com/todo-folders/internal/services"
)

const userContextKey = "user"

// RequireToken resolves the bearer token to a user and stores it on the
// echo context. Requests without a known token stop here with 401.
func RequireToken(users *services.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthorized.Message)
			}

			user, err := users.Authenticate(c.Request().Context(), strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(apperrors.StatusCode(err), apperrors.Message(err, "failed to authenticate"))
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user RequireToken attached, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
