package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/munasbate/backend/internal/apperrors"
)

// currentUserID returns the authenticated caller's user id, or "" for a
// guest request that came through the optional-session middleware.
func currentUserID(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok {
		return id
	}
	return ""
}

func currentAccountType(c echo.Context) string {
	if t, ok := c.Get("accountType").(string); ok {
		return t
	}
	return ""
}

// requireUser rejects guests. Mutating endpoints call it first.
func requireUser(c echo.Context) (string, error) {
	userID := currentUserID(c)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return userID, nil
}

// httpError translates a store error into an echo.HTTPError, preserving the
// typed taxonomy's status mapping.
func httpError(err error) *echo.HTTPError {
	if he, ok := err.(*echo.HTTPError); ok {
		return he
	}
	return echo.NewHTTPError(apperrors.Status(err), err.Error())
}
