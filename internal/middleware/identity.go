package middleware

// identity.go holds helpers that name the caller for keys and log fields.

import (
	"github.com/labstack/echo/v4"
)

// currentUserID returns the signed-in user's id or "anon".
func currentUserID(c echo.Context) string {
	if id := SessionFrom(c).UserID(); id != "" {
		return id
	}
	return "anon"
}

// requestID returns the id assigned by RequestID.
func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
