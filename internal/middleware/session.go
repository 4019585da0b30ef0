// Package middleware holds the request pipeline shared by every frontend
// route.
package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/limpopo-connect-web/internal/session"
)

// sessionKey is the echo context key under which the request's session
// context is stored.
const sessionKey = "session"

// Session returns a middleware that restores the persisted session cookie
// into an explicit session.Context for the request.  The cookie signature
// and expiry are checked locally; the backend is never contacted.  A
// missing or invalid cookie yields an anonymous context, so handlers can
// always rely on SessionFrom returning a non-nil value.
func Session(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sc := session.Restore(store, c.Request())
			c.Set(sessionKey, sc)
			return next(c)
		}
	}
}

// SessionFrom returns the session context stored by Session.  Routes
// mounted without the middleware get an anonymous context.
func SessionFrom(c echo.Context) *session.Context {
	if sc, ok := c.Get(sessionKey).(*session.Context); ok && sc != nil {
		return sc
	}
	return session.Anonymous()
}
