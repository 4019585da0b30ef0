package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/limpopo-connect-web/internal/session"
	"github.com/iliyamo/limpopo-connect-web/internal/view"
)

// RequireSession guards owner-scoped screens.  Entering target goes through
// the view transition table; when that resolves elsewhere (the login page
// for anonymous visitors) the visitor is redirected there with an
// explanatory notice and target as the screen to return to.
func RequireSession(target view.View, flashes *session.Flashes, notice string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			dest, err := view.Transition(view.Initial, target, SessionFrom(c).Active())
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
			}
			if dest == target {
				return next(c)
			}
			if flashes != nil && notice != "" {
				if err := flashes.Add(c.Response(), c.Request(), session.NoticeInfo, notice); err != nil {
					log.WithError(err).Warn("require-session: could not queue notice")
				}
			}
			loc := dest.Path()
			if target.RequiresSession() {
				loc += "?" + url.Values{"next": {string(target)}}.Encode()
			}
			return c.Redirect(http.StatusSeeOther, loc)
		}
	}
}
