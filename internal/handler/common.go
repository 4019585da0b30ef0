// Package handler holds the page handlers of the frontend.  Handlers are
// grouped in structs that bundle their dependencies; every page is rendered
// through render.Page so the layout always sees the session user and the
// pending notices.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/limpopo-connect-web/internal/backend"
	"github.com/iliyamo/limpopo-connect-web/internal/middleware"
	"github.com/iliyamo/limpopo-connect-web/internal/model"
	"github.com/iliyamo/limpopo-connect-web/internal/render"
	"github.com/iliyamo/limpopo-connect-web/internal/session"
	"github.com/iliyamo/limpopo-connect-web/internal/view"
)

// requestTimeout bounds all backend work done for one page.
const requestTimeout = 15 * time.Second

// unreachable is shown when the backend could not be contacted at all.
const unreachable = "Could not reach the server. Please try again."

// References supplies the category and location lists.
type References interface {
	Load(ctx context.Context) model.Reference
	Known() model.Reference
}

// backendContext derives the context for backend calls from the request.
func backendContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// newPage assembles the layout data.  It pops queued notices, which writes
// a cookie, so it must run before anything is written to the body.
func newPage(c echo.Context, flashes *session.Flashes, v view.View, title string, data any) render.Page {
	p := render.Page{Title: title, View: v, Data: data}
	if u, ok := middleware.SessionFrom(c).User(); ok {
		p.User = &u
	}
	if flashes != nil {
		p.Notices = flashes.Pop(c.Response(), c.Request())
	}
	return p
}

// withError appends an inline error notice to p.
func withError(p render.Page, msg string) render.Page {
	p.Notices = append(p.Notices, session.Notice{Kind: session.NoticeError, Message: msg})
	return p
}

// notify queues a notice for the page the response redirects to.
func notify(c echo.Context, flashes *session.Flashes, kind, msg string) {
	if flashes == nil {
		return
	}
	if err := flashes.Add(c.Response(), c.Request(), kind, msg); err != nil {
		log.WithError(err).Warn("handler: could not queue notice")
	}
}

// redirectTo answers a successful form post with a redirect to v.
func redirectTo(c echo.Context, v view.View) error {
	return c.Redirect(http.StatusSeeOther, v.Path())
}

// describe turns a failed backend call into the message shown to the user.
// Backend-reported errors surface their detail verbatim; transport failures
// get a generic message and are logged.
func describe(err error, op string) string {
	if apiErr, ok := backend.AsAPIError(err); ok {
		log.WithError(err).WithField("op", op).Info("backend rejected request")
		return apiErr.Detail
	}
	if errors.Is(err, context.Canceled) {
		log.WithField("op", op).Debug("request cancelled by client")
	} else {
		log.WithError(err).WithField("op", op).Error("backend call failed")
	}
	return unreachable
}
