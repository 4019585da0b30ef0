package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/limpopo-connect-web/internal/middleware"
	"github.com/iliyamo/limpopo-connect-web/internal/render"
	"github.com/iliyamo/limpopo-connect-web/internal/repository"
	"github.com/iliyamo/limpopo-connect-web/internal/view"
)

// ErrorData is the view model of the error page.
type ErrorData struct {
	Status  int
	Message string
}

// ErrorHandler renders unexpected errors as an HTML page.  Internal
// details are logged, never shown.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	msg := "Something went wrong. Please try again."

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		status = he.Code
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
	case errors.Is(err, repository.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found"
	}
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("uri", c.Request().RequestURI).Error("request error")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	p := render.Page{Title: http.StatusText(status), View: view.Home, Data: ErrorData{Status: status, Message: msg}}
	if u, ok := middleware.SessionFrom(c).User(); ok {
		p.User = &u
	}
	if rerr := c.Render(status, render.PageError, p); rerr != nil {
		log.WithError(rerr).Error("rendering error page failed")
		_ = c.String(status, msg)
	}
}
