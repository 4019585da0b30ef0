package router

import (
	"fmt"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/limpopo-connect-web/internal/handler"
	"github.com/iliyamo/limpopo-connect-web/internal/middleware"
	"github.com/iliyamo/limpopo-connect-web/internal/session"
	"github.com/iliyamo/limpopo-connect-web/internal/view"
)

// RegisterOwner registers the session-scoped screens: posting an ad and the
// owner dashboard.  Navigating to them while signed out lands on the login
// page.  POST /ads is deliberately left unguarded so the post-ad form can
// answer an anonymous submit itself.
func RegisterOwner(e *echo.Echo, ads *handler.AdHandler, d *handler.DashboardHandler, flashes *session.Flashes, limit echo.MiddlewareFunc, maxUploadMB int) {
	// multipart overhead on top of the photo itself
	bodyLimit := echomw.BodyLimit(fmt.Sprintf("%dM", maxUploadMB+1))

	e.GET("/ads/new", ads.NewAd, middleware.RequireSession(view.PostAd, flashes, "Please login to post an ad"))
	e.POST("/ads", ads.Create, bodyLimit, limit)

	g := e.Group("/dashboard", middleware.RequireSession(view.Dashboard, flashes, "Please login to view your dashboard"))
	g.GET("", d.Show)
	g.GET("/ads/:id/edit", d.Edit)
	g.POST("/ads/:id", d.Update, bodyLimit, limit)
	g.GET("/ads/:id/delete", d.ConfirmDelete)
	g.POST("/ads/:id/delete", d.Delete, limit)
}
