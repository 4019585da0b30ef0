// Package router registers the frontend routes on an echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/limpopo-connect-web/internal/handler"
)

// RegisterRoutes registers the operational endpoints: liveness, backend
// readiness and Prometheus metrics.
func RegisterRoutes(e *echo.Echo, ready *handler.ReadyHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", ready.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterPublic registers the pages anyone can see.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler) {
	e.GET("/", b.Home)
	e.GET("/ads/:id", b.Ad)
}

// RegisterAuth registers registration, login and logout.  The form posts go
// through limit, the shared form rate limiter.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	e.GET("/login", a.LoginPage)
	e.POST("/login", a.Login, limit)
	e.GET("/register", a.RegisterPage)
	e.POST("/register", a.Register, limit)
	e.POST("/logout", a.Logout)
}
