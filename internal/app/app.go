// Package app assembles the frontend: it builds every component from the
// configuration and mounts them on an echo instance.
package app

import (
	"fmt"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/limpopo-connect-web/internal/backend"
	"github.com/iliyamo/limpopo-connect-web/internal/config"
	"github.com/iliyamo/limpopo-connect-web/internal/handler"
	"github.com/iliyamo/limpopo-connect-web/internal/listing"
	"github.com/iliyamo/limpopo-connect-web/internal/middleware"
	"github.com/iliyamo/limpopo-connect-web/internal/queue"
	"github.com/iliyamo/limpopo-connect-web/internal/render"
	"github.com/iliyamo/limpopo-connect-web/internal/repository"
	"github.com/iliyamo/limpopo-connect-web/internal/router"
	"github.com/iliyamo/limpopo-connect-web/internal/service"
	"github.com/iliyamo/limpopo-connect-web/internal/session"
)

// Deps are the optional infrastructure pieces.  A nil Redis disables rate
// limiting and the reference cache; a nil Events publisher drops events.
type Deps struct {
	Redis     *redis.Client
	Events    queue.Publisher
	RateLimit config.RateLimitConfig
	RefCache  config.RefDataCacheConfig
}

// New builds the echo instance serving every frontend route.
func New(cfg config.Config, deps Deps) (*echo.Echo, error) {
	keys, err := session.DeriveKeys(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}
	events := deps.Events
	if events == nil {
		events = queue.Noop{}
	}

	api := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)
	store := session.NewStore(keys.Signing, cfg.SessionTTL, cfg.CookieSecure)
	flashes := session.NewFlashes(keys, cfg.CookieSecure)

	users := repository.NewUserRepo(api)
	ads := repository.NewAdRepo(api)
	refs := repository.NewReferenceRepo(api, deps.Redis, deps.RefCache)
	listings := listing.NewLoader(ads)

	sessions := session.NewManager(users, store, events)
	adService := service.NewAdService(ads, listings, events, cfg.MaxUploadBytes())

	renderer, err := render.New(api.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Session(store))
	e.Use(middleware.RequestLogger())
	e.Use(echomw.SecureWithConfig(echomw.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	limit := middleware.NewTokenBucket(deps.RateLimit, deps.Redis)

	router.RegisterRoutes(e, &handler.ReadyHandler{API: api})
	router.RegisterPublic(e, &handler.BrowseHandler{Ref: refs, Listings: listings, Ads: ads, Flashes: flashes})
	router.RegisterAuth(e, &handler.AuthHandler{Sessions: sessions, Ref: refs, Flashes: flashes}, limit)
	router.RegisterOwner(e,
		&handler.AdHandler{Ads: adService, Ref: refs, Flashes: flashes, MaxUploadMB: cfg.MaxUploadMB},
		&handler.DashboardHandler{Ads: adService, Ref: refs, Flashes: flashes, MaxUploadMB: cfg.MaxUploadMB},
		flashes, limit, cfg.MaxUploadMB)
	return e, nil
}
