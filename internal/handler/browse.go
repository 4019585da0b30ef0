package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/limpopo-connect-web/internal/listing"
	"github.com/iliyamo/limpopo-connect-web/internal/middleware"
	"github.com/iliyamo/limpopo-connect-web/internal/model"
	"github.com/iliyamo/limpopo-connect-web/internal/render"
	"github.com/iliyamo/limpopo-connect-web/internal/repository"
	"github.com/iliyamo/limpopo-connect-web/internal/session"
	"github.com/iliyamo/limpopo-connect-web/internal/view"
)

// AdReader fetches one ad.
type AdReader interface {
	Get(ctx context.Context, id string) (model.Listing, error)
}

// BrowseHandler serves the public pages: the filtered home listing and the
// ad detail page.
type BrowseHandler struct {
	Ref      References
	Listings *listing.Loader
	Ads      AdReader
	Flashes  *session.Flashes
}

// HomeData is the view model of the home page.
type HomeData struct {
	Filter listing.Filter
	Ref    model.Reference
	Ads    []model.Listing // filtered projection
	Total  int             // size of the unfiltered collection
	Counts []listing.CategoryCount

	Stale      bool      // the latest fetch failed
	Refreshing bool      // another fetch of the collection is in flight
	UpdatedAt  time.Time // when the shown collection was fetched
}

// AdData is the view model of the ad detail page.
type AdData struct {
	Ad    model.Listing
	Owner bool
}

// Home fetches reference data and the full collection, then filters it
// locally by q, category and location.  A failed listing fetch still
// renders the last known collection.
func (h *BrowseHandler) Home(c echo.Context) error {
	ctx, cancel := backendContext(c)
	defer cancel()

	f := listing.NewFilter(c.QueryParam("q"), c.QueryParam("category"), c.QueryParam("location"))
	ref := h.Ref.Load(ctx)
	ads, err := h.Listings.Load(ctx)

	data := HomeData{
		Filter: f,
		Ref:    ref,
		Ads:    listing.Apply(ads, f),
		Total:  len(ads),
		Counts: listing.CountByCategory(ads, ref.Categories),

		Stale:      err != nil,
		Refreshing: h.Listings.Loading(),
		UpdatedAt:  h.Listings.LoadedAt(),
	}
	return c.Render(http.StatusOK, render.PageHome, newPage(c, h.Flashes, view.Home, "", data))
}

// Ad renders one ad.  Fetching it bumps its view counter on the backend.
func (h *BrowseHandler) Ad(c echo.Context) error {
	ctx, cancel := backendContext(c)
	defer cancel()

	ad, err := h.Ads.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Ad not found")
		}
		return echo.NewHTTPError(http.StatusBadGateway, describe(err, "get ad")).SetInternal(err)
	}
	data := AdData{Ad: ad, Owner: ad.OwnedBy(middleware.SessionFrom(c).UserID())}
	return c.Render(http.StatusOK, render.PageAd, newPage(c, h.Flashes, view.Home, ad.Title, data))
}
