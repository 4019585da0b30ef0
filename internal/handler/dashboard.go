package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/limpopo-connect-web/internal/middleware"
	"github.com/iliyamo/limpopo-connect-web/internal/model"
	"github.com/iliyamo/limpopo-connect-web/internal/render"
	"github.com/iliyamo/limpopo-connect-web/internal/repository"
	"github.com/iliyamo/limpopo-connect-web/internal/service"
	"github.com/iliyamo/limpopo-connect-web/internal/session"
	"github.com/iliyamo/limpopo-connect-web/internal/view"
)

// DashboardHandler serves the owner dashboard.  All routes are mounted
// behind middleware.RequireSession.
type DashboardHandler struct {
	Ads         *service.AdService
	Ref         References
	Flashes     *session.Flashes
	MaxUploadMB int
}

// DeleteData is the view model of the delete confirmation page.
type DeleteData struct {
	Ad model.Listing
}

// Show renders the profile card and the owner's ads, projected from a
// fresh fetch of the full collection.
func (h *DashboardHandler) Show(c echo.Context) error {
	ctx, cancel := backendContext(c)
	defer cancel()

	d, err := h.Ads.Dashboard(ctx, middleware.SessionFrom(c))
	if err != nil {
		return redirectTo(c, view.Resolve(view.Dashboard, false))
	}
	return c.Render(http.StatusOK, render.PageDashboard, newPage(c, h.Flashes, view.Dashboard, "Dashboard", d))
}

// Edit renders the edit form pre-filled from the ad.
func (h *DashboardHandler) Edit(c echo.Context) error {
	ctx, cancel := backendContext(c)
	defer cancel()

	ad, err := h.Ads.OwnedAd(ctx, middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		return h.back(c, err, "edit ad")
	}
	data := h.formData(ad.ID, model.AdFormFrom(ad), h.Ref.Load(ctx))
	return c.Render(http.StatusOK, render.PageAdForm, newPage(c, h.Flashes, view.Dashboard, "Edit Ad", data))
}

// Update sends the edited ad to the backend.  The dashboard reports
// success only after the backend confirmed it.
func (h *DashboardHandler) Update(c echo.Context) error {
	f, closeImage, err := bindAdForm(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	defer closeImage()
	ctx, cancel := backendContext(c)
	defer cancel()

	id := c.Param("id")
	if err := h.Ads.Update(ctx, middleware.SessionFrom(c), id, f); err != nil {
		if errors.Is(err, service.ErrNotOwner) || errors.Is(err, repository.ErrNotFound) {
			return h.back(c, err, "update ad")
		}
		f.Image = nil
		p := newPage(c, h.Flashes, view.Dashboard, "Edit Ad", h.formData(id, f, h.Ref.Known()))
		return c.Render(http.StatusOK, render.PageAdForm, withError(p, adFailure(err, "update ad")))
	}
	notify(c, h.Flashes, session.NoticeSuccess, "Ad updated successfully!")
	return redirectTo(c, view.After(view.AdUpdated))
}

// ConfirmDelete asks before deleting.
func (h *DashboardHandler) ConfirmDelete(c echo.Context) error {
	ctx, cancel := backendContext(c)
	defer cancel()

	ad, err := h.Ads.OwnedAd(ctx, middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		return h.back(c, err, "delete ad")
	}
	return c.Render(http.StatusOK, render.PageDelete, newPage(c, h.Flashes, view.Dashboard, "Delete Ad", DeleteData{Ad: ad}))
}

// Delete removes the ad on the backend.  If the backend refuses, its detail
// is shown and the ad stays listed.
func (h *DashboardHandler) Delete(c echo.Context) error {
	ctx, cancel := backendContext(c)
	defer cancel()

	if err := h.Ads.Delete(ctx, middleware.SessionFrom(c), c.Param("id")); err != nil {
		return h.back(c, err, "delete ad")
	}
	notify(c, h.Flashes, session.NoticeSuccess, "Ad deleted successfully!")
	return redirectTo(c, view.After(view.AdDeleted))
}

// back returns to the dashboard with the failure as a notice.
func (h *DashboardHandler) back(c echo.Context, err error, op string) error {
	if errors.Is(err, service.ErrNoSession) {
		return redirectTo(c, view.Resolve(view.Dashboard, false))
	}
	notify(c, h.Flashes, session.NoticeError, adFailure(err, op))
	return redirectTo(c, view.Dashboard)
}

func (h *DashboardHandler) formData(id string, f model.AdForm, ref model.Reference) AdFormData {
	return AdFormData{
		Form:        f,
		Ref:         ref,
		Action:      "/dashboard/ads/" + id,
		Edit:        true,
		MaxUploadMB: h.MaxUploadMB,
	}
}
