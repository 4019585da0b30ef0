package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/limpopo-connect-web/internal/middleware"
	"github.com/iliyamo/limpopo-connect-web/internal/model"
	"github.com/iliyamo/limpopo-connect-web/internal/render"
	"github.com/iliyamo/limpopo-connect-web/internal/repository"
	"github.com/iliyamo/limpopo-connect-web/internal/service"
	"github.com/iliyamo/limpopo-connect-web/internal/session"
	"github.com/iliyamo/limpopo-connect-web/internal/view"
)

// loginToPost is shown when an anonymous visitor tries to post.
const loginToPost = "Please login to post an ad"

// AdHandler serves the post-ad page.
type AdHandler struct {
	Ads         *service.AdService
	Ref         References
	Flashes     *session.Flashes
	MaxUploadMB int
}

// AdFormData is the view model shared by the post-ad and edit pages.
type AdFormData struct {
	Form        model.AdForm
	Ref         model.Reference
	Action      string
	Edit        bool
	MaxUploadMB int
}

func (h *AdHandler) NewAd(c echo.Context) error {
	ctx, cancel := backendContext(c)
	defer cancel()
	data := AdFormData{Ref: h.Ref.Load(ctx), Action: "/ads", MaxUploadMB: h.MaxUploadMB}
	return c.Render(http.StatusOK, render.PageAdForm, newPage(c, h.Flashes, view.PostAd, "Post Ad", data))
}

// Create submits the ad.  Anonymous visitors get the form back with a
// notice and no backend call is made, not even for reference data.
func (h *AdHandler) Create(c echo.Context) error {
	f, closeImage, err := bindAdForm(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	defer closeImage()

	data := AdFormData{Form: f, Ref: h.Ref.Known(), Action: "/ads", MaxUploadMB: h.MaxUploadMB}
	data.Form.Image = nil

	sc := middleware.SessionFrom(c)
	if !sc.Active() {
		p := newPage(c, h.Flashes, view.PostAd, "Post Ad", data)
		return c.Render(http.StatusOK, render.PageAdForm, withError(p, loginToPost))
	}

	ctx, cancel := backendContext(c)
	defer cancel()
	if _, err := h.Ads.Submit(ctx, sc, f); err != nil {
		p := newPage(c, h.Flashes, view.PostAd, "Post Ad", data)
		return c.Render(http.StatusOK, render.PageAdForm, withError(p, adFailure(err, "post ad")))
	}
	notify(c, h.Flashes, session.NoticeSuccess, "Ad posted successfully!")
	return redirectTo(c, view.After(view.AdPosted))
}

// bindAdForm reads the text fields and the optional image.  The returned
// func closes the image and is always safe to call.
func bindAdForm(c echo.Context) (model.AdForm, func(), error) {
	var f model.AdForm
	if err := c.Bind(&f); err != nil {
		return f, func() {}, err
	}
	fh, err := c.FormFile("image")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			log.WithError(err).Debug("ads: ignoring unreadable image part")
		}
		return f, func() {}, nil
	}
	if fh.Size == 0 || fh.Filename == "" {
		return f, func() {}, nil
	}
	file, err := fh.Open()
	if err != nil {
		return f, func() {}, fmt.Errorf("open image: %w", err)
	}
	f.Image = &model.ImageUpload{Filename: fh.Filename, Size: fh.Size, Content: file}
	return f, func() { _ = file.Close() }, nil
}

// adFailure maps ad workflow errors to user-facing messages.
func adFailure(err error, op string) string {
	switch {
	case errors.Is(err, service.ErrNoSession):
		return loginToPost
	case errors.Is(err, service.ErrMissingFields):
		return "Please fill in the title, description, category and location."
	case errors.Is(err, service.ErrInvalidAge):
		return "Please enter a valid age."
	case errors.Is(err, service.ErrImageTooLarge):
		return "The " + err.Error() + "."
	case errors.Is(err, service.ErrNotOwner):
		return "You can only change your own ads."
	case errors.Is(err, repository.ErrNotFound):
		return "That ad no longer exists."
	}
	return describe(err, op)
}
