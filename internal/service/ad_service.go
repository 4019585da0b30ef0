// Package service holds the ad workflows that combine the session, the
// backend repositories and the listing loader: posting an ad and the owner
// dashboard's list, edit and delete.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/limpopo-connect-web/internal/backend"
	"github.com/iliyamo/limpopo-connect-web/internal/listing"
	"github.com/iliyamo/limpopo-connect-web/internal/model"
	"github.com/iliyamo/limpopo-connect-web/internal/queue"
	"github.com/iliyamo/limpopo-connect-web/internal/repository"
	"github.com/iliyamo/limpopo-connect-web/internal/session"
)

var (
	// ErrNoSession rejects owner operations from anonymous visitors before
	// any backend call.
	ErrNoSession = errors.New("no active session")
	// ErrMissingFields is returned when a required ad field is blank.
	ErrMissingFields = errors.New("please fill in all required fields")
	// ErrInvalidAge is returned when the optional age is not a whole number.
	ErrInvalidAge = errors.New("age must be a whole number")
	// ErrImageTooLarge is returned for photos above the upload limit.
	ErrImageTooLarge = errors.New("photo is too large")
	// ErrNotOwner is returned when the ad belongs to another user.
	ErrNotOwner = errors.New("you can only change your own ads")
)

// Ads is the backend surface for ad writes.
type Ads interface {
	Create(ctx context.Context, userID string, f model.AdForm) (repository.CreateResult, error)
	Update(ctx context.Context, id, userID string, f model.AdForm) error
	Delete(ctx context.Context, id, userID string) error
}

// AdService runs the ad workflows.  All reads go through Listings so the
// dashboard and the browser project from the same collection.
type AdService struct {
	Ads       Ads
	Listings  *listing.Loader
	Events    queue.Publisher
	MaxUpload int64 // bytes; 0 disables the check
}

func NewAdService(ads Ads, listings *listing.Loader, events queue.Publisher, maxUpload int64) *AdService {
	if events == nil {
		events = queue.Noop{}
	}
	return &AdService{Ads: ads, Listings: listings, Events: events, MaxUpload: maxUpload}
}

// Dashboard is the owner view: the static profile card plus the owner's ads.
type Dashboard struct {
	User       model.User
	Ads        []model.Listing
	TotalViews int
	Stale      bool      // the latest fetch failed and Ads come from an earlier one
	Refreshing bool      // another fetch of the collection is in flight
	UpdatedAt  time.Time // when the collection Ads were projected from was fetched
}

// Validate checks a submitted ad form locally.
func (s *AdService) Validate(f model.AdForm) error {
	for _, v := range []string{f.Title, f.Description, f.Category, f.Location} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingFields
		}
	}
	if _, err := model.ParseOptionalInt(f.Age); err != nil {
		return ErrInvalidAge
	}
	if f.Image != nil && s.MaxUpload > 0 && f.Image.Size > s.MaxUpload {
		return fmt.Errorf("%w: limit is %d MB", ErrImageTooLarge, s.MaxUpload>>20)
	}
	return nil
}

// Submit posts a new ad for the signed-in user, then re-fetches the full
// collection.  Without a session nothing is sent.
func (s *AdService) Submit(ctx context.Context, sc *session.Context, f model.AdForm) (repository.CreateResult, error) {
	if !sc.Active() {
		return repository.CreateResult{}, ErrNoSession
	}
	if err := s.Validate(f); err != nil {
		return repository.CreateResult{}, err
	}
	userID := sc.UserID()
	res, err := s.Ads.Create(ctx, userID, f)
	if err != nil {
		return repository.CreateResult{}, err
	}
	s.refresh(ctx)
	s.emit(ctx, queue.AdPosted, userID, res.AdID, f.Title, f.Category)
	return res, nil
}

// Dashboard fetches the collection and projects the signed-in user's ads.
func (s *AdService) Dashboard(ctx context.Context, sc *session.Context) (Dashboard, error) {
	u, ok := sc.User()
	if !ok {
		return Dashboard{}, ErrNoSession
	}
	ads, err := s.Listings.Load(ctx)
	mine := listing.OwnedBy(ads, u.ID)
	return Dashboard{
		User:       u,
		Ads:        mine,
		TotalViews: listing.TotalViews(mine),
		Stale:      err != nil,
		Refreshing: s.Listings.Loading(),
		UpdatedAt:  s.Listings.LoadedAt(),
	}, nil
}

// OwnedAd returns ad id if it belongs to the signed-in user.
func (s *AdService) OwnedAd(ctx context.Context, sc *session.Context, id string) (model.Listing, error) {
	if !sc.Active() {
		return model.Listing{}, ErrNoSession
	}
	ads, err := s.Listings.Load(ctx)
	ad, found := listing.Find(ads, id)
	if !found {
		if err != nil {
			return model.Listing{}, err
		}
		return model.Listing{}, repository.ErrNotFound
	}
	if !ad.OwnedBy(sc.UserID()) {
		return model.Listing{}, ErrNotOwner
	}
	return ad, nil
}

// Update sends the edited fields to the backend.  Success is reported only
// after the backend confirms; the collection is then re-fetched.
func (s *AdService) Update(ctx context.Context, sc *session.Context, id string, f model.AdForm) error {
	ad, err := s.OwnedAd(ctx, sc, id)
	if err != nil {
		return err
	}
	if err := s.Validate(f); err != nil {
		return err
	}
	if err := s.Ads.Update(ctx, ad.ID, sc.UserID(), f); err != nil {
		return err
	}
	s.refresh(ctx)
	s.emit(ctx, queue.AdUpdated, sc.UserID(), ad.ID, f.Title, f.Category)
	return nil
}

// Delete removes the ad on the backend.  Nothing changes locally unless the
// backend confirms.
func (s *AdService) Delete(ctx context.Context, sc *session.Context, id string) error {
	ad, err := s.OwnedAd(ctx, sc, id)
	if err != nil {
		return err
	}
	if err := s.Ads.Delete(ctx, ad.ID, sc.UserID()); err != nil {
		return err
	}
	s.refresh(ctx)
	s.emit(ctx, queue.AdDeleted, sc.UserID(), ad.ID, ad.Title, ad.Category)
	return nil
}

func (s *AdService) refresh(ctx context.Context) {
	if _, err := s.Listings.Load(ctx); err != nil {
		log.WithError(err).Warn("ads: re-fetch after write failed")
	}
}

func (s *AdService) emit(ctx context.Context, kind, userID, adID, title, category string) {
	ev := queue.NewEvent(kind)
	ev.UserID, ev.AdID, ev.AdTitle, ev.Category = userID, adID, title, category
	ev.RequestID = backend.RequestIDFrom(ctx)
	queue.Emit(s.Events, ev)
}
