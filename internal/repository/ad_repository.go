package repository

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/iliyamo/limpopo-connect-web/internal/backend"
	"github.com/iliyamo/limpopo-connect-web/internal/model"
)

// AdRepo wraps the ad endpoints of the backend.
type AdRepo struct{ API *backend.Client }

func NewAdRepo(api *backend.Client) *AdRepo { return &AdRepo{API: api} }

type adsResp struct {
	Ads []model.Listing `json:"ads"`
}

// CreateResult is the backend's acknowledgement of a new ad.
type CreateResult struct {
	Message string `json:"message"`
	AdID    string `json:"ad_id"`
}

// List returns the full listing collection.  A response without an "ads"
// key yields an empty, non-nil slice.
func (r *AdRepo) List(ctx context.Context) ([]model.Listing, error) {
	var out adsResp
	if err := r.API.GetJSON(ctx, "/api/ads", nil, &out); err != nil {
		return nil, translate(err)
	}
	if out.Ads == nil {
		out.Ads = []model.Listing{}
	}
	return out.Ads, nil
}

// Get returns one ad.  The backend increments its view counter.
func (r *AdRepo) Get(ctx context.Context, id string) (model.Listing, error) {
	var out model.Listing
	if err := r.API.GetJSON(ctx, "/api/ads/"+url.PathEscape(id), nil, &out); err != nil {
		return model.Listing{}, translate(err)
	}
	return out, nil
}

// Create posts a new ad on behalf of userID.
func (r *AdRepo) Create(ctx context.Context, userID string, f model.AdForm) (CreateResult, error) {
	var out CreateResult
	if err := r.API.SendMultipart(ctx, http.MethodPost, "/api/ads", adPayload(userID, f), &out); err != nil {
		return CreateResult{}, translate(err)
	}
	return out, nil
}

// Update replaces the editable fields of an ad owned by userID.
func (r *AdRepo) Update(ctx context.Context, id, userID string, f model.AdForm) error {
	err := r.API.SendMultipart(ctx, http.MethodPut, "/api/ads/"+url.PathEscape(id), adPayload(userID, f), nil)
	return translate(err)
}

// Delete removes an ad owned by userID.
func (r *AdRepo) Delete(ctx context.Context, id, userID string) error {
	q := url.Values{"user_id": {userID}}
	return translate(r.API.Delete(ctx, "/api/ads/"+url.PathEscape(id), q, nil))
}

// adPayload assembles the multipart body: required fields always, optional
// ones (age, phone, whatsapp, image) only when present.
func adPayload(userID string, f model.AdForm) *backend.Multipart {
	m := &backend.Multipart{}
	m.Field("title", strings.TrimSpace(f.Title)).
		Field("description", strings.TrimSpace(f.Description)).
		Field("category", f.Category).
		Field("location", f.Location).
		Field("user_id", userID).
		Optional("age", strings.TrimSpace(f.Age)).
		Optional("phone", strings.TrimSpace(f.Phone)).
		Optional("whatsapp", strings.TrimSpace(f.WhatsApp))
	if f.Image != nil {
		m.File("image", f.Image.Filename, f.Image.Content)
	}
	return m
}
