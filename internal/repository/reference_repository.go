package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/limpopo-connect-web/internal/backend"
	"github.com/iliyamo/limpopo-connect-web/internal/config"
	"github.com/iliyamo/limpopo-connect-web/internal/metrics"
	"github.com/iliyamo/limpopo-connect-web/internal/model"
)

// ReferenceRepo loads the category and location lists, optionally through
// a Redis read-through cache.  Cache failures are logged and bypassed.
type ReferenceRepo struct {
	API   *backend.Client
	Cache *redis.Client // nil disables caching
	Cfg   config.RefDataCacheConfig

	mu    sync.RWMutex
	known model.Reference
}

func NewReferenceRepo(api *backend.Client, rdb *redis.Client, cfg config.RefDataCacheConfig) *ReferenceRepo {
	if !cfg.Enabled {
		rdb = nil
	}
	return &ReferenceRepo{
		API:   api,
		Cache: rdb,
		Cfg:   cfg,
		known: model.Reference{Categories: []string{}, Locations: []string{}},
	}
}

// Categories returns GET /api/categories.
func (r *ReferenceRepo) Categories(ctx context.Context) ([]string, error) {
	return r.list(ctx, "categories")
}

// Locations returns GET /api/locations.
func (r *ReferenceRepo) Locations(ctx context.Context) ([]string, error) {
	return r.list(ctx, "locations")
}

// Load fetches both lists.  A failure in one list is logged and leaves that
// list empty; it never prevents the other list from loading.
func (r *ReferenceRepo) Load(ctx context.Context) model.Reference {
	ref := model.Reference{Categories: []string{}, Locations: []string{}}
	if cats, err := r.Categories(ctx); err != nil {
		log.WithError(err).Error("reference: loading categories failed")
	} else {
		ref.Categories = cats
		r.remember(func(k *model.Reference) { k.Categories = cats })
	}
	if locs, err := r.Locations(ctx); err != nil {
		log.WithError(err).Error("reference: loading locations failed")
	} else {
		ref.Locations = locs
		r.remember(func(k *model.Reference) { k.Locations = locs })
	}
	return ref
}

// Known returns the lists from the last successful loads without any I/O.
// Lists never loaded are empty.
func (r *ReferenceRepo) Known() model.Reference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return model.Reference{
		Categories: append([]string{}, r.known.Categories...),
		Locations:  append([]string{}, r.known.Locations...),
	}
}

func (r *ReferenceRepo) remember(update func(*model.Reference)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	update(&r.known)
}

// list serves kind ("categories" or "locations") whose response body is
// {"<kind>": [...]}.
func (r *ReferenceRepo) list(ctx context.Context, kind string) ([]string, error) {
	key := r.Cfg.Prefix + ":" + kind
	if r.Cache != nil {
		bs, err := r.Cache.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var cached []string
			if json.Unmarshal(bs, &cached) == nil {
				metrics.RefDataCache.WithLabelValues(kind, "hit").Inc()
				return cached, nil
			}
		case errors.Is(err, redis.Nil):
			metrics.RefDataCache.WithLabelValues(kind, "miss").Inc()
		default:
			metrics.RefDataCache.WithLabelValues(kind, "error").Inc()
			log.WithError(err).WithField("key", key).Warn("reference: cache read failed")
		}
	}

	var body map[string][]string
	if err := r.API.GetJSON(ctx, "/api/"+kind, nil, &body); err != nil {
		return nil, translate(err)
	}
	out := body[kind]
	if out == nil {
		out = []string{}
	}

	if r.Cache != nil {
		if bs, err := json.Marshal(out); err == nil {
			if err := r.Cache.Set(ctx, key, bs, r.Cfg.TTL).Err(); err != nil {
				log.WithError(err).WithField("key", key).Warn("reference: cache write failed")
			}
		}
	}
	return out, nil
}
