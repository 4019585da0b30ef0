package listing

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/limpopo-connect-web/internal/metrics"
	"github.com/iliyamo/limpopo-connect-web/internal/model"
)

// Source fetches the full listing collection.
type Source interface {
	List(ctx context.Context) ([]model.Listing, error)
}

// Loader owns the single in-memory listing collection that the browser and
// the owner dashboard project from.
//
// Every Load takes a generation number when it starts.  A result is applied
// only when its generation is newer than the last applied one, so a slow
// response can never overwrite data fetched after it.  A failed load leaves
// the previous collection in place.
type Loader struct {
	src Source

	issued   atomic.Uint64
	inFlight atomic.Int64

	mu       sync.RWMutex
	ads      []model.Listing
	applied  uint64
	loadedAt time.Time
}

func NewLoader(src Source) *Loader {
	return &Loader{src: src, ads: []model.Listing{}}
}

// Load fetches the collection and returns the current snapshot.  On error
// the returned snapshot is the last known good collection (possibly empty)
// and the error is returned alongside it.
func (l *Loader) Load(ctx context.Context) ([]model.Listing, error) {
	gen := l.issued.Add(1)
	l.inFlight.Add(1)
	metrics.ListingLoadsInFlight.Inc()
	defer func() {
		l.inFlight.Add(-1)
		metrics.ListingLoadsInFlight.Dec()
	}()

	ads, err := l.src.List(ctx)
	if err != nil {
		log.WithError(err).WithField("generation", gen).Error("listing: load failed, keeping previous collection")
		return l.Snapshot(), err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen > l.applied {
		l.ads = ads
		l.applied = gen
		l.loadedAt = time.Now()
	} else {
		metrics.StaleListingResponses.Inc()
		log.WithFields(log.Fields{"generation": gen, "applied": l.applied}).Debug("listing: dropped stale response")
	}
	return slices.Clone(l.ads), nil
}

// Snapshot returns a copy of the current collection.
func (l *Loader) Snapshot() []model.Listing {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.ads)
}

// Loading reports whether any fetch is in flight.
func (l *Loader) Loading() bool { return l.inFlight.Load() > 0 }

// LoadedAt returns when the applied collection was fetched, zero before the
// first successful load.
func (l *Loader) LoadedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loadedAt
}
