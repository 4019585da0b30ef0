// Package listing holds the client-side listing logic: the filter engine,
// the owner-scoped projection and the loader that keeps the last known good
// listing collection.  Everything except the loader is a pure function over
// a snapshot.
package listing

import (
	"strings"

	"github.com/iliyamo/limpopo-connect-web/internal/model"
)

// Filter is the browser's filter tuple.  Category and Location use the
// model.All sentinel to disable filtering.
type Filter struct {
	Search   string
	Category string
	Location string
}

// NewFilter builds a filter from raw inputs, mapping empty selections to
// model.All.
func NewFilter(search, category, location string) Filter {
	f := Filter{Search: search, Category: category, Location: location}
	if f.Category == "" {
		f.Category = model.All
	}
	if f.Location == "" {
		f.Location = model.All
	}
	return f
}

// Active reports whether any predicate restricts the result.
func (f Filter) Active() bool {
	return f.Search != "" || !isAll(f.Category) || !isAll(f.Location)
}

// Matches applies the three predicates as a conjunction.
func (f Filter) Matches(l model.Listing) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(l.Title), needle) &&
			!strings.Contains(strings.ToLower(l.Description), needle) {
			return false
		}
	}
	if !isAll(f.Category) && l.Category != f.Category {
		return false
	}
	if !isAll(f.Location) && l.Location != f.Location {
		return false
	}
	return true
}

// Apply returns the listings matching f, in input order.  The result is a
// fresh slice; ads is never modified.
func Apply(ads []model.Listing, f Filter) []model.Listing {
	out := make([]model.Listing, 0, len(ads))
	for _, ad := range ads {
		if f.Matches(ad) {
			out = append(out, ad)
		}
	}
	return out
}

func isAll(v string) bool { return v == "" || v == model.All }
