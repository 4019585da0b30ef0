package listing

import "github.com/iliyamo/limpopo-connect-web/internal/model"

// OwnedBy is the owner scope: the subset of ads whose user_id equals
// userID, in input order.  An empty userID owns nothing.
func OwnedBy(ads []model.Listing, userID string) []model.Listing {
	out := make([]model.Listing, 0)
	if userID == "" {
		return out
	}
	for _, ad := range ads {
		if ad.UserID == userID {
			out = append(out, ad)
		}
	}
	return out
}

// Find returns the ad with the given id from a snapshot.
func Find(ads []model.Listing, id string) (model.Listing, bool) {
	for _, ad := range ads {
		if ad.ID == id {
			return ad, true
		}
	}
	return model.Listing{}, false
}

// CategoryCount is one entry of the "browse by category" section.
type CategoryCount struct {
	Category string
	Count    int
}

// CountByCategory counts ads per category, following the order of the
// reference category list.  Categories without ads report zero.
func CountByCategory(ads []model.Listing, categories []string) []CategoryCount {
	counts := make(map[string]int, len(categories))
	for _, ad := range ads {
		counts[ad.Category]++
	}
	out := make([]CategoryCount, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}

// TotalViews sums the view counters of ads.
func TotalViews(ads []model.Listing) int {
	total := 0
	for _, ad := range ads {
		total += ad.Views
	}
	return total
}
