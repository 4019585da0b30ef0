package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/limpopo-connect-web/internal/model"
)

func TestOwnedBy_ExactlyTheUsersAds(t *testing.T) {
	ads := fakeListings(t, 11, 60)
	mine := OwnedBy(ads, "u2")

	want := 0
	for _, ad := range ads {
		if ad.UserID == "u2" {
			want++
		}
	}
	assert.Len(t, mine, want)
	for _, ad := range mine {
		assert.Equal(t, "u2", ad.UserID)
	}
}

func TestOwnedBy_EmptyUserOwnsNothing(t *testing.T) {
	ads := []model.Listing{{ID: "1", UserID: ""}}
	got := OwnedBy(ads, "")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFind(t *testing.T) {
	ads := []model.Listing{{ID: "1"}, {ID: "2", Title: "two"}}
	ad, ok := Find(ads, "2")
	require.True(t, ok)
	assert.Equal(t, "two", ad.Title)

	_, ok = Find(ads, "3")
	assert.False(t, ok)
}

func TestCountByCategory_FollowsReferenceOrder(t *testing.T) {
	ads := []model.Listing{
		{Category: "Jobs"}, {Category: "Dating"}, {Category: "Jobs"}, {Category: "Unlisted"},
	}
	got := CountByCategory(ads, []string{"Dating", "Jobs", "Services"})
	assert.Equal(t, []CategoryCount{
		{Category: "Dating", Count: 1},
		{Category: "Jobs", Count: 2},
		{Category: "Services", Count: 0},
	}, got)
}

func TestTotalViews(t *testing.T) {
	assert.Equal(t, 0, TotalViews(nil))
	assert.Equal(t, 12, TotalViews([]model.Listing{{Views: 5}, {Views: 7}}))
}
