package render

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/limpopo-connect-web/internal/model"
	"github.com/iliyamo/limpopo-connect-web/internal/session"
	"github.com/iliyamo/limpopo-connect-web/internal/view"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "Just now"},
		{59 * time.Minute, "Just now"},
		{time.Hour, "1h ago"},
		{23*time.Hour + 59*time.Minute, "23h ago"},
		{24 * time.Hour, "1d ago"},
		{10 * 24 * time.Hour, "10d ago"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TimeAgo(now.Add(-tc.ago), now), tc.ago.String())
	}
	assert.Equal(t, "", TimeAgo(time.Time{}, now))
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/27821234567", WhatsAppLink("+27 82 123-4567"))
	assert.Equal(t, "", WhatsAppLink("call me"))
}

func TestTelLink(t *testing.T) {
	assert.Equal(t, template.URL("tel:+27821234567"), TelLink(" +27 82 123 4567"))
	assert.Equal(t, template.URL("tel:0821234567"), TelLink("082-123-4567"))
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	r, err := newRenderer(func(p string) string { return "http://backend" + p }, func() time.Time { return now })
	require.NoError(t, err)
	return r
}

func TestRenderer_AdPage(t *testing.T) {
	r := newTestRenderer(t)
	phone, wa, img, age := "082 123 4567", "+27 82 123 4567", "/uploads/x.jpg", 30
	ad := model.Listing{
		ID: "ad-1", UserID: "u1", UserName: "Lerato", Title: "Looking for a <partner>",
		Description: "Hi", Category: "Dating", Location: "Polokwane", Age: &age,
		Phone: &phone, WhatsApp: &wa, ImageURL: &img, Views: 4,
		CreatedAt: model.Timestamp{Time: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
	}
	page := Page{
		Title:   ad.Title,
		View:    view.Home,
		User:    &model.User{ID: "u1", Name: "Lerato", Email: "l@x.io"},
		Notices: []session.Notice{{Kind: session.NoticeSuccess, Message: "hello"}},
		Data: struct {
			Ad    model.Listing
			Owner bool
		}{Ad: ad, Owner: true},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageAd, page, nil))
	html := buf.String()

	assert.Contains(t, html, "Looking for a &lt;partner&gt;")
	assert.Contains(t, html, `href="tel:0821234567"`)
	assert.Contains(t, html, `href="https://wa.me/27821234567"`)
	assert.Contains(t, html, `src="http://backend/uploads/x.jpg"`)
	assert.Contains(t, html, "3h ago")
	assert.Contains(t, html, "Age 30")
	assert.Contains(t, html, "/dashboard/ads/ad-1/edit")
	assert.Contains(t, html, "Welcome, Lerato")
	assert.Contains(t, html, "hello")
}

func TestRenderer_UnknownPage(t *testing.T) {
	r := newTestRenderer(t)
	assert.Error(t, r.Render(&bytes.Buffer{}, "missing", Page{}, nil))
}

func TestRenderer_ErrorPageAnonymous(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	data := struct {
		Status  int
		Message string
	}{404, "Ad not found"}
	require.NoError(t, r.Render(&buf, PageError, Page{Data: data}, nil))
	assert.Contains(t, buf.String(), "Ad not found")
	assert.Contains(t, buf.String(), `href="/login"`)
}

type dashboardData struct {
	User       model.User
	Ads        []model.Listing
	TotalViews int
	Stale      bool
	Refreshing bool
	UpdatedAt  time.Time
}

func TestRenderer_DashboardFreshness(t *testing.T) {
	r := newTestRenderer(t)
	u := model.User{ID: "u1", Name: "Sipho", Email: "s@x.io"}
	show := func(d dashboardData) string {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, PageDashboard, Page{View: view.Dashboard, User: &u, Data: d}, nil))
		return buf.String()
	}

	html := show(dashboardData{User: u})
	assert.NotContains(t, html, "Refreshing ads")
	assert.NotContains(t, html, "could not be fetched")

	html = show(dashboardData{User: u, Refreshing: true})
	assert.Contains(t, html, "Refreshing ads")

	html = show(dashboardData{User: u, Stale: true, UpdatedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)})
	assert.Contains(t, html, "Showing previously loaded ads (last updated: 3h ago); the latest ads could not be fetched.")

	html = show(dashboardData{User: u, Stale: true})
	assert.Contains(t, html, "Showing previously loaded ads; the latest ads could not be fetched.")
}
