package app

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/limpopo-connect-web/internal/model"
)

type fakeUser struct {
	id, name, email, password string
}

// fakeBackend is an in-memory stand-in for the classifieds REST API.
type fakeBackend struct {
	mu        sync.Mutex
	users     []fakeUser
	ads       []model.Listing
	requests  []string
	deleteErr string // when set, DELETE answers 405 with this detail
	listDown  bool   // when set, GET /api/ads answers 503
}

func (b *fakeBackend) calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *fakeBackend) count(prefix string) int {
	n := 0
	for _, r := range b.calls() {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)

	switch {
	case r.URL.Path == "/api/health":
		writeJSON(w, 200, map[string]any{"status": "healthy"})
	case r.URL.Path == "/api/categories":
		writeJSON(w, 200, map[string][]string{"categories": {"Dating", "Jobs", "For Sale"}})
	case r.URL.Path == "/api/locations":
		writeJSON(w, 200, map[string][]string{"locations": {"Polokwane", "Tzaneen"}})
	case r.URL.Path == "/api/register" && r.Method == http.MethodPost:
		var body struct {
			Name, Email, Password, Location string
			Age                             *int
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for _, u := range b.users {
			if u.email == body.Email {
				detail(w, 400, "Email already registered")
				return
			}
		}
		id := "u" + strconv.Itoa(len(b.users)+1)
		b.users = append(b.users, fakeUser{id: id, name: body.Name, email: body.Email, password: body.Password})
		writeJSON(w, 200, map[string]any{"message": "User registered successfully", "user_id": id, "verified": false})
	case r.URL.Path == "/api/login" && r.Method == http.MethodPost:
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		for _, u := range b.users {
			if u.email == body.Email && u.password == body.Password {
				writeJSON(w, 200, map[string]string{"message": "Login successful", "user_id": u.id, "name": u.name, "email": u.email})
				return
			}
		}
		detail(w, 401, "Invalid credentials")
	case r.URL.Path == "/api/ads" && r.Method == http.MethodGet && b.listDown:
		detail(w, 503, "Service Unavailable")
	case r.URL.Path == "/api/ads" && r.Method == http.MethodGet:
		writeJSON(w, 200, map[string]any{"ads": b.ads})
	case r.URL.Path == "/api/ads" && r.Method == http.MethodPost:
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			detail(w, 400, "bad form")
			return
		}
		id := "ad" + strconv.Itoa(len(b.ads)+1)
		b.ads = append([]model.Listing{{
			ID:          id,
			UserID:      r.FormValue("user_id"),
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Category:    r.FormValue("category"),
			Location:    r.FormValue("location"),
			CreatedAt:   model.Timestamp{Time: time.Now().UTC()},
		}}, b.ads...)
		writeJSON(w, 200, map[string]string{"message": "Ad created successfully", "ad_id": id})
	case strings.HasPrefix(r.URL.Path, "/api/ads/"):
		b.serveAd(w, r, strings.TrimPrefix(r.URL.Path, "/api/ads/"))
	default:
		detail(w, 404, "Not Found")
	}
}

func (b *fakeBackend) serveAd(w http.ResponseWriter, r *http.Request, id string) {
	idx := -1
	for i, ad := range b.ads {
		if ad.ID == id {
			idx = i
		}
	}
	if idx < 0 {
		detail(w, 404, "Ad not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		b.ads[idx].Views++
		writeJSON(w, 200, b.ads[idx])
	case http.MethodDelete:
		if b.deleteErr != "" {
			detail(w, 405, b.deleteErr)
			return
		}
		if r.URL.Query().Get("user_id") != b.ads[idx].UserID {
			detail(w, 403, "Not your ad")
			return
		}
		b.ads = append(b.ads[:idx], b.ads[idx+1:]...)
		writeJSON(w, 200, map[string]string{"message": "Ad deleted"})
	case http.MethodPut:
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			detail(w, 400, "bad form")
			return
		}
		if r.FormValue("user_id") != b.ads[idx].UserID {
			detail(w, 403, "Not your ad")
			return
		}
		b.ads[idx].Title = r.FormValue("title")
		writeJSON(w, 200, map[string]string{"message": "Ad updated"})
	default:
		detail(w, 405, "Method Not Allowed")
	}
}

func (b *fakeBackend) setAds(ads ...model.Listing) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ads = ads
}

func (b *fakeBackend) refuseDeletes(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleteErr = msg
}

func (b *fakeBackend) views(id string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ad := range b.ads {
		if ad.ID == id {
			return ad.Views
		}
	}
	return -1
}

// addUser stores an account directly, bypassing registration checks.
func (b *fakeBackend) addUser(id, name, email, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users = append(b.users, fakeUser{id: id, name: name, email: email, password: password})
}

func (b *fakeBackend) setListingDown(down bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listDown = down
}
