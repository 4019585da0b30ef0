package session

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
	log "github.com/sirupsen/logrus"
)

// FlashCookieName holds pending notifications between a form post and the
// page it redirects to.
const FlashCookieName = "limpopo_flash"

// Notice kinds.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

// Notice is a one-shot user-visible notification.
type Notice struct {
	Kind    string
	Message string
}

func init() {
	gob.Register(Notice{})
}

// Flashes stores notices in an encrypted cookie.
type Flashes struct {
	store *sessions.CookieStore
}

func NewFlashes(keys Keys, secure bool) *Flashes {
	st := sessions.NewCookieStore(keys.FlashHash, keys.FlashBlock)
	st.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Flashes{store: st}
}

// Add queues a notice for the next rendered page.
func (f *Flashes) Add(w http.ResponseWriter, r *http.Request, kind, message string) error {
	s, err := f.store.Get(r, FlashCookieName)
	if err != nil {
		// an undecodable cookie is replaced by a fresh one
		log.WithError(err).Debug("flash: discarding unreadable cookie")
	}
	s.AddFlash(Notice{Kind: kind, Message: message})
	return s.Save(r, w)
}

// Pop returns and clears all queued notices.
func (f *Flashes) Pop(w http.ResponseWriter, r *http.Request) []Notice {
	s, err := f.store.Get(r, FlashCookieName)
	if err != nil {
		return nil
	}
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(r, w); err != nil {
		log.WithError(err).Warn("flash: clearing notices failed")
	}
	out := make([]Notice, 0, len(raw))
	for _, v := range raw {
		if n, ok := v.(Notice); ok {
			out = append(out, n)
		}
	}
	return out
}
