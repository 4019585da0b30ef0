// Package session models the visitor's authenticated identity: an explicit
// session context created from the persisted cookie on each request, the
// cookie store itself, flash notifications, and the manager implementing
// register, login and logout.
package session

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/limpopo-connect-web/internal/model"
)

// Context is the session of one request.  It is either anonymous or holds a
// fully populated user; there is no partial state.
type Context struct {
	user *model.User
}

// Anonymous returns a context without a user.
func Anonymous() *Context { return &Context{} }

// Restore adopts the persisted session from r without any backend call.
// Invalid cookies are logged and treated as absent.
func Restore(store *Store, r *http.Request) *Context {
	u, err := store.Load(r)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			log.WithError(err).Warn("session: ignoring unreadable session cookie")
		}
		return Anonymous()
	}
	return &Context{user: &u}
}

// Active reports whether a user is signed in.
func (c *Context) Active() bool { return c != nil && c.user != nil }

// User returns the signed-in user.
func (c *Context) User() (model.User, bool) {
	if !c.Active() {
		return model.User{}, false
	}
	return *c.user, true
}

// UserID returns the signed-in user's id, or "" when anonymous.
func (c *Context) UserID() string {
	if !c.Active() {
		return ""
	}
	return c.user.ID
}

func (c *Context) adopt(u model.User) { c.user = &u }

func (c *Context) clear() { c.user = nil }
