package session

import (
	"context"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/limpopo-connect-web/internal/backend"
	"github.com/iliyamo/limpopo-connect-web/internal/model"
	"github.com/iliyamo/limpopo-connect-web/internal/queue"
	"github.com/iliyamo/limpopo-connect-web/internal/repository"
)

var (
	// ErrInvalidAge is returned by Register when age is present but not a
	// whole number.  No backend call is made in that case.
	ErrInvalidAge = errors.New("age must be a whole number")
	// ErrMissingFields is returned by Register when name, email or location
	// is blank after trimming.  No backend call is made in that case.
	ErrMissingFields = errors.New("name, email and location are required")
	// ErrIncompleteAccount is returned by Login when the backend accepts the
	// credentials but the account lacks a name or email.
	ErrIncompleteAccount = errors.New("account is missing its name or email")
)

// Accounts is the backend surface the manager needs.
type Accounts interface {
	Register(ctx context.Context, reg repository.Registration) (repository.RegisterResult, error)
	Login(ctx context.Context, email, password string) (model.User, error)
}

// Manager implements registration, login and logout on top of the account
// endpoints and the cookie store.
type Manager struct {
	Accounts Accounts
	Store    *Store
	Events   queue.Publisher
}

func NewManager(accounts Accounts, store *Store, events queue.Publisher) *Manager {
	if events == nil {
		events = queue.Noop{}
	}
	return &Manager{Accounts: accounts, Store: store, Events: events}
}

// Register creates an account.  It never signs the visitor in.
func (m *Manager) Register(ctx context.Context, f model.RegisterForm) (repository.RegisterResult, error) {
	name, email, location := strings.TrimSpace(f.Name), strings.TrimSpace(f.Email), strings.TrimSpace(f.Location)
	if name == "" || email == "" || location == "" {
		return repository.RegisterResult{}, ErrMissingFields
	}
	age, err := model.ParseOptionalInt(f.Age)
	if err != nil {
		return repository.RegisterResult{}, ErrInvalidAge
	}
	res, err := m.Accounts.Register(ctx, repository.Registration{
		Name:     name,
		Email:    email,
		Password: f.Password,
		Age:      age,
		Location: location,
	})
	if err != nil {
		return repository.RegisterResult{}, err
	}

	ev := queue.NewEvent(queue.UserRegistered)
	ev.UserID, ev.UserEmail, ev.RequestID = res.UserID, email, backend.RequestIDFrom(ctx)
	queue.Emit(m.Events, ev)
	return res, nil
}

// Login verifies the credentials, persists the resulting user and adopts it
// into sc.  On any error sc and the cookie are left untouched.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, sc *Context, f model.LoginForm) (model.User, error) {
	u, err := m.Accounts.Login(ctx, f.Email, f.Password)
	if err != nil {
		return model.User{}, err
	}
	if !u.Valid() {
		log.WithField("user_id", u.ID).Warn("session: backend returned an incomplete user")
		return model.User{}, ErrIncompleteAccount
	}
	if err := m.Store.Save(w, u); err != nil {
		return model.User{}, err
	}
	sc.adopt(u)
	log.WithField("user_id", u.ID).Info("session: signed in")

	ev := queue.NewEvent(queue.UserLoggedIn)
	ev.UserID, ev.UserEmail, ev.RequestID = u.ID, u.Email, backend.RequestIDFrom(ctx)
	queue.Emit(m.Events, ev)
	return u, nil
}

// Logout clears sc and the persisted cookie.  Calling it without a session
// is a no-op apart from re-expiring the cookie.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, sc *Context) {
	id := sc.UserID()
	m.Store.Clear(w)
	sc.clear()
	if id == "" {
		return
	}
	ev := queue.NewEvent(queue.UserLoggedOut)
	ev.UserID, ev.RequestID = id, backend.RequestIDFrom(ctx)
	queue.Emit(m.Events, ev)
}
