package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/limpopo-connect-web/internal/model"
)

// CookieName is the fixed key under which the session is persisted in the
// browser.
const CookieName = "limpopo_session"

var (
	// ErrNoSession is returned when the browser holds no session cookie.
	ErrNoSession = errors.New("no session")
	// ErrInvalidSession is returned for tampered, expired or incomplete
	// session cookies.
	ErrInvalidSession = errors.New("invalid session")
)

// Store persists the session user in a signed cookie.  The cookie is the
// browser-side storage: it is read on every request without contacting the
// backend, written on login and removed on logout.
type Store struct {
	key    []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewStore builds a store signing with key.  ttl bounds how long a
// persisted session is trusted.
func NewStore(key []byte, ttl time.Duration, secure bool) *Store {
	return &Store{key: key, ttl: ttl, secure: secure, now: time.Now}
}

type userClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Encode serializes u into a signed token.
func (s *Store) Encode(u model.User) (string, error) {
	now := s.now().UTC()
	claims := userClaims{
		Name:  u.Name,
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies a token and returns the user it carries.
func (s *Store) Decode(raw string) (model.User, error) {
	var claims userClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return model.User{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	u := model.User{ID: claims.Subject, Name: claims.Name, Email: claims.Email}
	if !u.Valid() {
		return model.User{}, fmt.Errorf("%w: incomplete user", ErrInvalidSession)
	}
	return u, nil
}

// Save writes u to the session cookie.
func (s *Store) Save(w http.ResponseWriter, u model.User) error {
	if !u.Valid() {
		return fmt.Errorf("%w: incomplete user", ErrInvalidSession)
	}
	token, err := s.Encode(u)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Load reads the session cookie from r.
func (s *Store) Load(r *http.Request) (model.User, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return model.User{}, ErrNoSession
	}
	return s.Decode(c.Value)
}

// Clear expires the session cookie.  Clearing an absent cookie is harmless.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
