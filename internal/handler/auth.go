package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/limpopo-connect-web/internal/middleware"
	"github.com/iliyamo/limpopo-connect-web/internal/model"
	"github.com/iliyamo/limpopo-connect-web/internal/render"
	"github.com/iliyamo/limpopo-connect-web/internal/session"
	"github.com/iliyamo/limpopo-connect-web/internal/view"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	Sessions *session.Manager
	Ref      References
	Flashes  *session.Flashes
}

// LoginData is the view model of the login page.  The password is never
// echoed back.
type LoginData struct {
	Email string
	Next  string // view to return to after login, empty for the default
}

// RegisterData is the view model of the registration page.
type RegisterData struct {
	Form model.RegisterForm
	Ref  model.Reference
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	data := LoginData{Next: loginNext(c.QueryParam("next"))}
	return c.Render(http.StatusOK, render.PageLogin, newPage(c, h.Flashes, view.Login, "Login", data))
}

// Login verifies the credentials against the backend.  On success the user
// is persisted in the session cookie and sent home (or back to the screen
// that asked for a login); on failure the backend detail is shown and the
// session is untouched.
func (h *AuthHandler) Login(c echo.Context) error {
	var f model.LoginForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	next := loginNext(c.FormValue("next"))
	ctx, cancel := backendContext(c)
	defer cancel()

	u, err := h.Sessions.Login(ctx, c.Response(), middleware.SessionFrom(c), f)
	if err != nil {
		p := newPage(c, h.Flashes, view.Login, "Login", LoginData{Email: f.Email, Next: next})
		return c.Render(http.StatusOK, render.PageLogin, withError(p, loginFailure(err)))
	}
	notify(c, h.Flashes, session.NoticeSuccess, "Welcome back, "+u.Name+"!")
	return redirectTo(c, afterLogin(next))
}

// loginNext reads the screen to return to after login.  Only known views
// that need a session are kept.
func loginNext(raw string) string {
	v, err := view.Parse(raw)
	if err != nil || !v.RequiresSession() {
		return ""
	}
	return string(v)
}

// afterLogin picks the screen a successful login lands on.
func afterLogin(next string) view.View {
	if next == "" {
		return view.After(view.LoggedIn)
	}
	v, err := view.Transition(view.Login, view.View(next), true)
	if err != nil {
		return view.After(view.LoggedIn)
	}
	return v
}

func loginFailure(err error) string {
	if errors.Is(err, session.ErrIncompleteAccount) {
		return "Your account is missing its name or email, so you cannot be signed in. Please contact support."
	}
	return describe(err, "login")
}

func registerFailure(err error) string {
	switch {
	case errors.Is(err, session.ErrMissingFields):
		return "Please fill in your name, email and location."
	case errors.Is(err, session.ErrInvalidAge):
		return "Please enter a valid age."
	}
	return describe(err, "register")
}

func (h *AuthHandler) RegisterPage(c echo.Context) error {
	ctx, cancel := backendContext(c)
	defer cancel()
	data := RegisterData{Ref: h.Ref.Load(ctx)}
	return c.Render(http.StatusOK, render.PageRegister, newPage(c, h.Flashes, view.Register, "Register", data))
}

// Register creates an account and sends the visitor to the login page.  It
// never signs them in.  Failures re-render the form with the submitted
// values, minus the password.
func (h *AuthHandler) Register(c echo.Context) error {
	var f model.RegisterForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	ctx, cancel := backendContext(c)
	defer cancel()

	_, err := h.Sessions.Register(ctx, f)
	if err == nil {
		notify(c, h.Flashes, session.NoticeSuccess, "Registration successful! Please login.")
		return redirectTo(c, view.After(view.Registered))
	}

	msg := registerFailure(err)
	f.Password = ""
	data := RegisterData{Form: f, Ref: h.Ref.Known()}
	p := newPage(c, h.Flashes, view.Register, "Register", data)
	return c.Render(http.StatusOK, render.PageRegister, withError(p, msg))
}

// Logout clears the session.  It is safe to call when signed out.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Sessions.Logout(c.Request().Context(), c.Response(), middleware.SessionFrom(c))
	notify(c, h.Flashes, session.NoticeInfo, "You have been logged out.")
	return redirectTo(c, view.After(view.LoggedOut))
}
