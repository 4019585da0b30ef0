// Package view is the top-level screen selector.  Screens form an explicit
// enumeration with a transition table; owner-scoped screens resolve to the
// login screen when no session is active instead of rendering nothing.
package view

import (
	"errors"
	"fmt"
)

// View identifies one screen.
type View string

const (
	Home      View = "home"
	Login     View = "login"
	Register  View = "register"
	PostAd    View = "post-ad"
	Dashboard View = "dashboard"
)

// Initial is the screen shown on first load.
const Initial = Home

// ErrUnknownView is returned for names outside the enumeration.
var ErrUnknownView = errors.New("unknown view")

type rule struct {
	path            string
	requiresSession bool
}

var rules = map[View]rule{
	Home:      {path: "/"},
	Login:     {path: "/login"},
	Register:  {path: "/register"},
	PostAd:    {path: "/ads/new", requiresSession: true},
	Dashboard: {path: "/dashboard", requiresSession: true},
}

// Parse validates a view name.
func Parse(name string) (View, error) {
	v := View(name)
	if _, ok := rules[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	return v, nil
}

// Path returns the frontend route that renders v.
func (v View) Path() string {
	if r, ok := rules[v]; ok {
		return r.path
	}
	return rules[Initial].path
}

// RequiresSession reports whether v is only reachable when signed in.
func (v View) RequiresSession() bool { return rules[v].requiresSession }

// Resolve returns the screen that navigating to target actually shows.
// Session-only screens resolve to Login for anonymous visitors; unknown
// targets resolve to Initial.
func Resolve(target View, signedIn bool) View {
	r, ok := rules[target]
	if !ok {
		return Initial
	}
	if r.requiresSession && !signedIn {
		return Login
	}
	return target
}

// Transition validates a navigation from one screen to another and returns
// the screen to show.  Every known screen may navigate to every other
// known screen; the session rule of Resolve applies to the target.
func Transition(from, to View, signedIn bool) (View, error) {
	if _, ok := rules[from]; !ok {
		return Initial, fmt.Errorf("%w: %q", ErrUnknownView, from)
	}
	if _, ok := rules[to]; !ok {
		return from, fmt.Errorf("%w: %q", ErrUnknownView, to)
	}
	return Resolve(to, signedIn), nil
}

// Action names a completed user action with a defined follow-up screen.
type Action string

const (
	Registered Action = "registered"
	LoggedIn   Action = "logged-in"
	AdPosted   Action = "ad-posted"
	LoggedOut  Action = "logged-out"
	AdUpdated  Action = "ad-updated"
	AdDeleted  Action = "ad-deleted"
)

var after = map[Action]View{
	Registered: Login,
	LoggedIn:   Home,
	AdPosted:   Home,
	LoggedOut:  Home,
	AdUpdated:  Dashboard,
	AdDeleted:  Dashboard,
}

// After returns the screen shown once action has succeeded.
func After(a Action) View {
	if v, ok := after[a]; ok {
		return v
	}
	return Initial
}
