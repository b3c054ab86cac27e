// Package guard implements the navigation gate for admin-only routes.
// Clients feed it session snapshots as identity resolution progresses; it
// decides once per attempt whether to proceed or redirect, and fires the
// matching side effects exactly once.
package guard

import (
	"solis-backend-go/internal/services"
)

type State int

const (
	// Checking is the initial state while the session is still loading. No
	// navigation may fire from here.
	Checking State = iota
	RedirectLogin
	RedirectHome
	Proceed
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	case Proceed:
		return "proceed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends the navigation attempt.
func (s State) Terminal() bool {
	return s != Checking
}

// Snapshot is one observation of the caller's identity. Loading means the
// identity provider has not finished resolving yet.
type Snapshot struct {
	Loading bool
	Session services.Session
}

// Navigator receives the single navigation action of a terminal transition.
type Navigator interface {
	NavigateLogin(returnPath string)
	NavigateHome()
	NavigateTarget(path string)
}

// Notifier receives at most one user-facing notification per attempt.
type Notifier interface {
	Notify(message string)
}

// RouteGuard is one navigation attempt to a protected route. Evaluate it
// with fresh snapshots until it reaches a terminal state; afterwards
// further evaluations are no-ops until Reset.
type RouteGuard struct {
	Path         string
	RequiredRole string
	Nav          Navigator
	Notif        Notifier

	state    State
	notified bool
}

func NewRouteGuard(path, requiredRole string, nav Navigator, notif Notifier) *RouteGuard {
	if requiredRole == "" {
		requiredRole = services.RoleFree
	}
	return &RouteGuard{Path: path, RequiredRole: requiredRole, Nav: nav, Notif: notif, state: Checking}
}

func (g *RouteGuard) State() State {
	return g.state
}

// Evaluate advances the machine with one snapshot. While the snapshot is
// still loading the guard stays in Checking and fires nothing; once loaded
// it reaches exactly one terminal state.
func (g *RouteGuard) Evaluate(snap Snapshot) State {
	if g.state.Terminal() {
		return g.state
	}
	if snap.Loading {
		return Checking
	}
	switch {
	case !services.IsAuthenticated(snap.Session):
		g.state = RedirectLogin
		g.notify("Authentication required")
		g.Nav.NavigateLogin(g.Path)
	case !services.HasMinimumRole(snap.Session, g.RequiredRole):
		g.state = RedirectHome
		g.notify("Access denied")
		g.Nav.NavigateHome()
	default:
		g.state = Proceed
		g.Nav.NavigateTarget(g.Path)
	}
	return g.state
}

// Reset starts a fresh attempt, e.g. on remount of the protected view.
func (g *RouteGuard) Reset() {
	g.state = Checking
	g.notified = false
}

func (g *RouteGuard) notify(message string) {
	if g.notified || g.Notif == nil {
		return
	}
	g.notified = true
	g.Notif.Notify(message)
}
