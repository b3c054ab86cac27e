package guard

import (
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solis-backend-go/internal/services"
)

type spyNavigator struct {
	loginCalls  []string
	homeCalls   int
	targetCalls []string
}

func (s *spyNavigator) NavigateLogin(returnPath string) { s.loginCalls = append(s.loginCalls, returnPath) }
func (s *spyNavigator) NavigateHome()                   { s.homeCalls++ }
func (s *spyNavigator) NavigateTarget(path string)      { s.targetCalls = append(s.targetCalls, path) }

func (s *spyNavigator) total() int {
	return len(s.loginCalls) + s.homeCalls + len(s.targetCalls)
}

type spyNotifier struct {
	messages []string
}

func (s *spyNotifier) Notify(message string) { s.messages = append(s.messages, message) }

func session(role string) services.Session {
	return services.Session{
		Authenticated: true,
		UserID:        "user-1",
		Role:          role,
		ExpiresAt:     time.Now().Add(time.Hour),
	}
}

func TestGuardStaysCheckingWhileLoading(t *testing.T) {
	nav := &spyNavigator{}
	notif := &spyNotifier{}
	g := NewRouteGuard("/manage", services.RoleAdministrator, nav, notif)

	for i := 0; i < 3; i++ {
		state := g.Evaluate(Snapshot{Loading: true})
		assert.Equal(t, Checking, state)
	}
	assert.Zero(t, nav.total(), "no navigation before identity resolves")
	assert.Empty(t, notif.messages)
	assert.False(t, g.State().Terminal())
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	nav := &spyNavigator{}
	notif := &spyNotifier{}
	g := NewRouteGuard("/manage", services.RoleAdministrator, nav, notif)

	g.Evaluate(Snapshot{Loading: true})
	state := g.Evaluate(Snapshot{})

	assert.Equal(t, RedirectLogin, state)
	require.Len(t, nav.loginCalls, 1)
	assert.Equal(t, "/manage", nav.loginCalls[0], "login redirect carries the return path")
	assert.Equal(t, 1, nav.total())
	assert.Equal(t, []string{"Authentication required"}, notif.messages)
}

func TestGuardRedirectsUnderprivilegedHome(t *testing.T) {
	nav := &spyNavigator{}
	notif := &spyNotifier{}
	g := NewRouteGuard("/manage", services.RoleAdministrator, nav, notif)

	state := g.Evaluate(Snapshot{Session: session(services.RolePremium)})

	assert.Equal(t, RedirectHome, state)
	assert.Equal(t, 1, nav.homeCalls)
	assert.Equal(t, 1, nav.total())
	assert.Equal(t, []string{"Access denied"}, notif.messages)
}

func TestGuardProceedsForAdmin(t *testing.T) {
	nav := &spyNavigator{}
	notif := &spyNotifier{}
	g := NewRouteGuard("/manage", services.RoleAdministrator, nav, notif)

	state := g.Evaluate(Snapshot{Session: session(services.RoleAdministrator)})

	assert.Equal(t, Proceed, state)
	assert.Equal(t, []string{"/manage"}, nav.targetCalls)
	assert.Empty(t, notif.messages, "successful navigation is silent")
}

func TestGuardTerminalStateIsSticky(t *testing.T) {
	nav := &spyNavigator{}
	notif := &spyNotifier{}
	g := NewRouteGuard("/manage", services.RoleAdministrator, nav, notif)

	first := g.Evaluate(Snapshot{})
	assert.Equal(t, RedirectLogin, first)

	// Later snapshots, even privileged ones, must not retrigger effects.
	again := g.Evaluate(Snapshot{Session: session(services.RoleAdministrator)})
	assert.Equal(t, RedirectLogin, again)
	assert.Equal(t, 1, nav.total())
	assert.Len(t, notif.messages, 1)
}

func TestGuardExpiredSessionRedirectsToLogin(t *testing.T) {
	nav := &spyNavigator{}
	notif := &spyNotifier{}
	g := NewRouteGuard("/manage", services.RoleAdministrator, nav, notif)

	expired := session(services.RoleAdministrator)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	state := g.Evaluate(Snapshot{Session: expired})

	assert.Equal(t, RedirectLogin, state)
}

func TestGuardResetStartsFreshAttempt(t *testing.T) {
	nav := &spyNavigator{}
	notif := &spyNotifier{}
	g := NewRouteGuard("/manage", services.RoleAdministrator, nav, notif)

	g.Evaluate(Snapshot{})
	g.Reset()
	assert.Equal(t, Checking, g.State())

	state := g.Evaluate(Snapshot{Session: session(services.RoleAdministrator)})
	assert.Equal(t, Proceed, state)
	assert.Equal(t, []string{"/manage"}, nav.targetCalls)
}

func TestGuardDefaultsToFreeRole(t *testing.T) {
	nav := &spyNavigator{}
	g := NewRouteGuard("/library", "", nav, nil)

	state := g.Evaluate(Snapshot{Session: session(services.RoleFree)})
	assert.Equal(t, Proceed, state)
}

func TestGuardNilNotifierIsSafe(t *testing.T) {
	nav := &spyNavigator{}
	g := NewRouteGuard("/manage", services.RoleAdministrator, nav, nil)

	state := g.Evaluate(Snapshot{})
	assert.Equal(t, RedirectLogin, state)
	assert.Len(t, nav.loginCalls, 1)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "checking", Checking.String())
	assert.Equal(t, "redirect-login", RedirectLogin.String())
	assert.Equal(t, "redirect-home", RedirectHome.String())
	assert.Equal(t, "proceed", Proceed.String())
}
