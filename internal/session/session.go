// Package session owns the authenticated identity for the process lifetime.
// The identity is an explicit, immutable-until-replaced value published to
// dependents through subscription, never an ambient global.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/api"
)

// Mode selects between authenticating an existing account and registering
// a new one.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignUp Mode = "signup"
)

// Identity is the authenticated user for this session.
type Identity struct {
	ID    string
	Email string
	Role  api.Role
}

// Credentials carries the auth form fields. CompanyName only applies to
// recruiter signup, TelegramUsername to candidate signup.
type Credentials struct {
	Email            string
	Password         string
	CompanyName      string
	TelegramUsername string
}

// AuthClient is the slice of the API client the authority needs.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (api.AuthResult, error)
	SignUp(ctx context.Context, role api.Role, req api.SignUpRequest) (api.AuthResult, error)
}

// Listener observes identity changes. A nil identity means logout.
type Listener func(*Identity)

// Authority holds the current identity and notifies dependents when it
// changes. Notification is synchronous: Establish returns only after every
// listener has observed the new identity, so initial data loads can never
// race ahead of identity availability.
type Authority struct {
	mu        sync.RWMutex
	current   *Identity
	listeners []Listener
}

// NewAuthority creates an empty authority with no identity.
func NewAuthority() *Authority {
	return &Authority{}
}

// Subscribe registers a listener for identity changes.
func (a *Authority) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	a.listeners = append(a.listeners, fn)
	a.mu.Unlock()
}

// Current returns a copy of the active identity, if any.
func (a *Authority) Current() (Identity, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return Identity{}, false
	}
	return *a.current, true
}

// Authenticate resolves credentials into an Identity and establishes it.
// Expected auth rejections come back as typed *api.Error values, never
// panics; callers branch on api.KindOf.
//
// Role resolution: on signup the caller-selected role always wins. On login
// the role is derived from which identity field the response carried
// (recruiter_id vs candidate_id); when the response is ambiguous the
// caller-selected role is the fallback.
func (a *Authority) Authenticate(ctx context.Context, client AuthClient, mode Mode, role api.Role, creds Credentials) (Identity, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return Identity{}, &api.Error{Kind: api.KindValidation, Message: "email and password are required"}
	}

	var result api.AuthResult
	var err error
	switch mode {
	case ModeLogin:
		result, err = client.Login(ctx, email, creds.Password)
	case ModeSignUp:
		result, err = client.SignUp(ctx, role, api.SignUpRequest{
			Email:            email,
			Password:         creds.Password,
			CompanyName:      creds.CompanyName,
			TelegramUsername: creds.TelegramUsername,
		})
	default:
		return Identity{}, fmt.Errorf("session: unknown mode %q", mode)
	}
	if err != nil {
		return Identity{}, err
	}

	resolved := role
	if result.RoleExplicit {
		resolved = result.Role
	}
	identity := Identity{ID: result.ID, Email: result.Email, Role: resolved}
	a.Establish(identity)
	return identity, nil
}

// Establish publishes the identity to all dependents before returning.
func (a *Authority) Establish(identity Identity) {
	a.mu.Lock()
	a.current = &identity
	listeners := append([]Listener(nil), a.listeners...)
	a.mu.Unlock()
	for _, fn := range listeners {
		fn(&identity)
	}
}

// Clear destroys the session identity. Dependents observe nil and must
// route back to authentication.
func (a *Authority) Clear() {
	a.mu.Lock()
	a.current = nil
	listeners := append([]Listener(nil), a.listeners...)
	a.mu.Unlock()
	for _, fn := range listeners {
		fn(nil)
	}
}
