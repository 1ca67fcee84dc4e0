package models

import (
	"context"
	"sync"
)

type sessionScopeKey struct{}

// SessionScope holds the session established while serving one request.
// It replaces a process-wide "current session": each request gets its own scope,
// so concurrent callers never observe each other's session.
type SessionScope struct {
	mu      sync.RWMutex
	session *Session
}

// WithSessionScope returns a child context carrying a fresh, empty scope
func WithSessionScope(ctx context.Context) (context.Context, *SessionScope) {
	scope := &SessionScope{}
	return context.WithValue(ctx, sessionScopeKey{}, scope), scope
}

// SessionScopeFromContext returns the scope attached to ctx, or nil
func SessionScopeFromContext(ctx context.Context) *SessionScope {
	scope, _ := ctx.Value(sessionScopeKey{}).(*SessionScope)
	return scope
}

// Session returns the current session or nil. Safe on a nil scope.
func (s *SessionScope) Session() *Session {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Set replaces the current session. No-op on a nil scope.
func (s *SessionScope) Set(session *Session) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

// Clear drops the current session
func (s *SessionScope) Clear() {
	s.Set(nil)
}
