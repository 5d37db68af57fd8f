// Package gate implements the public view's disclosure gate: a PIN check
// that reveals the credential-like fields of one asset record for the
// current session only.
package gate

import (
	"sync"

	"pm-dashboard-backend/internal/model"
)

// MaskedValue is the fixed-length placeholder rendered for sensitive fields
// while a session is locked.
const MaskedValue = "********"

type sessionState struct {
	unlocked bool
	badPIN   bool
}

// Gate tracks the locked/unlocked state per session. State is held in
// memory only: every session starts locked and a process restart relocks
// everything. There is no retry limit and no timeout.
//
// The PIN is one shared value for the whole installation. The gate keeps
// credentials out of casual view on a scanned asset tag; it is not an
// authentication boundary.
type Gate struct {
	pin string

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// New creates a gate accepting the given PIN.
func New(pin string) *Gate {
	return &Gate{pin: pin, sessions: make(map[string]*sessionState)}
}

// Submit checks a PIN attempt for the session and reports whether the
// session is now unlocked. A wrong attempt sets the session's error flag; a
// correct one clears it. An already unlocked session stays unlocked.
func (g *Gate) Submit(sessionID, pin string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.session(sessionID)
	if pin == g.pin {
		st.unlocked = true
		st.badPIN = false
	} else if !st.unlocked {
		st.badPIN = true
	}
	return st.unlocked
}

// Unlocked reports whether the session has passed the PIN check.
func (g *Gate) Unlocked(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session(sessionID).unlocked
}

// HasError reports whether the session's most recent attempt failed.
func (g *Gate) HasError(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session(sessionID).badPIN
}

// ClearError resets the session's error flag. Called when the user starts
// typing a new attempt.
func (g *Gate) ClearError(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session(sessionID).badPIN = false
}

// session must be called with g.mu held.
func (g *Gate) session(id string) *sessionState {
	st, ok := g.sessions[id]
	if !ok {
		st = &sessionState{}
		g.sessions[id] = st
	}
	return st
}

// Mask returns a copy of the record with the sensitive field set replaced by
// the fixed mask. The stored record is never modified; masking is a display
// concern only.
func Mask(rec model.AssetRecord) model.AssetRecord {
	masked := rec
	masked.LoginUsername = MaskedValue
	masked.LoginPassword = MaskedValue
	masked.ServerPassword = MaskedValue
	masked.AntivirusName = MaskedValue
	return masked
}
