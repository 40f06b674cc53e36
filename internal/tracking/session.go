// Package tracking implements the start/stop timer sessions that feed
// timesheet entries, the minimum-billing conversions, and the guided
// timesheet entry state machine.
package tracking

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrSessionActive is returned when starting a timer while one is already
// running for a different project.
var ErrSessionActive = errors.New("a tracking session is already active for another project")

// ErrNoActiveSession is returned when stopping while idle.
var ErrNoActiveSession = errors.New("no active tracking session")

// historyCap bounds the stored session history; the oldest entries are
// evicted past the cap.
const historyCap = 50

// Session is a running timer.
type Session struct {
	ProjectID   string    `json:"projectID"`
	ProjectName string    `json:"projectName"`
	StartedAt   time.Time `json:"startedAt"`
}

// StoppedSession is a finished timer with its billable conversion applied.
type StoppedSession struct {
	Session
	StoppedAt time.Time       `json:"stoppedAt"`
	Minutes   int             `json:"minutes"`
	Hours     decimal.Decimal `json:"hours"`
}

// state is the persisted shape: the active session plus most-recent-first
// history, stored under one key per user.
type state struct {
	ActiveSession *Session         `json:"activeSession"`
	History       []StoppedSession `json:"sessionHistory"`
}

// Manager owns the per-user timer state machine. It has two states per
// user: idle (no active session) and tracking (exactly one). All state is
// persisted through the KV on every transition so it survives restarts.
type Manager struct {
	kv  KV
	now func() time.Time
}

// NewManager creates a Manager over the given persistence backend.
func NewManager(kv KV) *Manager {
	return &Manager{kv: kv, now: time.Now}
}

func stateKey(userID string) string {
	return "tracking-" + userID
}

func (m *Manager) load(userID string) (*state, error) {
	raw, ok, err := m.kv.Get(stateKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return &state{}, nil
	}
	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("corrupt tracking state for user %s: %w", userID, err)
	}
	return &st, nil
}

func (m *Manager) save(userID string, st *state) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode tracking state: %w", err)
	}
	return m.kv.Set(stateKey(userID), raw)
}

// Start begins tracking the given project. Starting while already tracking
// the same project is a no-op that returns the running session; starting a
// different project fails with ErrSessionActive until the running one is
// stopped.
func (m *Manager) Start(userID, projectID, projectName string) (*Session, error) {
	st, err := m.load(userID)
	if err != nil {
		return nil, err
	}
	if st.ActiveSession != nil {
		if st.ActiveSession.ProjectID == projectID {
			return st.ActiveSession, nil
		}
		return nil, ErrSessionActive
	}
	st.ActiveSession = &Session{
		ProjectID:   projectID,
		ProjectName: projectName,
		StartedAt:   m.now(),
	}
	if err := m.save(userID, st); err != nil {
		return nil, err
	}
	return st.ActiveSession, nil
}

// Stop ends the running session, converts the elapsed time to billable
// minutes and hours, and prepends the result to the bounded history.
func (m *Manager) Stop(userID string) (*StoppedSession, error) {
	st, err := m.load(userID)
	if err != nil {
		return nil, err
	}
	if st.ActiveSession == nil {
		return nil, ErrNoActiveSession
	}

	stoppedAt := m.now()
	elapsed := stoppedAt.Sub(st.ActiveSession.StartedAt)
	stopped := StoppedSession{
		Session:   *st.ActiveSession,
		StoppedAt: stoppedAt,
		Minutes:   MinutesFromDuration(elapsed),
		Hours:     HoursFromDuration(elapsed),
	}

	st.ActiveSession = nil
	st.History = append([]StoppedSession{stopped}, st.History...)
	if len(st.History) > historyCap {
		st.History = st.History[:historyCap]
	}
	if err := m.save(userID, st); err != nil {
		return nil, err
	}
	return &stopped, nil
}

// Active returns the running session, or nil while idle.
func (m *Manager) Active(userID string) (*Session, error) {
	st, err := m.load(userID)
	if err != nil {
		return nil, err
	}
	return st.ActiveSession, nil
}

// History returns the stopped sessions, most recent first.
func (m *Manager) History(userID string) ([]StoppedSession, error) {
	st, err := m.load(userID)
	if err != nil {
		return nil, err
	}
	if st.History == nil {
		return []StoppedSession{}, nil
	}
	return st.History, nil
}
