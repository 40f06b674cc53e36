package tracking

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestManager returns a manager over an in-memory store with a clock
// the test can move forward.
func newTestManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()
	now := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	m := NewManager(NewMemStore())
	m.now = func() time.Time { return now }
	return m, &now
}

func TestManagerStartStop(t *testing.T) {
	m, now := newTestManager(t)

	session, err := m.Start("u1", "p1", "Consulting")
	require.NoError(t, err)
	assert.Equal(t, "p1", session.ProjectID)
	assert.Equal(t, "Consulting", session.ProjectName)
	assert.True(t, session.StartedAt.Equal(*now))

	*now = now.Add(90 * time.Minute)

	stopped, err := m.Stop("u1")
	require.NoError(t, err)
	assert.Equal(t, "p1", stopped.ProjectID)
	assert.Equal(t, 90, stopped.Minutes)
	assert.True(t, stopped.Hours.Equal(decimal.RequireFromString("1.5")))

	active, err := m.Active("u1")
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestManagerShortSessionBillsMinimum(t *testing.T) {
	m, now := newTestManager(t)

	_, err := m.Start("u1", "p1", "Consulting")
	require.NoError(t, err)
	*now = now.Add(3 * time.Minute)

	stopped, err := m.Stop("u1")
	require.NoError(t, err)
	assert.Equal(t, 15, stopped.Minutes)
	assert.True(t, stopped.Hours.Equal(decimal.RequireFromString("0.25")))
}

func TestManagerStartSameProjectIsNoOp(t *testing.T) {
	m, now := newTestManager(t)

	first, err := m.Start("u1", "p1", "Consulting")
	require.NoError(t, err)

	*now = now.Add(10 * time.Minute)
	again, err := m.Start("u1", "p1", "Consulting")
	require.NoError(t, err)
	assert.True(t, again.StartedAt.Equal(first.StartedAt), "original start time is kept")
}

func TestManagerStartDifferentProjectFails(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Start("u1", "p1", "Consulting")
	require.NoError(t, err)

	_, err = m.Start("u1", "p2", "Retainer")
	assert.ErrorIs(t, err, ErrSessionActive)
}

func TestManagerStopWhileIdle(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Stop("u1")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestManagerUsersAreIsolated(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Start("u1", "p1", "Consulting")
	require.NoError(t, err)

	active, err := m.Active("u2")
	require.NoError(t, err)
	assert.Nil(t, active)

	_, err = m.Start("u2", "p2", "Retainer")
	require.NoError(t, err)
}

func TestManagerHistoryNewestFirstAndCapped(t *testing.T) {
	m, now := newTestManager(t)

	for i := 0; i < historyCap+5; i++ {
		_, err := m.Start("u1", fmt.Sprintf("p%d", i), "Project")
		require.NoError(t, err)
		*now = now.Add(20 * time.Minute)
		_, err = m.Stop("u1")
		require.NoError(t, err)
	}

	history, err := m.History("u1")
	require.NoError(t, err)
	require.Len(t, history, historyCap)
	assert.Equal(t, fmt.Sprintf("p%d", historyCap+4), history[0].ProjectID, "most recent first")
}

func TestManagerStatePersistsAcrossInstances(t *testing.T) {
	kv := NewMemStore()
	now := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)

	first := NewManager(kv)
	first.now = func() time.Time { return now }
	_, err := first.Start("u1", "p1", "Consulting")
	require.NoError(t, err)

	// A fresh manager over the same store sees the running session.
	second := NewManager(kv)
	second.now = func() time.Time { return now.Add(30 * time.Minute) }
	active, err := second.Active("u1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "p1", active.ProjectID)

	stopped, err := second.Stop("u1")
	require.NoError(t, err)
	assert.Equal(t, 30, stopped.Minutes)
}
