package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *time.Time) {
	now := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	s := NewService()
	s.now = func() time.Time { return now }
	return s, &now
}

func countingFetch(value any, calls *int) FetchFunc {
	return func(ctx context.Context) (any, error) {
		*calls++
		return value, nil
	}
}

func TestGetOrFetchCachesWithinTTL(t *testing.T) {
	s, now := newTestService()
	ctx := context.Background()
	calls := 0
	fetch := countingFetch("clients-v1", &calls)

	got, err := s.GetOrFetch(ctx, ResourceClients, "ws1", false, fetch)
	require.NoError(t, err)
	assert.Equal(t, "clients-v1", got)
	assert.Equal(t, 1, calls)

	*now = now.Add(time.Minute)
	got, err = s.GetOrFetch(ctx, ResourceClients, "ws1", false, fetch)
	require.NoError(t, err)
	assert.Equal(t, "clients-v1", got)
	assert.Equal(t, 1, calls, "fresh entry served from cache")
}

func TestGetOrFetchExpiresAfterTTL(t *testing.T) {
	s, now := newTestService()
	ctx := context.Background()
	calls := 0
	fetch := countingFetch("projects", &calls)

	_, err := s.GetOrFetch(ctx, ResourceProjects, "ws1", false, fetch)
	require.NoError(t, err)

	*now = now.Add(TTLFor(ResourceProjects) + time.Second)
	_, err = s.GetOrFetch(ctx, ResourceProjects, "ws1", false, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "stale entry refetched")
}

func TestGetOrFetchForceRefresh(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	calls := 0
	fetch := countingFetch("invoices", &calls)

	_, err := s.GetOrFetch(ctx, ResourceInvoices, "ws1", false, fetch)
	require.NoError(t, err)
	_, err = s.GetOrFetch(ctx, ResourceInvoices, "ws1", true, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrFetchErrorIsNotCached(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	calls := 0
	failing := func(ctx context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("db down")
		}
		return "recovered", nil
	}

	_, err := s.GetOrFetch(ctx, ResourceClients, "ws1", false, failing)
	require.Error(t, err)

	got, err := s.GetOrFetch(ctx, ResourceClients, "ws1", false, failing)
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
}

func TestWorkspacesAreIsolated(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	calls1, calls2 := 0, 0

	_, err := s.GetOrFetch(ctx, ResourceClients, "ws1", false, countingFetch("a", &calls1))
	require.NoError(t, err)
	got, err := s.GetOrFetch(ctx, ResourceClients, "ws2", false, countingFetch("b", &calls2))
	require.NoError(t, err)
	assert.Equal(t, "b", got)
	assert.Equal(t, 1, calls2, "other workspace's entry is not shared")
}

func TestInvalidateSingleResource(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	clientCalls, projectCalls := 0, 0

	_, _ = s.GetOrFetch(ctx, ResourceClients, "ws1", false, countingFetch("c", &clientCalls))
	_, _ = s.GetOrFetch(ctx, ResourceProjects, "ws1", false, countingFetch("p", &projectCalls))

	s.Invalidate(ResourceClients, "ws1")

	_, _ = s.GetOrFetch(ctx, ResourceClients, "ws1", false, countingFetch("c", &clientCalls))
	_, _ = s.GetOrFetch(ctx, ResourceProjects, "ws1", false, countingFetch("p", &projectCalls))
	assert.Equal(t, 2, clientCalls, "invalidated resource refetched")
	assert.Equal(t, 1, projectCalls, "sibling resource untouched")
}

func TestInvalidateWorkspaceDropsAllItsResources(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	ws1Calls, ws2Calls := 0, 0

	_, _ = s.GetOrFetch(ctx, ResourceClients, "ws1", false, countingFetch("a", &ws1Calls))
	_, _ = s.GetOrFetch(ctx, ResourceProjects, "ws1", false, countingFetch("a", &ws1Calls))
	_, _ = s.GetOrFetch(ctx, ResourceClients, "ws2", false, countingFetch("b", &ws2Calls))

	s.InvalidateWorkspace("ws1")

	_, _ = s.GetOrFetch(ctx, ResourceClients, "ws1", false, countingFetch("a", &ws1Calls))
	_, _ = s.GetOrFetch(ctx, ResourceProjects, "ws1", false, countingFetch("a", &ws1Calls))
	_, _ = s.GetOrFetch(ctx, ResourceClients, "ws2", false, countingFetch("b", &ws2Calls))
	assert.Equal(t, 4, ws1Calls)
	assert.Equal(t, 1, ws2Calls, "other workspace survives")
}

func TestWarmWorkspace(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	clientCalls, projectCalls := 0, 0

	err := s.WarmWorkspace(ctx, "ws1", map[Resource]FetchFunc{
		ResourceClients:  countingFetch("c", &clientCalls),
		ResourceProjects: countingFetch("p", &projectCalls),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, clientCalls)
	assert.Equal(t, 1, projectCalls)

	// Warmed entries serve subsequent reads without refetching.
	_, _ = s.GetOrFetch(ctx, ResourceClients, "ws1", false, countingFetch("c", &clientCalls))
	assert.Equal(t, 1, clientCalls)
}

func TestWarmWorkspaceSurfacesFetchError(t *testing.T) {
	s, _ := newTestService()
	err := s.WarmWorkspace(context.Background(), "ws1", map[Resource]FetchFunc{
		ResourceClients: func(ctx context.Context) (any, error) { return nil, errors.New("boom") },
	})
	assert.Error(t, err)
}

func TestTTLFor(t *testing.T) {
	assert.Equal(t, 2*time.Minute, TTLFor(ResourceTimesheets))
	assert.Equal(t, defaultTTL, TTLFor(Resource("unknown")))
}
