// Package cache provides the short-TTL memoization layer in front of
// workspace collection reads. The cache is an injected service instance
// with an explicit lifecycle, not package-level state.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Resource names the cached collections. Each carries its own TTL,
// roughly matched to how often the data changes.
type Resource string

const (
	ResourceClients    Resource = "clients"
	ResourceProjects   Resource = "projects"
	ResourceTimesheets Resource = "timesheets"
	ResourceInvoices   Resource = "invoices"
	ResourceTemplates  Resource = "invoice-templates"
	ResourceSettings   Resource = "workspace-settings"
)

var resourceTTLs = map[Resource]time.Duration{
	ResourceClients:    10 * time.Minute,
	ResourceProjects:   10 * time.Minute,
	ResourceTimesheets: 2 * time.Minute,
	ResourceInvoices:   5 * time.Minute,
	ResourceTemplates:  10 * time.Minute,
	ResourceSettings:   10 * time.Minute,
}

const defaultTTL = 5 * time.Minute

// TTLFor returns the TTL configured for a resource.
func TTLFor(resource Resource) time.Duration {
	if ttl, ok := resourceTTLs[resource]; ok {
		return ttl
	}
	return defaultTTL
}

// FetchFunc loads a collection from its source of truth.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	data      any
	fetchedAt time.Time
	ttl       time.Duration
}

// Service is a TTL map keyed by `{resource}-{workspaceID}`. Entries only
// leave via TTL expiry or explicit invalidation; key growth across
// resources and workspaces is accepted.
type Service struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewService creates an empty cache. One instance lives per application;
// Close releases everything on shutdown.
func NewService() *Service {
	return &Service{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func key(resource Resource, workspaceID string) string {
	return string(resource) + "-" + workspaceID
}

// GetOrFetch returns the cached value when it exists and is fresh,
// otherwise invokes fetch and stores the result under the resource TTL.
// forceRefresh bypasses the lookup unconditionally.
func (s *Service) GetOrFetch(ctx context.Context, resource Resource, workspaceID string, forceRefresh bool, fetch FetchFunc) (any, error) {
	k := key(resource, workspaceID)

	if !forceRefresh {
		s.mu.Lock()
		e, ok := s.entries[k]
		fresh := ok && s.now().Sub(e.fetchedAt) < e.ttl
		s.mu.Unlock()
		if fresh {
			return e.data, nil
		}
	}

	data, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[k] = entry{data: data, fetchedAt: s.now(), ttl: TTLFor(resource)}
	s.mu.Unlock()
	return data, nil
}

// Preload warms the cache in the background without blocking the caller.
// Fetch errors are swallowed; the next GetOrFetch will simply miss.
func (s *Service) Preload(ctx context.Context, resource Resource, workspaceID string, fetch FetchFunc) {
	go func() {
		_, _ = s.GetOrFetch(ctx, resource, workspaceID, false, fetch)
	}()
}

// WarmWorkspace fetches several resources for a workspace concurrently,
// typically right after a workspace switch.
func (s *Service) WarmWorkspace(ctx context.Context, workspaceID string, fetchers map[Resource]FetchFunc) error {
	g, gctx := errgroup.WithContext(ctx)
	for resource, fetch := range fetchers {
		g.Go(func() error {
			_, err := s.GetOrFetch(gctx, resource, workspaceID, false, fetch)
			return err
		})
	}
	return g.Wait()
}

// InvalidateWorkspace drops every entry whose key ends with the workspace id.
func (s *Service) InvalidateWorkspace(workspaceID string) {
	suffix := "-" + workspaceID
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.entries {
		if strings.HasSuffix(k, suffix) {
			delete(s.entries, k)
		}
	}
}

// Invalidate drops a single resource entry for a workspace.
func (s *Service) Invalidate(resource Resource, workspaceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key(resource, workspaceID))
}

// InvalidateAll clears the whole cache.
func (s *Service) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
}

// Close releases the cache. Kept separate from InvalidateAll so callers
// express lifecycle intent (logout, shutdown) distinctly from invalidation.
func (s *Service) Close() {
	s.InvalidateAll()
}
