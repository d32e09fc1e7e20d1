package dnslink

import (
	"context"
	"net/url"

	"github.com/linkdata/dnslink/cache"
	"go.uber.org/zap"
)

// Service is the decision surface consumed by the request interception
// hook: it wires the safety gate, the resolution engine and the redirect
// planner around a host-supplied StateProvider. The cache handle lives in
// the engine for the lifetime of the Service; there is no ambient global.
type Service struct {
	states StateProvider
	engine *Engine
}

var _ Cacher = (*cache.Cache[Value])(nil)

// New returns a Service resolving through the backend node API named by the
// host state, with the default capacity and TTL bounded cache. A nil logger
// disables diagnostics.
func New(states StateProvider, logger *zap.Logger) *Service {
	return NewWithEngine(states, NewEngine(NewAPIClient(states), cache.New[Value](), logger))
}

// NewWithEngine returns a Service using a caller-built Engine, for
// substituting the Lookuper, the cache or the logger.
func NewWithEngine(states StateProvider, engine *Engine) *Service {
	return &Service{
		states: states,
		engine: engine,
	}
}

// IsLookupPossible reports whether the backend endpoint is reachable.
func (s *Service) IsLookupPossible() bool {
	return LookupPossible(s.states.State())
}

// IsLookupSafeForURL reports whether a lookup for u is permitted and safe
// under the current host state.
func (s *Service) IsLookupSafeForURL(u *url.URL) bool {
	return LookupSafeForURL(s.states.State(), u)
}

// ResolveAndCache resolves fqdn through the engine, blocking on a cache
// miss. It returns Unknown on lookup failure; the failure is logged, never
// propagated.
func (s *Service) ResolveAndCache(ctx context.Context, fqdn string) Value {
	return s.engine.ResolveAndCache(ctx, fqdn)
}

// SetCachedValue records a DNSLink value the hook observed out-of-band.
func (s *Service) SetCachedValue(fqdn string, value Value) {
	s.engine.SetCached(fqdn, value)
}

// ClearCache drops all cached resolutions.
func (s *Service) ClearCache() {
	s.engine.ClearCache()
}
