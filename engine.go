package dnslink

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Engine owns the resolution cache and orchestrates cache-aside lookups.
// Lookup failures never escape it: they are logged and reported as Unknown.
type Engine struct {
	Lookuper
	cache  Cacher
	logger *zap.Logger
	group  singleflight.Group
}

// NewEngine returns an Engine resolving through lookuper and caching in
// cacher. A nil logger disables diagnostics.
func NewEngine(lookuper Lookuper, cacher Cacher, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		Lookuper: lookuper,
		cache:    cacher,
		logger:   logger,
	}
}

// ResolveAndCache returns the DNSLink value for fqdn, consulting the cache
// first and performing a blocking backend lookup on a miss. Absent results
// are cached like resolved ones so domains without DNSLink don't trigger
// repeated lookups. Errors are never cached; the next call for the same
// name retries the backend.
func (e *Engine) ResolveAndCache(ctx context.Context, fqdn string) Value {
	if value, ok := e.cache.Get(fqdn); ok {
		return value
	}
	// Coalesce concurrent lookups for the same name. Every caller still
	// blocks until the shared result is known.
	v, err, _ := e.group.Do(fqdn, func() (any, error) {
		value, err := e.Lookup(ctx, fqdn)
		if err == nil {
			e.cache.Set(fqdn, value)
		}
		return value, err
	})
	if err != nil {
		e.logger.Warn("dnslink lookup failed", zap.String("fqdn", fqdn), zap.Error(err))
		return Unknown
	}
	return v.(Value)
}

// CachedValue returns the cached value for fqdn without any side effect.
func (e *Engine) CachedValue(fqdn string) (Value, bool) {
	return e.cache.Get(fqdn)
}

// SetCached records a DNSLink value observed out-of-band, such as a hint
// from a response header seen by the interception hook.
func (e *Engine) SetCached(fqdn string, value Value) {
	e.cache.Set(fqdn, value)
}

// ClearCache drops all cached resolutions, typically on a configuration
// change.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}
