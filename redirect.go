package dnslink

import (
	"context"
	"net/url"
	"strings"
)

// Redirect is a planned rewrite of a request URL to a gateway path.
type Redirect struct {
	URL *url.URL
}

// Gateway-internal namespaces a DNSLink redirect must never intercept,
// even when the hostname itself has a DNSLink.
var reservedPrefixes = []string{"/ipfs/", "/ipns/", "/api/v"}

func reservedPath(p string) bool {
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// CanRedirectToIPNS reports whether u should be redirected to an /ipns/
// gateway path. known carries a DNSLink value the caller already holds;
// pass Unknown to fall back to the cache or, under the eager policy, to a
// blocking lookup. The eager path is the only one that triggers an
// unsolicited lookup.
func (s *Service) CanRedirectToIPNS(ctx context.Context, u *url.URL, known Value) bool {
	if u == nil || reservedPath(u.Path) {
		return false
	}
	value := known
	if !value.Known() {
		if s.states.State().Policy == PolicyEager {
			value = s.engine.ResolveAndCache(ctx, u.Hostname())
		} else {
			value, _ = s.engine.CachedValue(u.Hostname())
		}
	}
	return value.IsResolved()
}

// PlanRedirect returns the rewritten gateway URL for u, or nil when no
// redirect applies. The rewrite replaces scheme and host with the gateway's
// (the embedded node's public gateway under ModeEmbedded, the configured
// external gateway otherwise) and prefixes the path with /ipns/{hostname},
// preserving the original path and query.
func (s *Service) PlanRedirect(ctx context.Context, u *url.URL, known Value) *Redirect {
	if !s.CanRedirectToIPNS(ctx, u, known) {
		return nil
	}
	base := s.states.State().gatewayBase()
	if base == nil {
		return nil
	}
	target := *u
	target.Scheme = base.Scheme
	target.Host = base.Host
	target.User = nil
	target.Path = "/ipns/" + u.Hostname() + u.Path
	target.RawPath = ""
	return &Redirect{URL: &target}
}
