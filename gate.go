package dnslink

import (
	"net/url"
	"strings"
)

// LookupPossible reports whether the backend lookup endpoint is reachable
// under the given state.
func LookupPossible(state State) bool {
	return state.PeerCount >= 0
}

// LookupSafeForURL reports whether a DNSLink lookup for u is permitted and
// safe. It refuses URLs that are already content-addressed and URLs under
// the resolver's own API or gateway; redirecting those back through
// resolution would loop forever.
func LookupSafeForURL(state State, u *url.URL) (yes bool) {
	if u != nil && state.Policy != PolicyDisabled && LookupPossible(state) {
		yes = u.Scheme == "http" || u.Scheme == "https"
		yes = yes && !contentAddressed(u)
		yes = yes && !underBase(u, state.APIBase) && !underBase(u, state.GatewayBase)
	}
	return
}

func contentAddressed(u *url.URL) bool {
	switch u.Scheme {
	case "ipfs", "ipns":
		return true
	}
	return strings.HasPrefix(u.Path, "/ipfs/") || strings.HasPrefix(u.Path, "/ipns/")
}

// underBase reports whether u starts with base. Host comparison is exact so
// that a base of :5001 never matches a request to :50010.
func underBase(u, base *url.URL) (yes bool) {
	if base != nil {
		yes = u.Scheme == base.Scheme && u.Host == base.Host &&
			strings.HasPrefix(u.Path, strings.TrimSuffix(base.Path, "/"))
	}
	return
}
