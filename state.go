package dnslink

import (
	"fmt"
	"net/url"
)

// Policy controls when DNSLink lookups may happen.
type Policy byte

const (
	PolicyDisabled Policy = iota // never look up
	PolicyManual                 // only use values already cached or supplied
	PolicyEager                  // look up proactively during redirect planning
)

// ParsePolicy converts a configuration string to a Policy.
func ParsePolicy(s string) (p Policy, err error) {
	switch s {
	case "disabled":
		p = PolicyDisabled
	case "manual", "":
		p = PolicyManual
	case "eager":
		p = PolicyEager
	default:
		err = fmt.Errorf("dnslink: unknown policy %q", s)
	}
	return
}

func (p Policy) String() string {
	switch p {
	case PolicyDisabled:
		return "disabled"
	case PolicyEager:
		return "eager"
	}
	return "manual"
}

// NodeMode tells whether the backend node runs embedded in the host or as
// an external daemon, which decides the gateway used for redirects.
type NodeMode byte

const (
	ModeExternal NodeMode = iota
	ModeEmbedded
)

// ParseNodeMode converts a configuration string to a NodeMode.
func ParseNodeMode(s string) (m NodeMode, err error) {
	switch s {
	case "external", "":
		m = ModeExternal
	case "embedded":
		m = ModeEmbedded
	default:
		err = fmt.Errorf("dnslink: unknown node mode %q", s)
	}
	return
}

func (m NodeMode) String() string {
	if m == ModeEmbedded {
		return "embedded"
	}
	return "external"
}

// State is a read-only snapshot of host configuration. It is taken anew on
// every decision, never stored.
type State struct {
	PeerCount         int      // network connectivity signal; >= 0 means lookups are possible
	Policy            Policy
	APIBase           *url.URL // backend resolver API root
	GatewayBase       *url.URL // gateway of an externally run backend
	PublicGatewayBase *url.URL // public gateway of an embedded backend
	NodeMode          NodeMode
}

// gatewayBase returns the gateway redirects should target under this state,
// or nil when none is configured.
func (s State) gatewayBase() *url.URL {
	if s.NodeMode == ModeEmbedded {
		return s.PublicGatewayBase
	}
	return s.GatewayBase
}

// StateProvider supplies the current host state. It is pulled on every
// call; no subscription contract exists.
type StateProvider interface {
	State() State
}

// StateFunc adapts a function to the StateProvider interface.
type StateFunc func() State

func (f StateFunc) State() State { return f() }
