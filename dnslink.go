// Package dnslink resolves DNSLink records for hostnames through a remote
// HTTP API and plans transparent redirects of HTTP(S) request URLs to a
// content gateway.
package dnslink

import (
	"strings"
)

type valueKind byte

const (
	kindUnknown valueKind = iota
	kindResolved
	kindAbsent
)

// Value is the outcome of a DNSLink lookup for a hostname. The zero Value
// is Unknown, meaning no lookup has completed (or the last one failed).
type Value struct {
	kind valueKind
	path string
}

// Unknown means no completed lookup exists for the hostname.
var Unknown = Value{}

// Absent means a completed lookup confirmed the hostname has no DNSLink.
var Absent = Value{kind: kindAbsent}

// Resolved returns a Value carrying the content path a lookup produced.
func Resolved(path string) Value {
	return Value{kind: kindResolved, path: path}
}

// Known reports whether v is the result of a completed lookup, i.e. either
// resolved or confirmed absent.
func (v Value) Known() bool { return v.kind != kindUnknown }

// IsResolved reports whether v carries a content path.
func (v Value) IsResolved() bool { return v.kind == kindResolved }

// IsAbsent reports whether v is a confirmed negative result.
func (v Value) IsAbsent() bool { return v.kind == kindAbsent }

// Path returns the content path for a resolved Value, or the empty string.
func (v Value) Path() string { return v.path }

func (v Value) String() string {
	switch v.kind {
	case kindResolved:
		return v.path
	case kindAbsent:
		return "absent"
	}
	return "unknown"
}

// ValidContentPath reports whether s is a syntactically valid content path,
// that is /ipfs/<root> or /ipns/<root> with a non-empty root segment. It
// does not check that the path is retrievable.
func ValidContentPath(s string) bool {
	var rest string
	if strings.HasPrefix(s, "/ipfs/") || strings.HasPrefix(s, "/ipns/") {
		rest = s[len("/ipfs/"):]
	}
	root, _, _ := strings.Cut(rest, "/")
	return root != ""
}
