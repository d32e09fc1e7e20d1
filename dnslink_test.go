package dnslink

import (
	"net/url"
	"testing"
)

func mustParse(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func staticState(state State) StateFunc {
	return func() State { return state }
}

func TestValidContentPath(t *testing.T) {
	t.Parallel()
	valid := []string{
		"/ipfs/QmXyz",
		"/ipfs/QmXyz/docs/a.md",
		"/ipns/example.com",
		"/ipns/example.com/about",
	}
	for _, s := range valid {
		if !ValidContentPath(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	invalid := []string{
		"",
		"QmXyz",
		"/ipfs/",
		"/ipns/",
		"/ipfs//double",
		"ipfs/QmXyz",
		"/api/v0/dns/example.com",
		"https://example.com/ipfs/QmXyz",
	}
	for _, s := range invalid {
		if ValidContentPath(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestValueStates(t *testing.T) {
	t.Parallel()
	v := Resolved("/ipfs/QmXyz")
	if !v.Known() || !v.IsResolved() || v.IsAbsent() {
		t.Error("resolved value misreports its state")
	}
	if v.Path() != "/ipfs/QmXyz" || v.String() != "/ipfs/QmXyz" {
		t.Errorf("got path %q string %q", v.Path(), v.String())
	}
	if !Absent.Known() || Absent.IsResolved() || !Absent.IsAbsent() {
		t.Error("absent value misreports its state")
	}
	if Absent.Path() != "" || Absent.String() != "absent" {
		t.Error("absent value carries a path")
	}
	if Unknown.Known() || Unknown.IsResolved() || Unknown.IsAbsent() {
		t.Error("zero value must be unknown")
	}
	if Unknown.String() != "unknown" {
		t.Errorf("got %q", Unknown.String())
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()
	for s, want := range map[string]Policy{
		"disabled": PolicyDisabled,
		"manual":   PolicyManual,
		"":         PolicyManual,
		"eager":    PolicyEager,
	} {
		got, err := ParsePolicy(s)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParsePolicy("sometimes"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestParseNodeMode(t *testing.T) {
	t.Parallel()
	for s, want := range map[string]NodeMode{
		"external": ModeExternal,
		"":         ModeExternal,
		"embedded": ModeEmbedded,
	} {
		got, err := ParseNodeMode(s)
		if err != nil || got != want {
			t.Errorf("ParseNodeMode(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseNodeMode("sideways"); err == nil {
		t.Error("expected error for unknown node mode")
	}
}
