package dnslink

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/miekg/dns"
)

// newDoHServer answers every query through reply, which receives the parsed
// question message.
func newDoHServer(t *testing.T, reply func(q *dns.Msg) *dns.Msg) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Error(err)
			return
		}
		var q dns.Msg
		if err = q.Unpack(body); err != nil {
			t.Error(err)
			return
		}
		raw, err := reply(&q).Pack()
		if err != nil {
			t.Error(err)
			return
		}
		w.Header().Set("Content-Type", "application/dns-message")
		_, _ = w.Write(raw)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func txtReply(q *dns.Msg, values ...string) *dns.Msg {
	m := new(dns.Msg)
	m.SetReply(q)
	for _, v := range values {
		m.Answer = append(m.Answer, &dns.TXT{
			Hdr: dns.RR_Header{
				Name:   q.Question[0].Name,
				Rrtype: dns.TypeTXT,
				Class:  dns.ClassINET,
				Ttl:    300,
			},
			Txt: []string{v},
		})
	}
	return m
}

func TestDoHClientResolves(t *testing.T) {
	t.Parallel()
	srv := newDoHServer(t, func(q *dns.Msg) *dns.Msg {
		if name := q.Question[0].Name; name != "_dnslink.example.com." {
			t.Errorf("unexpected question %q", name)
		}
		if qtype := q.Question[0].Qtype; qtype != dns.TypeTXT {
			t.Errorf("unexpected qtype %d", qtype)
		}
		return txtReply(q, "some-other-record", "dnslink=/ipfs/QmDoh")
	})
	c := &DoHClient{Endpoint: mustParse(t, srv.URL)}
	value, err := c.Lookup(context.Background(), "example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !value.IsResolved() || value.Path() != "/ipfs/QmDoh" {
		t.Errorf("got %v", value)
	}
}

func TestDoHClientAbsentOnNXDomain(t *testing.T) {
	t.Parallel()
	srv := newDoHServer(t, func(q *dns.Msg) *dns.Msg {
		m := new(dns.Msg)
		m.SetRcode(q, dns.RcodeNameError)
		return m
	})
	c := &DoHClient{Endpoint: mustParse(t, srv.URL)}
	value, err := c.Lookup(context.Background(), "nodesite.test")
	if err != nil {
		t.Fatal(err)
	}
	if !value.IsAbsent() {
		t.Errorf("expected absent, got %v", value)
	}
}

func TestDoHClientAbsentWithoutDnslinkRecord(t *testing.T) {
	t.Parallel()
	srv := newDoHServer(t, func(q *dns.Msg) *dns.Msg {
		return txtReply(q, "v=spf1 -all")
	})
	c := &DoHClient{Endpoint: mustParse(t, srv.URL)}
	value, err := c.Lookup(context.Background(), "example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !value.IsAbsent() {
		t.Errorf("expected absent, got %v", value)
	}
}

func TestDoHClientErrorOnServfail(t *testing.T) {
	t.Parallel()
	srv := newDoHServer(t, func(q *dns.Msg) *dns.Msg {
		m := new(dns.Msg)
		m.SetRcode(q, dns.RcodeServerFailure)
		return m
	})
	c := &DoHClient{Endpoint: mustParse(t, srv.URL)}
	if _, err := c.Lookup(context.Background(), "example.com"); !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}

func TestDoHClientErrorOnInvalidPath(t *testing.T) {
	t.Parallel()
	srv := newDoHServer(t, func(q *dns.Msg) *dns.Msg {
		return txtReply(q, "dnslink=QmNotAPath")
	})
	c := &DoHClient{Endpoint: mustParse(t, srv.URL)}
	if _, err := c.Lookup(context.Background(), "example.com"); !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}

func TestDoHClientAsEngineBackend(t *testing.T) {
	t.Parallel()
	srv := newDoHServer(t, func(q *dns.Msg) *dns.Msg {
		return txtReply(q, "dnslink=/ipfs/QmDoh")
	})
	e := newTestEngine(&DoHClient{Endpoint: mustParse(t, srv.URL)})
	if v := e.ResolveAndCache(context.Background(), "example.com"); !v.IsResolved() || v.Path() != "/ipfs/QmDoh" {
		t.Fatalf("got %v", v)
	}
}
