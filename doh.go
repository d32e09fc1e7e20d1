package dnslink

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const maxDoHBody = 64 << 10

// DoHClient is an alternate Lookuper that reads the _dnslink TXT record of
// a hostname through a DNS-over-HTTPS endpoint using RFC 8484 wire format.
// It still delegates resolution to a remote HTTP API; no local recursion
// happens here.
type DoHClient struct {
	Endpoint *url.URL
	Timeout  time.Duration
	Client   *http.Client // http.DefaultClient when nil
}

var _ Lookuper = &DoHClient{}

func (c *DoHClient) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

// Lookup implements Lookuper. NXDOMAIN and answers without a dnslink TXT
// record both mean the host has no DNSLink and yield Absent.
func (c *DoHClient) Lookup(ctx context.Context, fqdn string) (value Value, err error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	if c.Endpoint == nil {
		return Unknown, &LookupError{FQDN: fqdn, Reason: "no DoH endpoint configured"}
	}
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn("_dnslink."+fqdn), dns.TypeTXT)
	raw, err := m.Pack()
	if err != nil {
		return Unknown, &LookupError{FQDN: fqdn, Reason: "pack", Cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint.String(), bytes.NewReader(raw))
	if err != nil {
		return Unknown, &LookupError{FQDN: fqdn, Reason: "request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/dns-message")
	req.Header.Set("Accept", "application/dns-message")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Unknown, &LookupError{FQDN: fqdn, Reason: "transport", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return Unknown, &LookupError{FQDN: fqdn, Reason: resp.Status}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDoHBody))
	if err != nil {
		return Unknown, &LookupError{FQDN: fqdn, Reason: "read", Cause: err}
	}
	var answer dns.Msg
	if err = answer.Unpack(body); err != nil {
		return Unknown, &LookupError{FQDN: fqdn, Reason: "unpack", Cause: err}
	}
	switch answer.Rcode {
	case dns.RcodeSuccess:
		value = Absent
		for _, rr := range answer.Answer {
			if txt, ok := rr.(*dns.TXT); ok {
				if path, found := strings.CutPrefix(strings.Join(txt.Txt, ""), "dnslink="); found {
					if !ValidContentPath(path) {
						return Unknown, &LookupError{FQDN: fqdn, Reason: "invalid DNSLink path"}
					}
					value = Resolved(path)
					break
				}
			}
		}
	case dns.RcodeNameError:
		value = Absent
	default:
		err = &LookupError{FQDN: fqdn, Reason: dns.RcodeToString[answer.Rcode]}
	}
	return
}
