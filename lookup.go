package dnslink

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/proxy"
)

// Lookuper resolves the DNSLink record for a fully qualified domain name.
type Lookuper interface {
	// Lookup blocks until the backend answers or the transport fails. It
	// returns a resolved or absent Value, or an error matching ErrLookup.
	Lookup(ctx context.Context, fqdn string) (Value, error)
}

// ErrLookup is matched via errors.Is by every lookup failure.
var ErrLookup = errors.New("dnslink: lookup failed")

// LookupError describes a failed backend lookup: bad status, transport or
// decode failure, or a resolved path failing syntax validation.
type LookupError struct {
	FQDN   string
	Reason string
	Cause  error
}

func (e *LookupError) Error() string {
	s := "dnslink: lookup " + e.FQDN + ": " + e.Reason
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

// APIClient looks up DNSLink records through the backend node API with
// GET {APIBase}/api/v0/dns/{fqdn}. The API base is read from States on
// every call. The zero Timeout leaves cancellation to the transport
// defaults and the caller's context.
type APIClient struct {
	proxy.ContextDialer
	States  StateProvider
	Timeout time.Duration
	Client  *http.Client // used verbatim when non-nil

	once   sync.Once
	client *http.Client
}

var _ Lookuper = &APIClient{}

// NewAPIClient returns an APIClient reading its endpoint from states.
func NewAPIClient(states StateProvider) *APIClient {
	return &APIClient{
		ContextDialer: &net.Dialer{},
		States:        states,
	}
}

func (c *APIClient) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	c.once.Do(func() {
		c.client = &http.Client{
			Transport: &http.Transport{DialContext: c.DialContext},
		}
	})
	return c.client
}

// Lookup implements Lookuper. A 200 answer with a well-formed Path yields a
// resolved Value; a 500 answer is the backend's convention for "host has no
// DNSLink" and yields Absent, not an error.
func (c *APIClient) Lookup(ctx context.Context, fqdn string) (value Value, err error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	base := c.States.State().APIBase
	if base == nil {
		return Unknown, &LookupError{FQDN: fqdn, Reason: "no API endpoint configured"}
	}
	u := base.JoinPath("api", "v0", "dns", fqdn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Unknown, &LookupError{FQDN: fqdn, Reason: "request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Unknown, &LookupError{FQDN: fqdn, Reason: "transport", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()
	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			Path string
		}
		if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return Unknown, &LookupError{FQDN: fqdn, Reason: "decode", Cause: err}
		}
		if !ValidContentPath(body.Path) {
			return Unknown, &LookupError{FQDN: fqdn, Reason: "invalid DNSLink path"}
		}
		value = Resolved(body.Path)
	case http.StatusInternalServerError:
		value = Absent
	default:
		err = &LookupError{FQDN: fqdn, Reason: resp.Status}
	}
	return
}
