// Package upstream wraps outbound HTTP calls to auxiliary services (the
// auth microservice, reCAPTCHA) in a circuit breaker.  There are no
// retries: a failed call is reported once and the caller degrades to 503.
package upstream

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrUnavailable is returned when the upstream cannot be reached or the
// breaker is open.  Callers map it to 503.
var ErrUnavailable = errors.New("upstream unavailable")

var errServerStatus = errors.New("upstream server error")

// Client is an *http.Client guarded by a named breaker.
type Client struct {
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

// New creates a Client whose breaker trips after more than five
// consecutive failures and probes again after 30s.
func New(name string, timeout time.Duration) *Client {
	return NewWithHTTPClient(name, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient is New with a caller-provided transport client.
func NewWithHTTPClient(name string, hc *http.Client) *Client {
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})
	return &Client{http: hc, breaker: cb}
}

// Do sends req through the breaker.  Any HTTP response, 5xx included, is
// returned to the caller with a nil error so upstream status and message
// can be passed through; 5xx still counts as a breaker failure.  The caller
// closes the body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		r, doErr := c.http.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		if r.StatusCode >= 500 {
			return r, errServerStatus
		}
		return r, nil
	})
	if err == nil || (errors.Is(err, errServerStatus) && resp != nil) {
		return resp, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// State reports the breaker state, for health output.
func (c *Client) State() string {
	return c.breaker.State().String()
}
