package notification

import (
	"context"
	"errors"
	"sync"

	"github.com/wneessen/go-mail"
)

type fakeClient struct {
	mu      sync.Mutex
	dials   int
	sent    []*mail.Msg
	closed  int
	sendErr error
	dialErr error
}

func (f *fakeClient) DialWithContext(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dials++
	return f.dialErr
}

func (f *fakeClient) Send(msgs ...*mail.Msg) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msgs...)
	return nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

// fakeDialer hands out a new fakeClient per dial and remembers them.
type fakeDialer struct {
	mu      sync.Mutex
	clients []*fakeClient
	sendErr error
	newErr  error
}

func (d *fakeDialer) new() (mailClient, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.newErr != nil {
		return nil, d.newErr
	}
	c := &fakeClient{sendErr: d.sendErr}
	d.clients = append(d.clients, c)
	return c, nil
}

func (d *fakeDialer) sent() []*mail.Msg {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*mail.Msg
	for _, c := range d.clients {
		out = append(out, c.sent...)
	}
	return out
}

var errSMTP = errors.New("535 authentication failed")
