package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wneessen/go-mail"
)

// Pool limits of a Transport.
const (
	MaxConnections = 5
	MaxMessages    = 100
)

// ErrTransportClosed is returned by Send after Close.
var ErrTransportClosed = errors.New("mail transport closed")

// mailClient is the part of *mail.Client a Transport drives.
type mailClient interface {
	DialWithContext(ctx context.Context) error
	Send(msgs ...*mail.Msg) error
	Close() error
}

type pooledConn struct {
	client mailClient
	sent   int
}

// Transport is a bounded pool of SMTP connections.  At most maxConns
// connections are open at once and each is recycled after maxMessages
// deliveries.
type Transport struct {
	newClient   func() (mailClient, error)
	maxMessages int
	slots       chan struct{}

	mu     sync.Mutex
	idle   []*pooledConn
	closed bool
}

func newTransport(newClient func() (mailClient, error), maxConns, maxMessages int) *Transport {
	return &Transport{
		newClient:   newClient,
		maxMessages: maxMessages,
		slots:       make(chan struct{}, maxConns),
	}
}

// Send delivers msg over a pooled connection, dialing one if none is idle.
// It blocks while all connections are busy, until ctx is done.
func (t *Transport) Send(ctx context.Context, msg *mail.Msg) error {
	select {
	case t.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-t.slots }()

	pc, err := t.acquire(ctx)
	if err != nil {
		return err
	}
	if err := pc.client.Send(msg); err != nil {
		_ = pc.client.Close()
		return fmt.Errorf("smtp send: %w", err)
	}
	pc.sent++
	t.release(pc)
	return nil
}

func (t *Transport) acquire(ctx context.Context) (*pooledConn, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, ErrTransportClosed
	}
	if n := len(t.idle); n > 0 {
		pc := t.idle[n-1]
		t.idle = t.idle[:n-1]
		t.mu.Unlock()
		return pc, nil
	}
	t.mu.Unlock()

	c, err := t.newClient()
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	if err := c.DialWithContext(ctx); err != nil {
		return nil, fmt.Errorf("smtp dial: %w", err)
	}
	return &pooledConn{client: c}, nil
}

func (t *Transport) release(pc *pooledConn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || pc.sent >= t.maxMessages {
		_ = pc.client.Close()
		return
	}
	t.idle = append(t.idle, pc)
}

// Close shuts every idle connection.  Connections busy in Send are closed
// when they are released.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	var errs []error
	for _, pc := range t.idle {
		if err := pc.client.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	t.idle = nil
	return errors.Join(errs...)
}
