package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService records the calls Notifier makes.
type stubService struct {
	delivery *Delivery
	err      error
	calls    int
	tests    []string
}

func (s *stubService) Provider() string                          { return "stub" }
func (s *stubService) CreateTransporter() (Transporter, error)   { return nil, errors.New("unused") }
func (s *stubService) GenerateEmailTemplate(TemplateData) string { return "" }
func (s *stubService) ValidateConfiguration() error              { return nil }

func (s *stubService) SendNotificationEmail(context.Context, RequestInfo, string) (*Delivery, error) {
	s.calls++
	return s.delivery, s.err
}

func (s *stubService) SendTestEmail(_ context.Context, to string) (*Delivery, error) {
	s.tests = append(s.tests, to)
	return &Delivery{Provider: "stub", Recipients: []string{to}}, nil
}

func notifierWith(svc Service) *Notifier {
	f := NewFactory("", testCreds, zerolog.Nop())
	f.instance = svc
	return NewNotifier(f, zerolog.Nop())
}

func TestNotifier_Notify(t *testing.T) {
	stub := &stubService{delivery: &Delivery{Provider: "stub"}}
	n := notifierWith(stub)

	require.NoError(t, n.Notify(t.Context(), RequestInfo{URL: "/complaints/list"}, ActionComplaintsList))
	assert.Equal(t, 1, stub.calls)

	// Skipped sends are not errors.
	stub.delivery = nil
	require.NoError(t, n.Notify(t.Context(), RequestInfo{URL: "/"}, ActionComplaintsList))

	stub.err = errSMTP
	assert.ErrorIs(t, n.Notify(t.Context(), RequestInfo{URL: "/complaints/stats"}, ActionComplaintsStats), errSMTP)
}

func TestNotifier_InitFailure(t *testing.T) {
	n := NewNotifier(NewFactory("", Credentials{}, zerolog.Nop()), zerolog.Nop())
	err := n.Notify(t.Context(), RequestInfo{URL: "/complaints/list"}, ActionComplaintsList)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestNotifier_SendTestAndReset(t *testing.T) {
	stub := &stubService{}
	n := notifierWith(stub)

	d, err := n.SendTest(t.Context(), "x@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"x@example.com"}, d.Recipients)

	n.Reset()
	svc, err := n.Service()
	require.NoError(t, err)
	assert.Equal(t, ProviderGmail, svc.Provider())
}
