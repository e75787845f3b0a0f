package notification

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Known provider names.  Only gmail has an implementation.
const (
	ProviderOutlook  = "outlook"
	ProviderSendGrid = "sendgrid"
	ProviderAWSSES   = "aws-ses"
)

var supportedProviders = []string{ProviderGmail, ProviderOutlook, ProviderSendGrid, ProviderAWSSES}

// ErrNotImplemented is wrapped by the error for known but unimplemented
// providers.
var ErrNotImplemented = errors.New("no implementado aún")

// UnsupportedProviderError names a provider the factory does not know.
type UnsupportedProviderError struct{ Provider string }

func (e *UnsupportedProviderError) Error() string {
	return "Proveedor de email no soportado: " + e.Provider
}

// SupportedProviders lists the known provider names.
func SupportedProviders() []string {
	out := make([]string, len(supportedProviders))
	copy(out, supportedProviders)
	return out
}

// IsProviderSupported reports whether provider is a known name, ignoring
// case.
func IsProviderSupported(provider string) bool {
	p := strings.ToLower(strings.TrimSpace(provider))
	for _, s := range supportedProviders {
		if s == p {
			return true
		}
	}
	return false
}

// Factory builds provider services and holds the single shared instance.
// The first successful construction wins; later Instance calls return it
// whatever provider they ask for, until Reset.
type Factory struct {
	defaultProvider string
	creds           Credentials
	logger          zerolog.Logger

	mu       sync.Mutex
	instance Service
}

// NewFactory takes the configured provider (EMAIL_PROVIDER, may be empty)
// and credentials.
func NewFactory(defaultProvider string, creds Credentials, logger zerolog.Logger) *Factory {
	return &Factory{
		defaultProvider: defaultProvider,
		creds:           creds,
		logger:          logger.With().Str("component", "notification").Logger(),
	}
}

func (f *Factory) resolve(provider string) string {
	switch {
	case strings.TrimSpace(provider) != "":
		return strings.TrimSpace(provider)
	case strings.TrimSpace(f.defaultProvider) != "":
		return strings.TrimSpace(f.defaultProvider)
	}
	return ProviderGmail
}

// Create builds a new service for provider, falling back to the configured
// provider and then gmail.  It does not touch the shared instance.
func (f *Factory) Create(provider string) (Service, error) {
	selected := f.resolve(provider)
	switch strings.ToLower(selected) {
	case ProviderGmail:
		return NewGmailService(f.creds, f.logger)
	case ProviderOutlook:
		return nil, fmt.Errorf("Outlook Email Service %w", ErrNotImplemented)
	case ProviderSendGrid:
		return nil, fmt.Errorf("SendGrid Email Service %w", ErrNotImplemented)
	case ProviderAWSSES:
		return nil, fmt.Errorf("AWS SES Email Service %w", ErrNotImplemented)
	}
	return nil, &UnsupportedProviderError{Provider: selected}
}

// Instance returns the shared service, creating it on first use.
func (f *Factory) Instance(provider string) (Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.instance != nil {
		return f.instance, nil
	}
	svc, err := f.Create(provider)
	if err != nil {
		return nil, err
	}
	f.instance = svc
	return svc, nil
}

// Reset drops the shared instance.
func (f *Factory) Reset() {
	f.mu.Lock()
	f.instance = nil
	f.mu.Unlock()
}

// Configure creates and validates a service for provider and logs the
// outcome.  The shared instance is not changed.
func (f *Factory) Configure(provider string) (Service, error) {
	svc, err := f.Create(provider)
	if err == nil {
		err = svc.ValidateConfiguration()
	}
	if err != nil {
		f.logger.Error().Err(err).Str("provider", f.resolve(provider)).Msg("email service configuration failed")
		return nil, err
	}
	f.logger.Info().Str("provider", svc.Provider()).Msg("email service configured")
	return svc, nil
}
