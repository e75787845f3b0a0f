package notification

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/quejasboyaca/complaint-service/internal/metrics"
)

// Notifier resolves the shared service lazily and delivers notifications.
// It never panics and its errors are only for logging.
type Notifier struct {
	factory *Factory
	logger  zerolog.Logger

	mu  sync.Mutex
	svc Service
}

func NewNotifier(factory *Factory, logger zerolog.Logger) *Notifier {
	return &Notifier{factory: factory, logger: logger.With().Str("component", "notifier").Logger()}
}

// Service returns the shared provider instance, initializing it on first
// use.
func (n *Notifier) Service() (Service, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.svc != nil {
		return n.svc, nil
	}
	svc, err := n.factory.Instance("")
	if err != nil {
		n.logger.Error().Err(err).Msg("email service initialization failed")
		return nil, err
	}
	n.logger.Info().Str("provider", svc.Provider()).Msg("email service initialized")
	n.svc = svc
	return svc, nil
}

// Notify sends the alert for action.  The outcome is counted and returned.
func (n *Notifier) Notify(ctx context.Context, req RequestInfo, action string) error {
	svc, err := n.Service()
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(action, "failed").Inc()
		return err
	}
	d, err := svc.SendNotificationEmail(ctx, req, action)
	switch {
	case err != nil:
		metrics.NotificationsTotal.WithLabelValues(action, "failed").Inc()
		return err
	case d == nil:
		metrics.NotificationsTotal.WithLabelValues(action, "skipped").Inc()
	default:
		metrics.NotificationsTotal.WithLabelValues(action, "sent").Inc()
	}
	return nil
}

// SendTest mails the confirmation message through the shared service.
func (n *Notifier) SendTest(ctx context.Context, to string) (*Delivery, error) {
	svc, err := n.Service()
	if err != nil {
		return nil, err
	}
	return svc.SendTestEmail(ctx, to)
}

// Reset drops the cached service and the factory instance.
func (n *Notifier) Reset() {
	n.mu.Lock()
	n.svc = nil
	n.mu.Unlock()
	n.factory.Reset()
	n.logger.Info().Msg("email service reset")
}
