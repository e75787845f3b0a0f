package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

const (
	ProviderGmail = "gmail"

	gmailHost = "smtp.gmail.com"
	gmailPort = 587
)

// ErrMissingCredentials is returned when EMAIL_USER or EMAIL_PASSWORD is
// empty.
var ErrMissingCredentials = errors.New("EMAIL_USER y EMAIL_PASSWORD deben estar configurados en las variables de entorno")

// Credentials are the mail account values read from configuration.
type Credentials struct {
	User     string
	Password string
}

// GmailService delivers notifications through Gmail SMTP with STARTTLS and
// PLAIN auth.
type GmailService struct {
	creds     Credentials
	logger    zerolog.Logger
	now       func() time.Time
	newClient func() (mailClient, error)
}

// NewGmailService validates creds eagerly; selecting the provider without
// credentials fails here.
func NewGmailService(creds Credentials, logger zerolog.Logger) (*GmailService, error) {
	g := &GmailService{
		creds:  creds,
		logger: logger.With().Str("provider", ProviderGmail).Logger(),
		now:    time.Now,
	}
	g.newClient = g.dialClient
	if err := g.ValidateConfiguration(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GmailService) Provider() string { return ProviderGmail }

func (g *GmailService) ValidateConfiguration() error {
	if strings.TrimSpace(g.creds.User) == "" || g.creds.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

func (g *GmailService) dialClient() (mailClient, error) {
	c, err := mail.NewClient(gmailHost,
		mail.WithPort(gmailPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(g.creds.User),
		mail.WithPassword(g.creds.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (g *GmailService) CreateTransporter() (Transporter, error) {
	if err := g.ValidateConfiguration(); err != nil {
		return nil, err
	}
	return newTransport(g.newClient, MaxConnections, MaxMessages), nil
}

func (g *GmailService) GenerateEmailTemplate(data TemplateData) string {
	return renderNotification(data, g.now().In(Bogota).Year())
}

// templateData builds the notification fields from the request.
func (g *GmailService) templateData(req RequestInfo, action string) TemplateData {
	ip := req.IP
	if ip == "" {
		ip = UnknownIP
	}
	ua := req.UserAgent
	if ua == "" {
		ua = UnknownUserAgent
	}
	return TemplateData{
		Action:    action,
		Timestamp: FormatTimestamp(g.now()),
		IP:        ip,
		URL:       req.URL,
		Method:    req.Method,
		UserAgent: ua,
	}
}

func (g *GmailService) newMessage(fromName, subject, html string, to ...string) (*mail.Msg, string, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(fromName, g.creds.User); err != nil {
		return nil, "", fmt.Errorf("from: %w", err)
	}
	if err := m.To(to...); err != nil {
		return nil, "", fmt.Errorf("to: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, html)

	domain := "localhost"
	if at := strings.LastIndex(g.creds.User, "@"); at >= 0 {
		domain = g.creds.User[at+1:]
	}
	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
	m.SetGenHeader(mail.HeaderMessageID, id)
	m.SetGenHeader(mail.Header("X-Mailer"), MailerHeader)
	return m, id, nil
}

// deliver sends one message over a fresh transport and closes it.
func (g *GmailService) deliver(ctx context.Context, m *mail.Msg, id string) (*Delivery, error) {
	tr, err := g.CreateTransporter()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tr.Close() }()

	if err := tr.Send(ctx, m); err != nil {
		return nil, err
	}
	rcpts, _ := m.GetRecipients()
	return &Delivery{Provider: ProviderGmail, MessageID: id, Recipients: rcpts}, nil
}

func (g *GmailService) SendNotificationEmail(ctx context.Context, req RequestInfo, action string) (*Delivery, error) {
	if !IsReportPath(req.URL) {
		return nil, nil
	}
	html := g.GenerateEmailTemplate(g.templateData(req, action))
	m, id, err := g.newMessage(SenderName, SubjectPrefix+action, html, DefaultRecipient)
	if err != nil {
		return nil, err
	}
	if err := m.Cc(CopyRecipient); err != nil {
		return nil, fmt.Errorf("cc: %w", err)
	}
	m.SetGenHeader(mail.Header("X-Priority"), PriorityHeader)

	d, err := g.deliver(ctx, m, id)
	if err != nil {
		g.logger.Error().Err(err).Str("action", action).Msg("notification email failed")
		return nil, err
	}
	g.logger.Info().Str("message_id", d.MessageID).Str("action", action).Msg("notification email sent")
	return d, nil
}

func (g *GmailService) SendTestEmail(ctx context.Context, to string) (*Delivery, error) {
	if to == "" {
		to = DefaultRecipient
	}
	m, id, err := g.newMessage(TestSenderName, TestSubject, renderTest(FormatShort(g.now())), to)
	if err != nil {
		return nil, err
	}
	d, err := g.deliver(ctx, m, id)
	if err != nil {
		g.logger.Error().Err(err).Msg("test email failed")
		return nil, err
	}
	g.logger.Info().Str("message_id", d.MessageID).Str("to", to).Msg("test email sent")
	return d, nil
}
