// Package notification sends the e-mail alerts fired when report views are
// rendered.  The contract is Service; Factory selects and holds the single
// process-wide provider instance; Notifier is the thin entry point the HTTP
// middleware uses.  Sends are best effort: nothing is retried or persisted.
package notification

import (
	"context"
	"strings"

	"github.com/wneessen/go-mail"
)

// Fixed routing of notification mail.
const (
	DefaultRecipient = "munozaldananicolasdanilo@gmail.com"
	CopyRecipient    = "quejas.entidadesboyaca@gmail.com"
	SubjectPrefix    = "🔔 Solicitud de Reporte - "
	SenderName       = "Sistema de Quejas"
	TestSenderName   = "Sistema de Quejas - Prueba"
	TestSubject      = "🧪 Correo de Prueba - Sistema de Quejas"
	MailerHeader     = "Sistema de Quejas v1.0"
	PriorityHeader   = "3"
)

// Fallbacks used when the request carries no IP or user agent.
const (
	UnknownIP        = "No disponible"
	UnknownUserAgent = "No especificado"
)

// Report views and the action labels their renders produce.
const (
	ViewComplaintsList  = "complaints_list"
	ViewComplaintsStats = "complaints_stats"

	ActionComplaintsList  = "Listado de Quejas Solicitado"
	ActionComplaintsStats = "Estadísticas de Quejas Solicitadas"
)

// RequestInfo is the request metadata a notification reports on.
type RequestInfo struct {
	// URL is the original request URI, query string included.
	URL       string
	Method    string
	IP        string
	UserAgent string
}

// TemplateData is the input of GenerateEmailTemplate.  Every field is
// embedded into the HTML verbatim.
type TemplateData struct {
	Action    string
	Timestamp string
	IP        string
	URL       string
	Method    string
	UserAgent string
}

// Delivery is the provider metadata of a sent message.
type Delivery struct {
	Provider   string
	MessageID  string
	Recipients []string
}

// Transporter is a pooled mail transport handle.  Callers must Close it
// when done.
type Transporter interface {
	Send(ctx context.Context, msg *mail.Msg) error
	Close() error
}

// Service is implemented by every mail provider.
type Service interface {
	Provider() string
	// CreateTransporter returns a pooled transport bound to the configured
	// credentials.
	CreateTransporter() (Transporter, error)
	// GenerateEmailTemplate renders the notification HTML.  It is pure
	// except for the current year in the footer.
	GenerateEmailTemplate(data TemplateData) string
	// SendNotificationEmail mails a report-view alert.  Requests whose URL
	// is not a report path are ignored and yield (nil, nil).
	SendNotificationEmail(ctx context.Context, req RequestInfo, action string) (*Delivery, error)
	// SendTestEmail mails a static confirmation; an empty to means
	// DefaultRecipient.
	SendTestEmail(ctx context.Context, to string) (*Delivery, error)
	// ValidateConfiguration fails when credentials are missing.
	ValidateConfiguration() error
}

// IsReportPath reports whether url targets one of the report views.
func IsReportPath(url string) bool {
	return strings.Contains(url, "/complaints/list") || strings.Contains(url, "/complaints/stats")
}

// ActionForView maps a rendered view name onto its notification action.
func ActionForView(view string) (string, bool) {
	switch {
	case strings.Contains(view, ViewComplaintsList):
		return ActionComplaintsList, true
	case strings.Contains(view, ViewComplaintsStats):
		return ActionComplaintsStats, true
	}
	return "", false
}
