package notification

import (
	"mime"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

var fixedNow = time.Date(2025, 10, 13, 20, 4, 5, 0, time.UTC)

func newTestGmail(t *testing.T, d *fakeDialer) *GmailService {
	t.Helper()
	g, err := NewGmailService(Credentials{User: "alertas@example.com", Password: "app-pass"}, zerolog.Nop())
	require.NoError(t, err)
	g.now = func() time.Time { return fixedNow }
	g.newClient = d.new
	return g
}

func body(t *testing.T, m *mail.Msg) string {
	t.Helper()
	var b strings.Builder
	for _, part := range m.GetParts() {
		content, err := part.GetContent()
		require.NoError(t, err)
		b.Write(content)
	}
	return b.String()
}

// header decodes the first value of h.  go-mail stores non-ASCII values
// Q-encoded.
func header(t *testing.T, m *mail.Msg, h mail.Header) string {
	t.Helper()
	vals := m.GetGenHeader(h)
	require.NotEmpty(t, vals, h)
	out, err := new(mime.WordDecoder).DecodeHeader(vals[0])
	require.NoError(t, err)
	return out
}

func TestNewGmailService_RequiresCredentials(t *testing.T) {
	for _, c := range []Credentials{{}, {User: "a@b.co"}, {Password: "x"}} {
		_, err := NewGmailService(c, zerolog.Nop())
		assert.ErrorIs(t, err, ErrMissingCredentials)
	}
}

func TestGmail_SendNotificationEmail(t *testing.T) {
	d := &fakeDialer{}
	g := newTestGmail(t, d)

	got, err := g.SendNotificationEmail(t.Context(), RequestInfo{
		URL:       "/complaints/list?entity=3",
		Method:    "GET",
		IP:        "10.0.0.7",
		UserAgent: "curl/8.0",
	}, ActionComplaintsList)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, ProviderGmail, got.Provider)
	assert.True(t, strings.HasSuffix(got.MessageID, "@example.com>"))
	assert.ElementsMatch(t, []string{DefaultRecipient, CopyRecipient}, got.Recipients)

	sent := d.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, SubjectPrefix+ActionComplaintsList, header(t, sent[0], mail.HeaderSubject))
	assert.Equal(t, MailerHeader, header(t, sent[0], mail.Header("X-Mailer")))
	assert.Equal(t, PriorityHeader, header(t, sent[0], mail.Header("X-Priority")))

	// The transport is closed after the send.
	require.Len(t, d.clients, 1)
	assert.Equal(t, 1, d.clients[0].closed)
}

func TestGmail_NonReportPathIsSkipped(t *testing.T) {
	d := &fakeDialer{}
	g := newTestGmail(t, d)

	got, err := g.SendNotificationEmail(t.Context(), RequestInfo{URL: "/complaints/entities"}, ActionComplaintsList)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, d.clients)
}

func TestGmail_SendFailure(t *testing.T) {
	d := &fakeDialer{sendErr: errSMTP}
	g := newTestGmail(t, d)

	got, err := g.SendNotificationEmail(t.Context(), RequestInfo{URL: "/complaints/stats"}, ActionComplaintsStats)
	assert.ErrorIs(t, err, errSMTP)
	assert.Nil(t, got)
}

func TestGmail_TemplateDataFallbacks(t *testing.T) {
	g := newTestGmail(t, &fakeDialer{})
	data := g.templateData(RequestInfo{URL: "/complaints/stats", Method: "GET"}, ActionComplaintsStats)
	assert.Equal(t, UnknownIP, data.IP)
	assert.Equal(t, UnknownUserAgent, data.UserAgent)
	assert.Equal(t, "lunes, 13 de octubre de 2025, 3:04:05 p. m.", data.Timestamp)
}

func TestGmail_GenerateEmailTemplate(t *testing.T) {
	g := newTestGmail(t, &fakeDialer{})
	html := g.GenerateEmailTemplate(TemplateData{
		Action:    ActionComplaintsStats,
		Timestamp: "ts",
		IP:        "1.2.3.4",
		URL:       "/complaints/stats?x=<b>",
		Method:    "GET",
		UserAgent: "UA",
	})
	assert.Contains(t, html, ActionComplaintsStats)
	assert.Contains(t, html, "1.2.3.4")
	// Values are embedded without escaping.
	assert.Contains(t, html, "/complaints/stats?x=<b>")
	assert.Contains(t, html, "2025")
}

func TestGmail_SendTestEmail(t *testing.T) {
	d := &fakeDialer{}
	g := newTestGmail(t, d)

	got, err := g.SendTestEmail(t.Context(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultRecipient}, got.Recipients)

	got, err = g.SendTestEmail(t.Context(), "otro@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"otro@example.com"}, got.Recipients)

	sent := d.sent()
	require.Len(t, sent, 2)
	assert.Equal(t, TestSubject, header(t, sent[0], mail.HeaderSubject))
	assert.Contains(t, body(t, sent[0]), "13/10/2025")
}
