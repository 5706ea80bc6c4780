package email

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"testing"

	"github.com/nightshift-hris/attendance-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeMailer struct {
	failures int
	sent     []*gomail.Message
	attempts int
}

func (f *fakeMailer) DialAndSend(m ...*gomail.Message) error {
	f.attempts++
	if f.attempts <= f.failures {
		return errors.New("connection refused")
	}
	f.sent = append(f.sent, m...)
	return nil
}

func newTestService(t *testing.T, host string, m *fakeMailer) *emailServiceImpl {
	t.Helper()
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	require.NoError(t, err)
	return &emailServiceImpl{
		cfg:       config.SMTPConfig{Host: host, Port: 587, From: "attendance@example.com", FromName: "Attendance"},
		templates: tmpl,
		mailer:    m,
	}
}

func sampleDigest() DailyDigest {
	return DailyDigest{
		ShiftDate:      "2025-03-10",
		TotalEmployees: 12,
		Late: []DigestEntry{
			{EmployeeCode: "EMP-002", EmployeeName: "Bob Malik", Department: "Support", CheckInTime: "22:40", LateByMinutes: 25},
		},
		Absent: []DigestEntry{
			{EmployeeCode: "EMP-007", EmployeeName: "Dina <Noor>", Department: "Sales"},
		},
	}
}

func TestDailyDigestTemplate(t *testing.T) {
	svc := newTestService(t, "", &fakeMailer{})

	var body bytes.Buffer
	require.NoError(t, svc.templates.ExecuteTemplate(&body, "daily_digest.html", sampleDigest()))

	html := body.String()
	assert.Contains(t, html, "Night shift attendance: 2025-03-10")
	assert.Contains(t, html, "<td>Bob Malik</td>")
	assert.Contains(t, html, "<td>25</td>")
	assert.Contains(t, html, "Dina &lt;Noor&gt;")
	assert.NotContains(t, html, "Nobody was late.")

	body.Reset()
	require.NoError(t, svc.templates.ExecuteTemplate(&body, "daily_digest.html", DailyDigest{ShiftDate: "2025-03-11"}))
	assert.Contains(t, body.String(), "Nobody was late.")
	assert.Contains(t, body.String(), "Nobody was absent.")
}

func TestSendDailyDigest(t *testing.T) {
	m := &fakeMailer{}
	svc := newTestService(t, "smtp.example.com", m)

	err := svc.SendDailyDigest(context.Background(), []string{"hr@example.com", "ops@example.com"}, sampleDigest())
	require.NoError(t, err)

	require.Len(t, m.sent, 1)
	msg := m.sent[0]
	assert.Equal(t, []string{"hr@example.com", "ops@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Attendance digest 2025-03-10: 1 late, 1 absent"}, msg.GetHeader("Subject"))
}

func TestSendDailyDigestRetries(t *testing.T) {
	m := &fakeMailer{failures: 2}
	svc := newTestService(t, "smtp.example.com", m)

	require.NoError(t, svc.SendDailyDigest(context.Background(), []string{"hr@example.com"}, sampleDigest()))
	assert.Equal(t, 3, m.attempts)
	assert.Len(t, m.sent, 1)
}

func TestSendDailyDigestGivesUp(t *testing.T) {
	m := &fakeMailer{failures: maxRetries}
	svc := newTestService(t, "smtp.example.com", m)

	err := svc.SendDailyDigest(context.Background(), []string{"hr@example.com"}, sampleDigest())
	assert.ErrorContains(t, err, "failed to send email after 3 attempts")
	assert.Equal(t, maxRetries, m.attempts)
}

func TestSendDailyDigestSkips(t *testing.T) {
	m := &fakeMailer{}

	// SMTP not configured
	svc := newTestService(t, "", m)
	require.NoError(t, svc.SendDailyDigest(context.Background(), []string{"hr@example.com"}, sampleDigest()))

	// no recipients
	svc = newTestService(t, "smtp.example.com", m)
	require.NoError(t, svc.SendDailyDigest(context.Background(), nil, sampleDigest()))

	assert.Zero(t, m.attempts)
}
