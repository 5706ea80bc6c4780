package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/nightshift-hris/attendance-backend-go/internal/config"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendDailyDigest(ctx context.Context, to []string, digest DailyDigest) error
}

// DailyDigest is the HR summary of one finished shift
type DailyDigest struct {
	ShiftDate      string
	TotalEmployees int
	Late           []DigestEntry
	Absent         []DigestEntry
}

type DigestEntry struct {
	EmployeeCode  string
	EmployeeName  string
	Department    string
	CheckInTime   string
	LateByMinutes int
}

type mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailServiceImpl struct {
	cfg        config.SMTPConfig
	templates  *template.Template
	mailer     mailer
	retryDelay time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:        cfg,
		templates:  tmpl,
		mailer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		retryDelay: time.Second,
	}, nil
}

// SendDailyDigest mails the late and absent lists of a shift to HR
func (s *emailServiceImpl) SendDailyDigest(ctx context.Context, to []string, digest DailyDigest) error {
	if len(to) == 0 {
		slog.Warn("No digest recipients configured, skipping", "shift_date", digest.ShiftDate)
		return nil
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "daily_digest.html", digest); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Attendance digest %s: %d late, %d absent", digest.ShiftDate, len(digest.Late), len(digest.Absent))
	return s.sendHTML(ctx, to, subject, body.String())
}

func (s *emailServiceImpl) newMessage(to []string, subject, htmlBody string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return m
}

func (s *emailServiceImpl) sendHTML(ctx context.Context, to []string, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	m := s.newMessage(to, subject, htmlBody)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.mailer.DialAndSend(m)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// exponential backoff: 1s, 2s
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retryDelay * time.Duration(1<<(attempt-1))):
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
