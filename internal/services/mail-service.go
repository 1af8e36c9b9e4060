package services

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/metrics"
	"go.uber.org/zap"
)

const resetEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Reset Your Password</title>
</head>
<body style="background-color: #0f1014; margin: 0; padding: 0; font-family: Arial, sans-serif;">
    <table width="100%" cellpadding="0" cellspacing="0" style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <tr>
            <td style="background: #1a1c24; padding: 40px 20px; text-align: center; border-radius: 12px;">
                <h1 style="color: #ffffff; font-size: 24px;">Reset Your Password</h1>
                <p style="color: #9ca3af; font-size: 16px;">Hi {{.Name}}, click the button below to reset your password. This link will expire in 1 hour.</p>
                <a href="{{.Link}}" style="display: inline-block; background-color: #e50914; color: #ffffff; text-decoration: none; padding: 12px 30px; border-radius: 25px; font-weight: bold;">Reset Password</a>
                <p style="color: #9ca3af; font-size: 14px;">If you didn't request this password reset, please ignore this email.</p>
            </td>
        </tr>
    </table>
</body>
</html>`

// MailService consumes password-reset events from kafka and delivers the
// reset email over SMTP. It satisfies interfaces.ConsumerHandler.
type MailService struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPass     string
	mailFrom     string
	mailFromName string
	clientURL    string
	tmpl         *template.Template
}

func NewMailService(smtpHost, smtpPort, smtpUser, smtpPass, mailFrom, mailFromName, clientURL string) *MailService {
	return &MailService{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUser:     smtpUser,
		smtpPass:     smtpPass,
		mailFrom:     mailFrom,
		mailFromName: mailFromName,
		clientURL:    clientURL,
		tmpl:         template.Must(template.New("reset-email").Parse(resetEmailTemplate)),
	}
}

func (s *MailService) HandleMessage(message string) error {
	var event dto.PasswordResetEvent
	if err := json.Unmarshal([]byte(message), &event); err != nil {
		zap.S().Errorw("malformed reset event", "err", err)
		return err
	}
	return s.SendResetEmail(event.Email, event.Name, event.Token)
}

func (s *MailService) SendResetEmail(to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.clientURL, url.QueryEscape(token))

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, map[string]string{"Name": name, "Link": link}); err != nil {
		return err
	}

	fromHeader := fmt.Sprintf("%s <%s>", s.mailFromName, s.mailFrom)
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		"Subject: Reset Your Password - Cinematik",
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body.String(),
	}, "\r\n")

	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		zap.S().Errorw("reset email delivery failed", "to", to, "err", err)
		return err
	}

	metrics.ResetEmailsSent.Inc()
	zap.S().Infow("reset email sent", "to", to)
	return nil
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := s.smtpHost + ":" + s.smtpPort

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	// Deadline covers the whole SMTP conversation, not just the dial.
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.smtpHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.smtpHost}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
