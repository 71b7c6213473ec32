package services

import (
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"blog/internal/config"
)

var ErrMailNotConfigured = errors.New("SMTP не настроен")

// Mailer отправляет одно письмо. replyTo может быть пустым.
type Mailer interface {
	Send(to []string, replyTo, subject, body string) error
}

type EmailService struct {
	auth smtp.Auth
	from string
	host string
	port string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailService(cfg *config.Config) *EmailService {
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	return &EmailService{
		auth: auth,
		from: cfg.SMTPUser,
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		send: smtp.SendMail,
	}
}

func (s *EmailService) Send(to []string, replyTo, subject, body string) error {
	if s.host == "" || s.from == "" {
		return ErrMailNotConfigured
	}
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return s.send(addr, s.auth, s.from, to, buildMessage(s.from, to, replyTo, subject, body))
}

func buildMessage(from string, to []string, replyTo, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	if replyTo != "" {
		b.WriteString("Reply-To: " + replyTo + "\r\n")
	}
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
