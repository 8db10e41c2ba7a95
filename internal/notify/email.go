package notify

import (
	"gopkg.in/gomail.v2"
)

// Sender delivers a single email. Implementations report success or failure;
// the dispatcher never retries.
type Sender interface {
	Send(to, subject, htmlBody, textBody string) error
}

// SMTPSender sends email over SMTP with TLS via gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender configures an SMTP sender. Returns nil when no host is
// configured so callers can treat email as disabled.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	if host == "" {
		return nil
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers one message with both HTML and plain text bodies.
func (s *SMTPSender) Send(to, subject, htmlBody, textBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}
