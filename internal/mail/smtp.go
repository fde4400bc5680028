package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPTransport delivers messages over plain SMTP.
type SMTPTransport struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Send implements Transport.
func (t *SMTPTransport) Send(_ context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", t.Host, t.Port)

	var auth smtp.Auth
	if t.Username != "" {
		auth = smtp.PlainAuth("", t.Username, t.Password, t.Host)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", t.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	if msg.Urgent {
		b.WriteString("X-Priority: 1\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	if err := smtp.SendMail(addr, auth, t.From, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}
	return nil
}
