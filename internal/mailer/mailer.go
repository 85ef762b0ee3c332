// Package mailer sends plain-text e-mail over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/tokobajukeren/pos-api/internal/config"
)

type SMTPMailer struct {
	conf *config.MailConfig
}

func NewSMTPMailer(conf *config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		conf: conf,
	}
}

// Send delivers one message to a single recipient. The context bounds the
// whole SMTP exchange.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	from, err := mail.ParseAddress(m.conf.From)
	if err != nil {
		return fmt.Errorf("mail.ParseAddress(from) -> %w", err)
	}
	rcpt, err := mail.ParseAddress(to)
	if err != nil {
		return fmt.Errorf("mail.ParseAddress(to) -> %w", err)
	}

	addr := net.JoinHostPort(m.conf.Host, strconv.Itoa(m.conf.Port))

	var d net.Dialer
	if m.conf.Timeout > 0 {
		d.Timeout = m.conf.Timeout
	}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("d.DialContext -> %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.conf.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp.NewClient -> %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err = c.StartTLS(tlsConfig(m.conf.Host)); err != nil {
			return fmt.Errorf("c.StartTLS -> %w", err)
		}
	}
	if m.conf.Username != "" {
		auth := smtp.PlainAuth("", m.conf.Username, m.conf.Password, m.conf.Host)
		if err = c.Auth(auth); err != nil {
			return fmt.Errorf("c.Auth -> %w", err)
		}
	}

	if err = c.Mail(from.Address); err != nil {
		return fmt.Errorf("c.Mail -> %w", err)
	}
	if err = c.Rcpt(rcpt.Address); err != nil {
		return fmt.Errorf("c.Rcpt -> %w", err)
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("c.Data -> %w", err)
	}
	if _, err = wc.Write(compose(from, rcpt, subject, body, time.Now())); err != nil {
		wc.Close()
		return fmt.Errorf("wc.Write -> %w", err)
	}
	if err = wc.Close(); err != nil {
		return fmt.Errorf("wc.Close -> %w", err)
	}

	return c.Quit()
}

func compose(from, to *mail.Address, subject, body string, now time.Time) []byte {
	var buf bytes.Buffer
	buf.WriteString("From: " + from.String() + "\r\n")
	buf.WriteString("To: " + to.String() + "\r\n")
	buf.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	buf.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(strings.ReplaceAll(body, "\r\n", "\n"), "\n", "\r\n"))
	return buf.Bytes()
}
