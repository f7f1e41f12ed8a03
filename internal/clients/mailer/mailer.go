package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"regexp"

	"github.com/SscSPs/invoice_wizard/internal/core/ports"
	"github.com/SscSPs/invoice_wizard/internal/platform/config"
	"gopkg.in/gomail.v2"
)

var htmlTag = regexp.MustCompile("<[^>]+>")

// Client sends invoices over SMTP.
type Client struct {
	from     string
	fromName string
	send     func(msgs ...*gomail.Message) error
}

var _ ports.Mailer = (*Client)(nil)

// New dials cfg.Host for every send.
func New(cfg config.SMTPConfig) *Client {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}

	return &Client{
		from:     cfg.From,
		fromName: cfg.FromName,
		send:     dialer.DialAndSend,
	}
}

// NewWithSender sends through s instead of dialing an SMTP server.
func NewWithSender(from, fromName string, s gomail.Sender) *Client {
	return &Client{
		from:     from,
		fromName: fromName,
		send: func(msgs ...*gomail.Message) error {
			return gomail.Send(s, msgs...)
		},
	}
}

// Send delivers mail with its attachments.
func (c *Client) Send(ctx context.Context, mail ports.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage(
		gomail.SetCharset("UTF-8"),
		gomail.SetEncoding(gomail.Base64),
	)
	msg.SetAddressHeader("From", c.from, c.fromName)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)

	if htmlTag.MatchString(mail.Body) {
		msg.SetBody("text/html", mail.Body)
	} else {
		msg.SetBody("text/plain", mail.Body)
	}

	for _, attachment := range mail.Attachments {
		data := attachment.Data
		msg.Attach(attachment.Filename,
			gomail.SetHeader(map[string][]string{"Content-Type": {attachment.ContentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}

	if err := c.send(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
