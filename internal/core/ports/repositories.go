package ports

import (
	"context"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
)

// EventPublisher emits invoice lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.InvoiceEvent) error
}

// Attachment is a file sent along with an email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mail is an outgoing message.
type Mail struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mailer sends email.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// LogoStore uploads a logo and returns a URL that templates can reference.
type LogoStore interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// ClientProvider holds the optional outbound collaborators. Nil fields disable the feature.
type ClientProvider struct {
	Mailer    Mailer
	LogoStore LogoStore
	Events    EventPublisher
}
