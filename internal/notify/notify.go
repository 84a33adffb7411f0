// Package notify delivers the applicant's confirmation email.
//
// A Sender is built once per process from configuration and handed to the
// submission service; nothing in this package keeps global transport state.
// SMTPSender talks to a submission server directly, SESSender goes through
// the AWS SES v2 API. Composer renders the message bodies from Liquid
// templates.
package notify

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured is returned by a Sender that has no usable transport.
var ErrNotConfigured = errors.New("email transport not configured")

// Attachment is a file carried with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is one outbound email. From is optional; senders fall back to
// their configured address.
type Message struct {
	From        string
	To          string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Receipt describes an accepted message.
type Receipt struct {
	MessageID string
	Provider  string
	SentAt    time.Time
}

// Sender delivers a message or reports why it could not.
type Sender interface {
	Send(ctx context.Context, msg Message) (*Receipt, error)
}

// Disabled is the Sender used when mail is switched off.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) (*Receipt, error) {
	return nil, ErrNotConfigured
}
