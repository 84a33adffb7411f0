package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fbcbank/card-intake/internal/pkg/logger"
)

// SMTPConfig configures an SMTPSender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Secure dials with TLS from the start (port 465 style). Otherwise the
	// connection is upgraded with STARTTLS when the server offers it.
	Secure  bool
	Timeout time.Duration
}

// SMTPSender submits mail to an SMTP server.
type SMTPSender struct {
	cfg       SMTPConfig
	tlsConfig *tls.Config
}

// NewSMTPSender creates a sender. The configuration is fixed for the life
// of the sender.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPSender{
		cfg:       cfg,
		tlsConfig: &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12},
	}
}

// Send delivers a single message.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (*Receipt, error) {
	if s.cfg.Host == "" {
		return nil, ErrNotConfigured
	}

	from := msg.From
	if from == "" {
		from = s.cfg.From
	}
	sender, err := mail.ParseAddress(from)
	if err != nil {
		return nil, fmt.Errorf("parse from address %q: %w", from, err)
	}
	rcpt, err := mail.ParseAddress(msg.To)
	if err != nil {
		return nil, fmt.Errorf("parse recipient address: %w", err)
	}

	domain := "localhost"
	if i := strings.LastIndex(sender.Address, "@"); i >= 0 {
		domain = sender.Address[i+1:]
	}
	messageID := fmt.Sprintf("%s@%s", uuid.New().String(), domain)

	body, err := buildMIME(from, msg, messageID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("build message: %w", err)
	}

	if err := s.sendSMTP(ctx, sender.Address, rcpt.Address, body); err != nil {
		return nil, err
	}

	log.Printf("[SMTP] Sent to %s (id: %s)", logger.RedactEmail(rcpt.Address), messageID)
	return &Receipt{MessageID: messageID, Provider: "smtp", SentAt: time.Now()}, nil
}

// sendSMTP performs one SMTP transaction.
func (s *SMTPSender) sendSMTP(ctx context.Context, from, to string, msg []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	dialer := &net.Dialer{Timeout: s.cfg.Timeout}

	var conn net.Conn
	var err error
	if s.cfg.Secure {
		td := &tls.Dialer{NetDialer: dialer, Config: s.tlsConfig}
		conn, err = td.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("SMTP connect to %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SMTP client: %w", err)
	}
	defer c.Close()

	if !s.cfg.Secure {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(s.tlsConfig); err != nil {
				return fmt.Errorf("STARTTLS: %w", err)
			}
		}
	}
	if s.cfg.Username != "" {
		if err := c.Auth(&plainAuth{user: s.cfg.Username, pass: s.cfg.Password}); err != nil {
			return fmt.Errorf("AUTH: %w", err)
		}
	}

	if err := c.Mail(from); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("DATA close: %w", err)
	}
	return c.Quit()
}

// plainAuth implements AUTH PLAIN without net/smtp's refusal to send
// credentials over a connection it does not consider encrypted; the
// transport security decision is made by Secure/STARTTLS above.
type plainAuth struct {
	user, pass string
}

func (a *plainAuth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	return "PLAIN", []byte("\x00" + a.user + "\x00" + a.pass), nil
}

func (a *plainAuth) Next(_ []byte, more bool) ([]byte, error) {
	if more {
		return nil, fmt.Errorf("unexpected server challenge")
	}
	return nil, nil
}
