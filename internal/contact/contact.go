// Package contact relays contact-form submissions to the site owner by email.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/Zachkp/portfolio/internal/logger"
)

var (
	// ErrNotConfigured is returned when SMTP credentials are missing.
	ErrNotConfigured = errors.New("SMTP credentials not configured")
	// ErrInvalidMessage wraps every validation failure.
	ErrInvalidMessage = errors.New("invalid contact message")
)

const (
	maxNameLen = 100
	maxBodyLen = 5000
)

// Message is one contact-form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Validate trims the fields and checks them.
func (m *Message) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Body = strings.TrimSpace(m.Body)

	switch {
	case m.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidMessage)
	case len(m.Name) > maxNameLen:
		return fmt.Errorf("%w: name is too long", ErrInvalidMessage)
	case strings.ContainsAny(m.Name, "\r\n"):
		return fmt.Errorf("%w: name contains a line break", ErrInvalidMessage)
	case m.Body == "":
		return fmt.Errorf("%w: message is required", ErrInvalidMessage)
	case len(m.Body) > maxBodyLen:
		return fmt.Errorf("%w: message is too long", ErrInvalidMessage)
	}

	addr, err := mail.ParseAddress(m.Email)
	if err != nil || addr.Address != m.Email {
		return fmt.Errorf("%w: email address is not valid", ErrInvalidMessage)
	}
	return nil
}

// Relay delivers contact messages.
type Relay interface {
	Send(ctx context.Context, msg Message) error
}

// Config is the SMTP account the relay sends through.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPRelay sends messages through an authenticated SMTP server.
type SMTPRelay struct {
	cfg  Config
	send sendFunc
}

// NewSMTPRelay returns a relay for cfg. When To is empty mail goes to User.
func NewSMTPRelay(cfg Config) *SMTPRelay {
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	return &SMTPRelay{cfg: cfg, send: smtp.SendMail}
}

// Configured reports whether credentials are present.
func (r *SMTPRelay) Configured() bool {
	return r.cfg.User != "" && r.cfg.Password != ""
}

// Send validates msg and mails it to the owner.
func (r *SMTPRelay) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if !r.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := r.cfg.Host + ":" + strconv.Itoa(r.cfg.Port)
	auth := smtp.PlainAuth("", r.cfg.User, r.cfg.Password, r.cfg.Host)
	if err := r.send(addr, auth, r.cfg.User, []string{r.cfg.To}, r.compose(msg)); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}

	logger.Info().Str("from", msg.Email).Msg("contact email sent")
	return nil
}

func (r *SMTPRelay) compose(msg Message) []byte {
	var b strings.Builder
	b.WriteString("To: " + r.cfg.To + "\r\n")
	b.WriteString("Subject: Portfolio Contact: " + msg.Name + "\r\n")
	b.WriteString("From: " + r.cfg.User + "\r\n")
	b.WriteString("Reply-To: " + msg.Email + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("New contact form submission from your portfolio:\r\n\r\n")
	b.WriteString("Name: " + msg.Name + "\r\n")
	b.WriteString("Email: " + msg.Email + "\r\n")
	b.WriteString("Message:\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n") + "\r\n")
	b.WriteString("\r\n---\r\nSent from your portfolio contact form\r\n")
	return []byte(b.String())
}
