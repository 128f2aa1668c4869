package notify

import (
	"context"
	"crypto/tls"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/room-scheduler/internal/config"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers one message synchronously.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPSender struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	if cfg.Insecure {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true, ServerName: cfg.Host}
	}

	return &SMTPSender{
		dialer:   d,
		from:     cfg.User,
		fromName: cfg.From,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	return s.dialer.DialAndSend(m)
}

// LogSender is used when no SMTP relay is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail relay disabled, message not sent")
	return nil
}
