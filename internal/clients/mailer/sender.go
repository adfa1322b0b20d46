package mailer

import (
	"context"

	"github.com/Abhi1565/JobHunt-backend/internal/config"
	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"
	"golang.org/x/time/rate"
)

type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, email Email) error
}

// SMTPSender dials the relay per message and throttles to the configured rate.
type SMTPSender struct {
	config      config.SMTPConfig
	rateLimiter *rate.Limiter
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		config:      cfg,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.MaxPerSecond), 1),
	}
}

func (s *SMTPSender) Send(ctx context.Context, email Email) error {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.config.AppName, s.config.Sender()); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(email.To); err != nil {
		return errors.Wrapf(err, "invalid recipient address %q", email.To)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Text)
	if email.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	}

	client, err := mail.NewClient(s.config.Host, s.options()...)
	if err != nil {
		return errors.Wrap(err, "error creating smtp client")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrapf(err, "error sending email to %s", email.To)
	}
	return nil
}

func (s *SMTPSender) options() []mail.Option {
	options := []mail.Option{
		mail.WithPort(s.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.config.User),
		mail.WithPassword(s.config.Password),
	}
	if s.config.Secure() {
		options = append(options, mail.WithSSL())
	}
	return options
}
