package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("acl.lib.mailer")

type Config struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
	// display name used in the From header
	FromName string `json:"from_name"`
}

func (c Config) Configured() bool {
	return c.Server != "" && c.Port != 0 && c.EmailAddress != ""
}

func (c Config) addr() string {
	return fmt.Sprintf("%s:%d", c.Server, c.Port)
}

type Message struct {
	To      []string
	Subject string
	Text    string
	// optional html alternative of Text
	HTML string
}

// Send delivers a message through the configured smtp server. Servers that
// don't support AUTH are retried without credentials.
func Send(ctx context.Context, cfg Config, msg Message) error {
	ctx, span := tracer.Start(ctx, "Send")
	defer span.End()
	span.SetAttributes(
		attribute.String("subject", msg.Subject),
		attribute.Int("recipients", len(msg.To)),
	)

	if !cfg.Configured() {
		return fmt.Errorf("send mail: smtp is not configured")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("send mail: no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	mail := email.NewEmail()
	if cfg.FromName != "" {
		mail.From = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.EmailAddress)
	} else {
		mail.From = cfg.EmailAddress
	}
	mail.To = msg.To
	mail.Subject = msg.Subject
	mail.Text = []byte(msg.Text)
	if msg.HTML != "" {
		mail.HTML = []byte(msg.HTML)
	}

	err := mail.Send(
		cfg.addr(),
		smtp.PlainAuth("", cfg.EmailAddress, cfg.Password, cfg.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(cfg.addr(), nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
