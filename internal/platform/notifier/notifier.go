// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

/*
Package notifier provides outbound message delivery for the Revu platform.

Its single production use today is delivering confirmation codes during
signup, but the interface is deliberately message-agnostic so future flows
(password reset, moderation notices) can reuse it.

Core Responsibilities:

  - Delivery: SMTP transport in production environments.
  - Development: Log-only delivery so the code is visible without a mailbox.
  - Isolation: Failures here must never fail the business operation.
*/
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Notifier delivers a plain-text message to a single recipient.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Config carries the SMTP settings the notifier needs.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// New selects the delivery mechanism based on configuration.
//
// # Selection
//
// When no SMTP host is configured, delivery degrades to structured logging.
// This keeps local development working with zero mail infrastructure.
func New(cfg Config, logger *slog.Logger) Notifier {
	if cfg.Host == "" {
		logger.Warn("notifier_smtp_not_configured_using_log_delivery")
		return &LogNotifier{logger: logger}
	}
	return &SMTPNotifier{cfg: cfg}
}

// # SMTP Delivery

// SMTPNotifier sends messages through an authenticated SMTP relay.
type SMTPNotifier struct {
	cfg Config
}

/*
Send delivers the message via SMTP with PLAIN authentication.

Parameters:
  - ctx: Honored for cancellation before the dial; net/smtp itself does not
    accept a context, so an in-flight send runs to completion.
  - recipient: Destination address.
  - subject: Message subject line.
  - body: Plain-text message body.

Returns:
  - An error if the relay rejects the message.
*/
func (n *SMTPNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("notifier_send_cancelled: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		n.cfg.From, recipient, subject, body,
	)

	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{recipient}, []byte(message)); err != nil {
		return fmt.Errorf("notifier_smtp_send_failed: %w", err)
	}
	return nil
}

// # Log Delivery

// LogNotifier writes the message to the structured log instead of sending it.
// Intended for development and tests only.
type LogNotifier struct {
	logger *slog.Logger
}

// Send logs the message at INFO level and always succeeds.
func (n *LogNotifier) Send(_ context.Context, recipient, subject, body string) error {
	n.logger.Info("notifier_log_delivery",
		slog.String("recipient", recipient),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
