// Package mailer abstracts the outgoing email transport. The core never
// talks SMTP directly; it hands a message to a Mailer and moves on.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"kritika/pkg/rabbitmq"
)

// Mailer delivers a single message to one or more recipients.
type Mailer interface {
	Send(subject, body, from string, to []string) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
}

// NewSMTPMailer creates an SMTPMailer for the given relay.
func NewSMTPMailer(host, port, username, password string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
	}
}

// Send delivers the message via SMTP.
func (m *SMTPMailer) Send(subject, body, from string, to []string) error {
	msg := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + strings.Join(to, ", ") + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, from, to, msg); err != nil {
		return fmt.Errorf("failed to send mail via %s: %w", m.Host, err)
	}
	return nil
}

// QueueMailer hands the message to RabbitMQ instead of delivering it
// itself; a consumer drains the queue into a real transport.
type QueueMailer struct {
	mq *rabbitmq.Client
}

// NewQueueMailer creates a QueueMailer on top of an existing client.
func NewQueueMailer(mq *rabbitmq.Client) *QueueMailer {
	return &QueueMailer{mq: mq}
}

// Send publishes the message to the email queue.
func (m *QueueMailer) Send(subject, body, from string, to []string) error {
	return m.mq.PublishEmailMessage(rabbitmq.EmailMessage{
		Subject: subject,
		Body:    body,
		From:    from,
		To:      to,
	})
}

// LogMailer writes the message to the process log. It is the fallback when
// no SMTP relay or broker is configured, for local development.
type LogMailer struct{}

// Send logs the message instead of delivering it.
func (m *LogMailer) Send(subject, body, from string, to []string) error {
	log.Printf("mail (not sent) to=%v from=%s subject=%q body=%q", to, from, subject, body)
	return nil
}
