// Package mailer delivers transactional email: directly through Mailgun,
// through a RabbitMQ queue drained by cmd/email_worker, or to the log.
package mailer

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Message is a rendered email. HTML is optional. Template and Data, when
// set, name the embedded template it was rendered from so the queue can
// ship the job unrendered.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string

	Template string
	Data     map[string]any
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Log writes messages to the logger instead of sending them.
type Log struct {
	Logger *logrus.Logger
}

func (l Log) Send(_ context.Context, msg Message) error {
	l.Logger.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Info(msg.Text)
	return nil
}

// Publisher is the part of helpers.RabbitPublisher the queue mailer needs.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Queue hands messages to the email worker.
type Queue struct {
	Pub Publisher
}

func (q Queue) Send(ctx context.Context, msg Message) error {
	if q.Pub == nil {
		return errors.New("mail queue not configured")
	}
	if msg.Template != "" {
		return q.Pub.PublishJSON(ctx, EmailJob{To: msg.To, Template: msg.Template, Data: msg.Data})
	}
	return q.Pub.PublishJSON(ctx, EmailJob{To: msg.To, Subject: msg.Subject, Text: msg.Text, HTML: msg.HTML})
}
