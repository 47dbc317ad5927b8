package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/config"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer"
	mailtpl "github.com/oksasatya/bootcamp-directory/pkg/mailer/templates"
)

const sendTimeout = 15 * time.Second

var errBadJob = errors.New("bad email job")

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	// Prefetch keeps dispatch fair across workers
	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		logger.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			settle(ctx, logger, mg, msg)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down...")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// settle processes one delivery: malformed jobs are dropped, failed sends
// are requeued.
func settle(ctx context.Context, logger *logrus.Logger, m mailer.Mailer, msg amqp.Delivery) {
	err := process(ctx, m, msg.Body)
	switch {
	case err == nil:
		_ = msg.Ack(false)
	case errors.Is(err, errBadJob):
		helpers.LogError(logger, "dropping email job", err, nil)
		_ = msg.Nack(false, false)
	default:
		helpers.LogWarn(logger, "send failed, requeueing", err, nil)
		_ = msg.Nack(false, true)
	}
}

func process(ctx context.Context, m mailer.Mailer, body []byte) error {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return errors.Join(errBadJob, err)
	}
	if job.To == "" {
		return errors.Join(errBadJob, errors.New("missing recipient"))
	}
	msg := job.Message()
	if job.Template != "" {
		subject, text, html, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return errors.Join(errBadJob, err)
		}
		msg.Subject, msg.Text, msg.HTML = subject, text, html
	}

	sctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return m.Send(sctx, msg)
}
