package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

// Publisher delivers activity events.  Failures never affect the user-facing
// request; implementations log and return them.
type Publisher interface {
	Publish(ctx context.Context, ev ActivityEvent) error
}

// Noop discards every event.  Used when EVENTS_ENABLED is false.
type Noop struct{}

func (Noop) Publish(context.Context, ActivityEvent) error { return nil }

// AMQPPublisher publishes persistent JSON messages to ActivityQueueName.
// Each publish dials its own connection; activity volume is a handful of
// messages per user action.
type AMQPPublisher struct {
	URL string
}

func NewAMQPPublisher(url string) *AMQPPublisher { return &AMQPPublisher{URL: url} }

func (p *AMQPPublisher) Publish(ctx context.Context, ev ActivityEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		ActivityQueueName, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	); err != nil {
		log.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", ActivityQueueName, false, false, pub); err != nil {
		log.WithError(err).WithField("kind", ev.Kind).Warn("rabbitmq: publish failed")
		return err
	}
	return nil
}

// pending tracks publishes started by Emit until they finish.
var pending sync.WaitGroup

// Emit publishes ev in the background with its own timeout so that a slow
// broker never delays the response.
func Emit(p Publisher, ev ActivityEvent) {
	if p == nil {
		return
	}
	pending.Add(1)
	go func() {
		defer pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = p.Publish(ctx, ev)
	}()
}

// Drain blocks until every event handed to Emit has been published (or
// given up on), or until ctx is done.  Call it after the HTTP server has
// stopped accepting requests.
func Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
