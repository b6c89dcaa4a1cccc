package queue

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"

	"github.com/ecowash/ecowash-backend/internal/notify"
)

const publishTimeout = 10 * time.Second

// Publisher implements notify.Notifier by publishing events to
// NotificationQueue.  Publishing is best effort: failures are logged and
// the event is dropped.
type Publisher struct {
	url string
	wg  sync.WaitGroup
}

func NewPublisher(url string) *Publisher { return &Publisher{url: url} }

// Notify publishes in the background so a slow broker never holds up the
// HTTP response.
func (p *Publisher) Notify(_ context.Context, ev notify.Event) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.Publish(ctx, ev); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"kind":           ev.Kind,
				"reservation_id": ev.Reservation.ID,
			}).Error("rabbitmq: publish failed")
		}
	}()
}

// Wait blocks until in-flight publishes finish.
func (p *Publisher) Wait() { p.wg.Wait() }

// Publish sends one persistent message.  Each call uses its own
// connection; notification volume is a handful per day.
func (p *Publisher) Publish(ctx context.Context, ev notify.Event) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(5 * time.Second)})
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if err := declare(ch); err != nil {
		return err
	}

	now := time.Now()
	body, err := encodeEvent(ev, now)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx,
		"",                // default exchange
		NotificationQueue, // routing key = queue name
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    now.UTC(),
			Type:         string(ev.Kind),
			Body:         body,
		})
}

// declare ensures the durable queue exists.  Idempotent.
func declare(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(NotificationQueue, true, false, false, false, nil)
	return err
}
