package queue

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/iliyamo/fyyur-booking/internal/logging"
)

// DefaultQueue is the durable queue directory events are routed to.
const DefaultQueue = "directory.events"

// Publisher sends DirectoryEvents to RabbitMQ.  A circuit breaker sits in
// front of the broker: after a few consecutive failures publishing is
// skipped for a cool-down period instead of dialling on every request.
type Publisher struct {
	url     string
	queue   string
	breaker *gobreaker.CircuitBreaker[struct{}]
	dial    func(ctx context.Context, url string) (channel, func(), error)
}

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// NewPublisher builds a Publisher for the broker at url.  An empty queue
// name selects DefaultQueue.
func NewPublisher(url, queue string) *Publisher {
	if queue == "" {
		queue = DefaultQueue
	}
	p := &Publisher{url: url, queue: queue, dial: dialChannel}
	p.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "rabbitmq-publisher",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("publisher circuit state changed")
		},
	})
	return p
}

// dialTimeout bounds the connect and handshake when ctx has no deadline.
const dialTimeout = 30 * time.Second

// dialChannel connects within whatever is left of ctx's deadline.
func dialChannel(ctx context.Context, url string) (channel, func(), error) {
	timeout := dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if timeout <= 0 {
		return nil, nil, context.DeadlineExceeded
	}
	conn, err := amqp.DialConfig(url, amqp.Config{
		Dial:      amqp.DefaultDial(timeout),
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return ch, func() {
		_ = ch.Close()
		_ = conn.Close()
	}, nil
}

// Publish sends ev to the directory queue as a persistent JSON message.
// While the breaker is open it returns gobreaker.ErrOpenState immediately.
func (p *Publisher) Publish(ctx context.Context, ev DirectoryEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = p.breaker.Execute(func() (struct{}, error) {
		ch, closeFn, err := p.dial(ctx, p.url)
		if err != nil {
			return struct{}{}, err
		}
		defer closeFn()

		// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
		if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, ch.PublishWithContext(ctx,
			"",      // default exchange
			p.queue, // routing key = queue name
			false,   // mandatory
			false,   // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    ev.ID,
				Type:         ev.Type,
				Timestamp:    time.Now().UTC(),
				Body:         body,
			})
	})
	if errors.Is(err, gobreaker.ErrOpenState) {
		logging.Debug().Str("event", ev.Type).Msg("publisher circuit open, event dropped")
	}
	return err
}
