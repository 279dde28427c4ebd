// Package events publishes booking domain events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

const (
	OrderCreatedQueue = "order.created"
	publishTimeout    = 5 * time.Second
)

type OrderCreated struct {
	OrderID      uuid.UUID       `json:"orderId"`
	UserID       uuid.UUID       `json:"userId"`
	MovieID      uuid.UUID       `json:"movieId"`
	TheaterID    uuid.UUID       `json:"theaterId"`
	Title        string          `json:"title"`
	SelectedDate string          `json:"selectedDate"`
	SelectedTime string          `json:"selectedTime,omitempty"`
	Seats        []string        `json:"seats"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func NewOrderCreated(order *domain.Order) OrderCreated {
	return OrderCreated{
		OrderID:      order.ID,
		UserID:       order.UserID,
		MovieID:      order.MovieID,
		TheaterID:    order.TheaterID,
		Title:        order.Title,
		SelectedDate: order.SelectedDate.Format(domain.DateLayout),
		SelectedTime: order.SelectedTime,
		Seats:        order.Seats,
		Price:        order.Price,
		CreatedAt:    order.CreatedAt,
	}
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, OrderCreated) error { return nil }

func (NoopPublisher) Close() error { return nil }

// AMQPPublisher keeps one connection and channel open and publishes
// persistent messages to a durable queue through the default exchange.
type AMQPPublisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		OrderCreatedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	return &AMQPPublisher{
		conn: conn,
		ch:   ch,
	}, nil
}

func (p *AMQPPublisher) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	msg, err := newPublishing(event, time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(ctx, "", OrderCreatedQueue, false, false, msg)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}

	return p.conn.Close()
}

func newPublishing(event OrderCreated, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.OrderID.String(),
		Type:         OrderCreatedQueue,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}
