package mq

import (
	"context"
	"fmt"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Publisher sends image tasks to the exchange. A channel is not safe for
// concurrent publishing, so access to it is serialized.
type Publisher struct {
	mu sync.Mutex
	ch amqpPublisher
}

func NewPublisher(conn *Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open publisher channel: %w", err)
	}
	return &Publisher{ch: ch}, nil
}

func (v *Publisher) PublishUpload(ctx context.Context, task UploadTask) error {
	return v.publish(ctx, UploadRoutingKey, task)
}

func (v *Publisher) PublishDelete(ctx context.Context, task DeleteTask) error {
	return v.publish(ctx, DeleteRoutingKey, task)
}

func (v *Publisher) publish(ctx context.Context, key string, task any) error {
	body, err := jsoniter.Marshal(task)
	if err != nil {
		return fmt.Errorf("encode %s task: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.ch.PublishWithContext(ctx, ExchangeName, key, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	}); err != nil {
		return fmt.Errorf("publish %s task: %w", key, err)
	}

	return nil
}
