package mq

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Connection is the single broker connection shared by the publisher and
// every consumer of the process.
type Connection struct {
	conn *amqp091.Connection
}

func Dial(url string) (*Connection, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial message broker: %w", err)
	}

	go func() {
		if reason, ok := <-conn.NotifyClose(make(chan *amqp091.Error, 1)); ok && reason != nil {
			log.Error().Err(reason).Msg("Message broker connection closed unexpectedly.")
		}
	}()

	return &Connection{conn: conn}, nil
}

func (v *Connection) Channel() (*amqp091.Channel, error) {
	return v.conn.Channel()
}

// DeclareTopology declares the image exchange and binds both task queues.
// Declaring is idempotent so every process does it on boot.
func (v *Connection) DeclareTopology() error {
	ch, err := v.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", ExchangeName, err)
	}

	bindings := map[string]string{
		UploadQueue: UploadRoutingKey,
		DeleteQueue: DeleteRoutingKey,
	}
	for queue, key := range bindings {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
		if err := ch.QueueBind(queue, key, ExchangeName, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", queue, err)
		}
	}

	return nil
}

func (v *Connection) Close() error {
	if v.conn.IsClosed() {
		return nil
	}
	return v.conn.Close()
}
