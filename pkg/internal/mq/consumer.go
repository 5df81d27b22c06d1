package mq

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ConsumerConfig struct {
	Queue    string
	Workers  int
	Prefetch int
	Retry    RetryPolicy
}

type Handler[T any] func(ctx context.Context, task T) error

// Consumer decodes tasks of type T from one queue and acknowledges them
// by hand once the handler is done with them.
type Consumer[T any] struct {
	config ConsumerConfig
	handle Handler[T]
}

func NewConsumer[T any](config ConsumerConfig, handle Handler[T]) *Consumer[T] {
	config.Workers = max(config.Workers, 1)
	config.Prefetch = max(config.Prefetch, config.Workers)
	return &Consumer[T]{config: config, handle: handle}
}

// Run blocks until ctx is done or the broker closes the delivery channel.
func (v *Consumer[T]) Run(ctx context.Context, conn *Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open consumer channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(v.config.Prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos on %s: %w", v.config.Queue, err)
	}
	deliveries, err := ch.Consume(v.config.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", v.config.Queue, err)
	}

	log.Info().
		Str("queue", v.config.Queue).
		Int("workers", v.config.Workers).
		Msg("Consuming tasks from message broker...")

	var wg sync.WaitGroup
	for i := 0; i < v.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case delivery, ok := <-deliveries:
					if !ok {
						return
					}
					v.process(ctx, delivery)
				}
			}
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("deliveries of %s were closed by the broker", v.config.Queue)
}

func (v *Consumer[T]) process(ctx context.Context, delivery amqp091.Delivery) {
	var task T
	if err := jsoniter.Unmarshal(delivery.Body, &task); err != nil {
		log.Error().Err(err).Str("queue", v.config.Queue).Msg("An error occurred when decoding task, dropping it.")
		_ = delivery.Reject(false)
		return
	}
	if err := validate.Struct(task); err != nil {
		log.Error().Err(err).Str("queue", v.config.Queue).Msg("Received an invalid task, dropping it.")
		_ = delivery.Reject(false)
		return
	}

	err := v.config.Retry.Do(ctx, func(ctx context.Context) error {
		return v.handle(ctx, task)
	})

	switch {
	case err == nil:
		_ = delivery.Ack(false)
	case ctx.Err() != nil:
		_ = delivery.Nack(false, true)
	case IsPermanent(err):
		log.Error().Err(err).Str("queue", v.config.Queue).Msg("An error occurred when handling task, it will not be retried.")
		_ = delivery.Reject(false)
	default:
		log.Error().Err(err).
			Str("queue", v.config.Queue).
			Bool("redelivered", delivery.Redelivered).
			Msg("An error occurred when handling task.")
		_ = delivery.Nack(false, !delivery.Redelivered)
	}
}
