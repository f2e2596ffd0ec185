package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/config"
	"github.com/rasulq/homework-bot/internal/models"
)

type EventPublisher interface {
	PublishSubmissionCreated(ctx context.Context, event *models.SubmissionCreatedEvent) error
	PublishSubmissionGraded(ctx context.Context, event *models.SubmissionGradedEvent) error
	Close() error
}

type rabbitMQPublisher struct {
	conn              *amqp091.Connection
	channel           *amqp091.Channel
	exchange          string
	createdRoutingKey string
	gradedRoutingKey  string
	logger            zerolog.Logger
}

func NewRabbitMQPublisher(cfg config.RabbitMQConfig, logger zerolog.Logger) (EventPublisher, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	bindings := []struct {
		queue      string
		routingKey string
	}{
		{cfg.CreatedQueue, cfg.CreatedRoutingKey},
		{cfg.GradedQueue, cfg.GradedRoutingKey},
	}

	for _, b := range bindings {
		queue, err := channel.QueueDeclare(
			b.queue, // name
			true,    // durable
			false,   // delete when unused
			false,   // exclusive
			false,   // no-wait
			nil,     // arguments
		)
		if err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", b.queue, err)
		}

		err = channel.QueueBind(
			queue.Name,   // queue name
			b.routingKey, // routing key
			cfg.Exchange, // exchange
			false,        // no-wait
			nil,          // arguments
		)
		if err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to bind queue %s: %w", b.queue, err)
		}
	}

	logger.Info().
		Str("exchange", cfg.Exchange).
		Str("created_queue", cfg.CreatedQueue).
		Str("graded_queue", cfg.GradedQueue).
		Msg("Connected to RabbitMQ")

	return &rabbitMQPublisher{
		conn:              conn,
		channel:           channel,
		exchange:          cfg.Exchange,
		createdRoutingKey: cfg.CreatedRoutingKey,
		gradedRoutingKey:  cfg.GradedRoutingKey,
		logger:            logger,
	}, nil
}

func (c *rabbitMQPublisher) PublishSubmissionCreated(ctx context.Context, event *models.SubmissionCreatedEvent) error {
	if err := c.publish(ctx, c.createdRoutingKey, event); err != nil {
		return err
	}

	c.logger.Info().
		Str("event_id", event.EventID).
		Int64("submission_id", event.SubmissionID).
		Msg("Submission created event published")

	return nil
}

func (c *rabbitMQPublisher) PublishSubmissionGraded(ctx context.Context, event *models.SubmissionGradedEvent) error {
	if err := c.publish(ctx, c.gradedRoutingKey, event); err != nil {
		return err
	}

	c.logger.Info().
		Str("event_id", event.EventID).
		Int64("submission_id", event.SubmissionID).
		Int("grade", event.Grade).
		Msg("Submission graded event published")

	return nil
}

func (c *rabbitMQPublisher) publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		c.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		},
	)

	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (c *rabbitMQPublisher) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to close RabbitMQ channel")
		}
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	return nil
}
