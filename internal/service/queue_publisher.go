// Package queue_publisher provides functions to publish domain events
// to RabbitMQ. Errors are logged and returned to allow callers to
// ignore failures without interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/hotel-booking/internal/queue"
)

// PublishBookingConfirmed publishes a BookingConfirmedEvent to the
// booking.confirmed queue. Messages are marked persistent.
func PublishBookingConfirmed(ctx context.Context, event q.BookingConfirmedEvent) error {
	return publish(ctx, q.ConfirmedQueueName, event)
}

// PublishBookingCancelled publishes a BookingCancelledEvent to the
// booking.cancelled queue. Messages are marked persistent.
func PublishBookingCancelled(ctx context.Context, event q.BookingCancelledEvent) error {
	return publish(ctx, q.CancelledQueueName, event)
}

// publish opens a short-lived connection, declares the target queue
// (idempotent, durable) and sends the event as persistent JSON. The
// function never panics; every error is logged and returned so the
// caller can choose to ignore it.
func publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists. Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
