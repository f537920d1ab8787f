// Package events publishes booking lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"

	"github.com/pkordes/hotel-booking/internal/domain"
)

// Payload is the JSON body of a booking event message.
type Payload struct {
	Type             string    `json:"type"`
	BookingID        int64     `json:"booking_id"`
	RoomID           int64     `json:"room_id"`
	GuestID          int64     `json:"guest_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	CheckIn          string    `json:"check_in"`
	CheckOut         string    `json:"check_out"`
	Adults           int       `json:"adults"`
	Children         int       `json:"children"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Publisher sends booking events to one Kafka topic, keyed by room so that
// events for the same room stay ordered within a partition.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher wraps an existing producer.
func NewPublisher(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic}
}

// Dial connects an idempotent synchronous producer to brokers.
func Dial(brokers []string, topic string) (*Publisher, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = "hotel-booking"
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("events.Dial: %w", err)
	}
	return NewPublisher(producer, topic), nil
}

// Publish sends e and waits for the broker acknowledgement.
func (p *Publisher) Publish(ctx context.Context, e domain.BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(payloadOf(e))
	if err != nil {
		return fmt.Errorf("events.Publisher.Publish: marshal: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(e.Booking.RoomID, 10)),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(e.Type)},
		},
		Timestamp: e.OccurredAt,
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("events.Publisher.Publish: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying producer.
func (p *Publisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}

func payloadOf(e domain.BookingEvent) Payload {
	b := e.Booking
	return Payload{
		Type:             e.Type,
		BookingID:        b.ID,
		RoomID:           b.RoomID,
		GuestID:          b.GuestID,
		ConfirmationCode: b.ConfirmationCode,
		CheckIn:          b.CheckIn.Format(time.DateOnly),
		CheckOut:         b.CheckOut.Format(time.DateOnly),
		Adults:           b.Adults,
		Children:         b.Children,
		OccurredAt:       e.OccurredAt,
	}
}
