// Package event publishes booking outcome events for the external
// notification service. Delivery is at-least-once; the booking flow never
// waits for consumer acknowledgment.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
	"github.com/yigitentrk/show-booking-system/internal/domain"
)

const (
	TopicBookingConfirmed = "booking.confirmed"
	TopicBookingFailed    = "booking.failed"
)

type RedisPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

func NewRedisPublisher(client redis.UniversalClient, logger *slog.Logger) (*RedisPublisher, error) {
	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: client,
	}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating redis stream publisher: %w", err)
	}

	return &RedisPublisher{
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (p *RedisPublisher) PublishBookingConfirmed(ctx context.Context, event domain.BookingConfirmedEvent) error {
	p.logger.Info("publishing booking confirmed event",
		"booking_id", event.BookingID,
		"booking_reference", event.BookingReference,
		"topic", TopicBookingConfirmed,
	)

	return p.publish(TopicBookingConfirmed, event)
}

func (p *RedisPublisher) PublishBookingFailed(ctx context.Context, event domain.BookingFailedEvent) error {
	p.logger.Info("publishing booking failed event",
		"user_id", event.UserID,
		"show_id", event.ShowID,
		"topic", TopicBookingFailed,
	)

	return p.publish(TopicBookingFailed, event)
}

func (p *RedisPublisher) publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)

	return p.publisher.Publish(topic, msg)
}

func (p *RedisPublisher) Close() error {
	return p.publisher.Close()
}
