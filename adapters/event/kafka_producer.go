package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/internal/application/service"
	"github.com/Yeralkhan06/MyProfile3/internal/config"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

const TopicProfileEvents = "profile.events"

// messageWriter is the part of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	ProfileEventsWriter messageWriter
	logger              logger.Logger
}

// NewEventPublisher returns a Kafka publisher, or a no-op one when no brokers are configured.
func NewEventPublisher(cfg config.Config, log logger.Logger) service.EventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info("Kafka brokers not configured, profile events disabled")
		return NoopPublisher{}
	}
	return NewKafkaProducerClient(cfg, log)
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) *KafkaProducerClient {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Kafka.Brokers...),
		Topic:                  TopicProfileEvents,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", cfg.Kafka.Brokers))
	return &KafkaProducerClient{ProfileEventsWriter: writer, logger: log}
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, ev service.ProfileEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal profile event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.ProfileID, 10)),
		Value: value,
	}
	if err := c.ProfileEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write profile event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		if err := c.ProfileEventsWriter.Close(); err != nil {
			c.logger.Warn("Failed to close Kafka writer", zap.Error(err))
		}
	}
	c.logger.Info("Closed Kafka Producers")
}

type NoopPublisher struct{}

func (NoopPublisher) PublishProfileEvent(context.Context, service.ProfileEvent) error { return nil }
