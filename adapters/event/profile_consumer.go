package event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/internal/application/service"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

const (
	ProfileConsumerGroup = "profile-resume-archiver"

	defaultMaxAttempts = 3
	defaultBackoff     = time.Second
)

// messageReader is the part of *kafka.Reader the consumer needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ProfileEventHandler processes one decoded event. Failed calls are retried with
// exponential backoff. A message that still fails is left uncommitted, but the
// reader moves on, so the next successful commit also covers it. It is only
// redelivered when the group restarts before that happens.
type ProfileEventHandler func(ctx context.Context, ev service.ProfileEvent) error

type ProfileConsumer struct {
	reader      messageReader
	handler     ProfileEventHandler
	logger      logger.Logger
	maxAttempts int
	backoff     time.Duration
}

func NewProfileReader(brokers []string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    TopicProfileEvents,
		GroupID:  ProfileConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

func NewProfileConsumer(reader messageReader, handler ProfileEventHandler, log logger.Logger) *ProfileConsumer {
	return &ProfileConsumer{
		reader:      reader,
		handler:     handler,
		logger:      log,
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
	}
}

// Run consumes until ctx is cancelled.
func (c *ProfileConsumer) Run(ctx context.Context) error {
	c.logger.Info("Worker listening", zap.String("topic", TopicProfileEvents), zap.String("group", ProfileConsumerGroup))
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("Failed to read message from Kafka", err)
			continue
		}
		c.handle(ctx, msg)
	}
}

func (c *ProfileConsumer) handle(ctx context.Context, msg kafka.Message) {
	log := c.logger.With(zap.String("topic", msg.Topic), zap.Int64("offset", msg.Offset), zap.ByteString("key", msg.Key))

	var ev service.ProfileEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		log.Warn("Skipping undecodable event", zap.Error(err))
		c.commit(ctx, msg, log)
		return
	}
	if ev.EventType != service.EventTypeProfileUpdated {
		log.Debug("Ignoring event", zap.String("event_type", ev.EventType))
		c.commit(ctx, msg, log)
		return
	}

	if err := c.process(ctx, ev, log); err != nil {
		log.Error("Giving up on profile event", err, zap.Int64("profile_id", ev.ProfileID), zap.Int("attempts", c.maxAttempts))
		return
	}
	c.commit(ctx, msg, log)
}

func (c *ProfileConsumer) process(ctx context.Context, ev service.ProfileEvent, log logger.Logger) error {
	wait := c.backoff
	var err error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err = c.handler(ctx, ev); err == nil {
			return nil
		}
		if attempt == c.maxAttempts {
			break
		}
		log.Warn("Profile event failed, retrying", zap.Int("attempt", attempt), zap.Duration("backoff", wait), zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return err
}

func (c *ProfileConsumer) commit(ctx context.Context, msg kafka.Message, log logger.Logger) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
