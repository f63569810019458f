package events

import (
	"context"
	"strings"
	"time"

	kgo "github.com/segmentio/kafka-go"
	"github.com/rs/zerolog"
)

type Handler func(ctx context.Context, topic string, key, value []byte) error

type Consumer struct {
	reader *kgo.Reader
	handle Handler
	log    zerolog.Logger
}

func NewConsumer(brokers, groupID, topic string, h Handler, log zerolog.Logger) *Consumer {
	return &Consumer{
		reader: kgo.NewReader(kgo.ReaderConfig{
			Brokers:        strings.Split(brokers, ","),
			GroupID:        groupID,
			Topic:          topic,
			MinBytes:       10e3,
			MaxBytes:       10e6,
			CommitInterval: time.Second,
		}),
		handle: h,
		log:    log,
	}
}

// Run consumes until ctx is cancelled. Handler errors are logged and the
// message is still committed; redelivery would hit the same error again.
func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		_ = c.reader.Close()
	}()

	c.log.Info().
		Str("group", c.reader.Config().GroupID).
		Str("topic", c.reader.Config().Topic).
		Msg("consumer started")

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info().Msg("consumer shutting down")
				return nil
			}
			c.log.Error().Err(err).Msg("fetch error")
			time.Sleep(time.Second)
			continue
		}

		if c.handle != nil {
			if e := c.handle(ctx, m.Topic, m.Key, m.Value); e != nil {
				c.log.Error().Err(e).Str("topic", m.Topic).Msg("handler error")
			}
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.log.Error().Err(err).Msg("commit error")
		}
	}
}
