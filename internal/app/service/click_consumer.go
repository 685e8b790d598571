package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	apprepository "github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	consumerBatchSize = 10
	consumerMaxWait   = 5 * time.Second
	consumerRetryWait = time.Second
)

// ClickConsumer drains the click stream into the click repository.
type ClickConsumer struct {
	js     nats.JetStreamContext
	logger *zap.Logger
	repo   apprepository.ClickEventRepository

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClickConsumer creates a new click event consumer.
func NewClickConsumer(js nats.JetStreamContext, logger *zap.Logger, repo apprepository.ClickEventRepository) *ClickConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClickConsumer{js: js, logger: logger, repo: repo}
}

// EnsureStream creates the click stream when it does not exist yet.
func EnsureStream(js nats.JetStreamContext) error {
	if _, err := js.StreamInfo(model.ClickStreamName); err == nil {
		return nil
	}
	_, err := js.AddStream(&nats.StreamConfig{
		Name:       model.ClickStreamName,
		Subjects:   []string{model.ClickStreamSubject},
		MaxBytes:   model.ClickStreamMaxBytes,
		Duplicates: 2 * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("create stream: %w", err)
	}
	return nil
}

// Start binds the durable consumer and consumes until ctx is cancelled or Stop is called.
func (c *ClickConsumer) Start(ctx context.Context) error {
	if err := EnsureStream(c.js); err != nil {
		return err
	}

	if _, err := c.js.ConsumerInfo(model.ClickStreamName, model.ClickConsumerName); err != nil {
		_, err = c.js.AddConsumer(model.ClickStreamName, &nats.ConsumerConfig{
			Durable:   model.ClickConsumerName,
			AckPolicy: nats.AckExplicitPolicy,
		})
		if err != nil {
			return fmt.Errorf("create consumer: %w", err)
		}
	}

	sub, err := c.js.PullSubscribe(model.ClickStreamSubject, model.ClickConsumerName, nats.Bind(model.ClickStreamName, model.ClickConsumerName))
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	ctx, c.cancel = context.WithCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.consume(ctx, sub)
	}()

	c.logger.Info("click consumer started", zap.String("stream", model.ClickStreamName))
	return nil
}

// Stop cancels consumption and waits for the in-flight batch to finish.
func (c *ClickConsumer) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
}

func (c *ClickConsumer) consume(ctx context.Context, sub *nats.Subscription) {
	defer func() {
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			c.logger.Warn("failed to unsubscribe click consumer", zap.Error(err))
		}
	}()

	for ctx.Err() == nil {
		fetchCtx, cancel := context.WithTimeout(ctx, consumerMaxWait)
		msgs, err := sub.Fetch(consumerBatchSize, nats.Context(fetchCtx))
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if !errors.Is(err, nats.ErrTimeout) && !errors.Is(err, context.DeadlineExceeded) {
				c.logger.Error("failed to fetch click events", zap.Error(err))
				time.Sleep(consumerRetryWait)
			}
			continue
		}

		for _, msg := range msgs {
			c.handle(ctx, msg)
		}
	}
}

func (c *ClickConsumer) handle(ctx context.Context, msg *nats.Msg) {
	var event model.ClickEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.logger.Error("dropping undecodable click event", zap.Error(err))
		_ = msg.Term()
		return
	}

	if err := c.repo.Create(ctx, &event); err != nil {
		c.logger.Error("failed to store click event",
			zap.String("id", event.ID),
			zap.Uint("ad_id", event.AdID),
			zap.Error(err))
		_ = msg.Nak()
		return
	}

	c.logger.Debug("click event stored",
		zap.String("id", event.ID),
		zap.Uint("ad_id", event.AdID),
		zap.Time("created_at", event.CreatedAt),
	)
	_ = msg.Ack()
}
