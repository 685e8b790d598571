package service

import (
	"context"
	"fmt"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	jsoniter "github.com/json-iterator/go"
	"github.com/nats-io/nats.go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StreamPublisher is the JetStream subset used to publish click events.
type StreamPublisher interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// ClickPublisher records click events by publishing them to JetStream.
type ClickPublisher struct {
	js StreamPublisher
}

// NewClickPublisher creates a new click event publisher.
func NewClickPublisher(js StreamPublisher) *ClickPublisher {
	return &ClickPublisher{js: js}
}

// Record publishes the event. The event id doubles as the JetStream message id
// so the stream drops duplicate publishes.
func (p *ClickPublisher) Record(ctx context.Context, event *model.ClickEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode click event: %w", err)
	}

	if _, err := p.js.Publish(model.ClickStreamSubject, data, nats.Context(ctx), nats.MsgId(event.ID)); err != nil {
		return fmt.Errorf("publish click event: %w", err)
	}
	return nil
}
