// Package pubsub publishes invoice lifecycle events to Google Pub/Sub for
// external consumers. Internal Peppol delivery jobs travel over pgmq, not
// over this topic.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"app/internal/config"

	"cloud.google.com/go/pubsub"
)

// Publisher publishes invoice lifecycle events.
type Publisher interface {
	PublishInvoiceEvent(ctx context.Context, event InvoiceEvent) (string, error)
}

// PubSubPublisher publishes invoice events to a Google Pub/Sub topic.
type PubSubPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPublisher creates a PubSubPublisher for the configured invoice topic.
// The topic handle is created once and reused across publishes.
func NewPublisher(ctx context.Context, cfg *config.Config) (*PubSubPublisher, error) {
	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	return &PubSubPublisher{client: client, topic: client.Topic(cfg.PubSubInvoiceTopic)}, nil
}

// PublishInvoiceEvent serializes the event, publishes it with the event
// type as a message attribute so subscribers can filter without decoding
// the payload, and returns the Pub/Sub message ID.
func (p *PubSubPublisher) PublishInvoiceEvent(ctx context.Context, event InvoiceEvent) (string, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}
	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       payload,
		Attributes: map[string]string{"event_type": event.Type},
	})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish %s event for invoice %s: %w", event.Type, event.InvoiceID, err)
	}
	return id, nil
}

// Close flushes pending publishes and releases the client.
func (p *PubSubPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
