package pubsub

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"app/internal/config"

	ps "cloud.google.com/go/pubsub"
)

func TestNewPublisherInvalidProject(t *testing.T) {
	cfg := &config.Config{GCPProjectID: ""}
	if _, err := NewPublisher(context.Background(), cfg); err == nil {
		t.Fatal("expected error when project ID is empty")
	}
}

func TestPublishInvoiceEventWithEmulator(t *testing.T) {
	emulator := os.Getenv("PUBSUB_EMULATOR_HOST")
	if emulator == "" {
		t.Skip("PUBSUB_EMULATOR_HOST is not set, skip emulator integration test")
	}

	ctx := context.Background()
	cfg := &config.Config{GCPProjectID: "test-project", PubSubInvoiceTopic: "invoice-events-test"}
	pub, err := NewPublisher(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create PubSubPublisher: %v", err)
	}
	defer pub.Close()

	topic, err := pub.client.CreateTopic(ctx, cfg.PubSubInvoiceTopic)
	if err != nil {
		t.Fatalf("failed to create topic: %v", err)
	}
	sub, err := pub.client.CreateSubscription(ctx, "invoice-events-test-sub", ps.SubscriptionConfig{Topic: topic})
	if err != nil {
		t.Fatalf("failed to create subscription: %v", err)
	}

	event := InvoiceEvent{
		Type:          EventInvoiceSent,
		InvoiceID:     "inv-1",
		UserID:        "user-1",
		InvoiceNumber: "INV-20260828-ABCDEF",
		OccurredAt:    time.Now().UTC(),
	}
	msgID, err := pub.PublishInvoiceEvent(ctx, event)
	if err != nil {
		t.Fatalf("PublishInvoiceEvent returned error: %v", err)
	}
	if msgID == "" {
		t.Fatal("expected non-empty message ID")
	}

	recvCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	received := make(chan *ps.Message, 1)
	go func() {
		sub.Receive(recvCtx, func(ctx context.Context, m *ps.Message) {
			received <- m
			m.Ack()
			cancel()
		})
	}()

	select {
	case m := <-received:
		var got InvoiceEvent
		if err := json.Unmarshal(m.Data, &got); err != nil {
			t.Fatalf("failed to unmarshal received event: %v", err)
		}
		if got.Type != EventInvoiceSent || got.InvoiceID != "inv-1" {
			t.Fatalf("unexpected event: %+v", got)
		}
		if m.Attributes["event_type"] != EventInvoiceSent {
			t.Fatalf("expected event_type attribute, got %v", m.Attributes)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for message from emulator subscription")
	}
}
