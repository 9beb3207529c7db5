package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/imanolea/wayfinder/internal/core/domain"
)

// Subscriber consumes routing events from JetStream with durable consumers,
// so a restarted worker picks up where it left off.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeEngineAlerts delivers tileset/version change alerts. The durable
// name partitions delivery per consumer role, not per process.
func (s *Subscriber) SubscribeEngineAlerts(ctx context.Context, durable string, handler func(ctx context.Context, alert *domain.EngineAlert) error) error {
	sub, err := s.js.Subscribe(subjectEngineAlert, func(msg *nats.Msg) {
		var alert domain.EngineAlert
		if err := json.Unmarshal(msg.Data, &alert); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, &alert); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// SubscribeRouteEvents delivers planned-trip events.
func (s *Subscriber) SubscribeRouteEvents(ctx context.Context, durable string, handler func(ctx context.Context, ev *domain.RouteEvent) error) error {
	sub, err := s.js.Subscribe(subjectRoutePlanned, func(msg *nats.Msg) {
		var ev domain.RouteEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, &ev); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
