// Package eventbus builds the watermill publisher/subscriber pair shared by
// the modules, backed by NATS when a URL is configured and by an in-process
// channel otherwise.
package eventbus

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
)

// EventBus publishes and subscribes watermill messages.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

type bus struct {
	message.Publisher
	message.Subscriber
}

func (b *bus) Close() error {
	pubErr := b.Publisher.Close()
	subErr := b.Subscriber.Close()
	if pubErr != nil {
		return pubErr
	}
	return subErr
}

// NewInMemory returns a bus that delivers messages inside the process.
func NewInMemory(logger *slog.Logger) EventBus {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))
}

// NewNATS returns a bus on core NATS subjects.
func NewNATS(natsURL string, logger *slog.Logger) (EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)
	marshaler := &wmnats.NATSMarshaler{}
	options := []nc.Option{
		nc.Name("belote-bot"),
		nc.RetryOnFailedConnect(true),
		nc.MaxReconnects(-1),
		nc.ReconnectWait(2 * time.Second),
	}

	publisher, err := wmnats.NewPublisher(wmnats.PublisherConfig{
		URL:         natsURL,
		NatsOptions: options,
		Marshaler:   marshaler,
		JetStream:   wmnats.JetStreamConfig{Disabled: true},
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(wmnats.SubscriberConfig{
		URL:            natsURL,
		NatsOptions:    options,
		Unmarshaler:    marshaler,
		CloseTimeout:   30 * time.Second,
		AckWaitTimeout: 30 * time.Second,
		JetStream:      wmnats.JetStreamConfig{Disabled: true},
	}, wmLogger)
	if err != nil {
		publisher.Close()
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	return &bus{Publisher: publisher, Subscriber: subscriber}, nil
}

// New picks the NATS bus when natsURL is set.
func New(natsURL string, logger *slog.Logger) (EventBus, error) {
	if natsURL == "" {
		logger.Info("NATS URL not set, using in-process event bus")
		return NewInMemory(logger), nil
	}
	return NewNATS(natsURL, logger)
}
