package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/channels/gochannel"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/channels/kafka"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/eventbus"
)

// NewEventBus creates the event bus for procedure change notifications.
// The kafka provider publishes through Kafka; anything else falls back
// to the in-process channel transport.
func NewEventBus(provider string, logger *slog.Logger) eventbus.EventBus {
	switch provider {
	case "kafka":
		pub, sub, err := kafka.CreateChannel(watermill.NewSlogLogger(logger), "procedure")
		if err != nil {
			panic(fmt.Errorf("failed to create Kafka pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	default:
		pub, sub, err := gochannel.CreateChannel(watermill.NewSlogLogger(logger))
		if err != nil {
			panic(fmt.Errorf("failed to create channel pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	}
}
