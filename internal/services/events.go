package services

import (
	"encoding/json"

	"go.uber.org/zap"
)

// EventPublisher publishes domain events to a message broker.
// *rabbitmq.Client satisfies it; a nil publisher means events are disabled.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// publishEvent marshals and publishes a domain event. Broker failures are
// logged and swallowed; event delivery never fails the originating request.
func publishEvent(publisher EventPublisher, logger *zap.Logger, eventType string, payload map[string]interface{}) {
	if publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal event payload", zap.String("event", eventType), zap.Error(err))
		return
	}
	if err := publisher.Publish(eventType, body); err != nil {
		logger.Warn("failed to publish event", zap.String("event", eventType), zap.Error(err))
		return
	}
	logger.Debug("published event", zap.String("event", eventType))
}
