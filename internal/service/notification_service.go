package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/parking-service/internal/config"
	"github.com/spec-kit/parking-service/internal/events"
)

// NotificationService emits the user-visible confirmation messages for
// lifecycle events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventVehicleEntered, n.handleVehicleEntered)
	n.dispatcher.Subscribe(events.EventVehicleExited, n.handleVehicleExited)
	n.dispatcher.Subscribe(events.EventSpotReleased, n.handleSpotReleased)
}

func (n *NotificationService) handleVehicleEntered(ctx context.Context, event events.Event) error {
	n.logger.Info("VehicleEntered", zap.String("registration", event.Registration), zap.Any("payload", event.Payload))
	if payload, ok := event.Payload.(events.VehicleEnteredPayload); ok && payload.RecurringUser {
		n.logger.Info("recurring user welcomed", zap.String("registration", event.Registration))
	}
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleVehicleExited(ctx context.Context, event events.Event) error {
	n.logger.Info("VehicleExited", zap.String("registration", event.Registration), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSpotReleased(ctx context.Context, event events.Event) error {
	n.logger.Info("SpotReleased", zap.String("registration", event.Registration), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("registration", event.Registration),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("registration", event.Registration),
		zap.String("event_type", string(event.Type)))
}
