package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/social-network/internal/events"
)

// NotificationService reacts to domain events. Delivery is a log line
// for now; the subscription points are where real channels would hook
// in.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService builds the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to the events worth notifying about.
func (s *NotificationService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventUserRegistered, s.onEvent("user registered"))
	s.dispatcher.Subscribe(events.EventPostLiked, s.onEvent("post liked"))
	s.dispatcher.Subscribe(events.EventCommentAdded, s.onEvent("comment added"))
}

func (s *NotificationService) onEvent(message string) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		s.logger.Info(message,
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("actor_id", event.ActorID),
		)
		return nil
	}
}
