package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"ivy-crm-be/internal/dto"
	"ivy-crm-be/internal/model"
	"ivy-crm-be/internal/pkg/logger"
	"ivy-crm-be/pkg/events"
	pktNats "ivy-crm-be/pkg/nats"
)

// NotificationDelivery pushes real-time updates to connected advisors.
// Implemented by the websocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process pipeline bus: urgent follow-up
// suggestions become advisor notifications, and every routed query is
// mirrored onto NATS for the wider CRM.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	delivery       NotificationDelivery
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	delivery NotificationDelivery,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		delivery:       delivery,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishAssistantEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal pipeline message", map[string]interface{}{"error": err})
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	cs.notifyAdvisor(payload)
	cs.mirrorToNats(ctx, payload)

	msg.Ack()
}

// notifyAdvisor pushes a websocket notification when the routed answer
// surfaced applicants that need follow-up.
func (cs *consumerService) notifyAdvisor(payload dto.PublishAssistantEventMessage) {
	if cs.delivery == nil || len(payload.EntityIds) == 0 {
		return
	}

	userID, err := uuid.Parse(payload.UserId)
	if err != nil {
		cs.logger.Warn("ConsumerService", "Invalid user id on pipeline message", map[string]interface{}{"user_id": payload.UserId})
		return
	}

	cs.delivery.Send(userID, model.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		TypeCode:   events.TypeSuggestionsDetected,
		EntityType: "applicant",
		EntityIDs:  payload.EntityIds,
		Title:      "Applicants need follow-up",
		Message:    fmt.Sprintf("%d applicant(s) in your pipeline were flagged for follow-up.", len(payload.EntityIds)),
		Metadata: map[string]interface{}{
			"session_id": payload.SessionId,
		},
		CreatedAt: time.Now(),
	})
}

// mirrorToNats republishes pipeline outcomes on the shared event bus.
func (cs *consumerService) mirrorToNats(ctx context.Context, payload dto.PublishAssistantEventMessage) {
	if cs.eventPublisher == nil {
		return
	}

	publish := func(evt events.BaseEvent) {
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to mirror event to NATS", map[string]interface{}{
				"event_type": evt.EventType(),
				"error":      err,
			})
		}
	}

	publish(events.QueryRouted(
		payload.UserId,
		payload.SessionId,
		payload.ResultType,
		payload.Domain,
		payload.Intent,
		payload.Confidence,
	))

	if len(payload.EntityIds) > 0 {
		publish(events.SuggestionsDetected(payload.UserId, payload.EntityIds, true))
	}

	if payload.Degraded {
		publish(events.RetrievalDegraded(payload.UserId, "ask"))
	}

	if strings.HasPrefix(payload.CommandId, "edit:field:") {
		publish(events.BaseEvent{
			Type: events.TypeFieldUpdateRequested,
			Data: map[string]interface{}{
				"user_id": payload.UserId,
				"field":   strings.TrimPrefix(payload.CommandId, "edit:field:"),
			},
			OccurredAt: time.Now(),
		})
	}
}
