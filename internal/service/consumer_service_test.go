package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ivy-crm-be/internal/dto"
	"ivy-crm-be/internal/model"
	"ivy-crm-be/internal/pkg/logger"
)

type fakeDelivery struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (d *fakeDelivery) Send(userID uuid.UUID, n model.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, n)
}

func (d *fakeDelivery) Broadcast(n model.Notification) {}

func (d *fakeDelivery) notifications() []model.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.Notification(nil), d.sent...)
}

func TestConsumerNotifiesAdvisorOnSuggestions(t *testing.T) {
	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	delivery := &fakeDelivery{}

	cs := NewConsumerService(pubSub, "ASSISTANT_EVENTS", delivery, nil, log)
	require.NoError(t, cs.Consume(context.Background()))

	userId := uuid.New()
	payload, err := json.Marshal(dto.PublishAssistantEventMessage{
		UserId:     userId.String(),
		SessionId:  uuid.NewString(),
		ResultType: "rag",
		EntityIds:  []string{"alex_thompson_id"},
	})
	require.NoError(t, err)

	pub := NewPublisherService("ASSISTANT_EVENTS", pubSub)
	require.NoError(t, pub.Publish(context.Background(), payload))

	require.Eventually(t, func() bool {
		return len(delivery.notifications()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	n := delivery.notifications()[0]
	assert.Equal(t, userId, n.UserID)
	assert.Equal(t, []string{"alex_thompson_id"}, n.EntityIDs)
	assert.Equal(t, "applicant", n.EntityType)
}

func TestConsumerIgnoresMessagesWithoutSuggestions(t *testing.T) {
	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	delivery := &fakeDelivery{}

	cs := NewConsumerService(pubSub, "ASSISTANT_EVENTS", delivery, nil, log)
	require.NoError(t, cs.Consume(context.Background()))

	payload, err := json.Marshal(dto.PublishAssistantEventMessage{
		UserId:     uuid.NewString(),
		ResultType: "command",
		CommandId:  "nav:pipeline",
	})
	require.NoError(t, err)

	pub := NewPublisherService("ASSISTANT_EVENTS", pubSub)
	require.NoError(t, pub.Publish(context.Background(), payload))

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, delivery.notifications())
}
