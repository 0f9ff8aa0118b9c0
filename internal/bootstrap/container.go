package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"

	"ivy-crm-be/internal/config"
	"ivy-crm-be/internal/controller"
	"ivy-crm-be/internal/handler"
	"ivy-crm-be/internal/pkg/logger"
	"ivy-crm-be/internal/repository/memory"
	"ivy-crm-be/internal/service"
	"ivy-crm-be/internal/websocket"
	"ivy-crm-be/pkg/ai/router"
	"ivy-crm-be/pkg/command"
	pktNats "ivy-crm-be/pkg/nats"
	"ivy-crm-be/pkg/retrieval"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-process event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS is optional; without it events stay in-process.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// Redis is optional; without it websocket fan-out is single-instance.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Core routing components
	registry := command.NewRegistry()
	engine := router.NewEngine(registry)
	retrievalClient := retrieval.NewClient(cfg.Retrieval.BaseURL, cfg.Retrieval.Timeout, sysLogger)
	sessionRepo := memory.NewSessionRepository(cfg.Assistant.SessionTTL)

	publisherService := service.NewPublisherService(cfg.Assistant.EventsTopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Assistant.EventsTopicName,
		wsHub,
		natsPub,
		sysLogger,
	)

	assistantService := service.NewAssistantService(
		engine,
		registry,
		retrievalClient,
		sessionRepo,
		publisherService,
		sysLogger,
	)

	streamHandler := handler.NewStreamHandler(wsHub, wsLogger)

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		ConsumerService:     consumerService,
		StreamHandler:       streamHandler,
		WebSocketHub:        wsHub,
	}
}
