package bootstrap

import (
	"context"
	"log"

	"photostudio-be/internal/config"
	"photostudio-be/internal/controller"
	"photostudio-be/internal/handler"
	"photostudio-be/internal/pkg/logger"
	"photostudio-be/internal/pkg/mailer"
	"photostudio-be/internal/pkg/serverutils"
	"photostudio-be/internal/repository/contract"
	"photostudio-be/internal/repository/memory"
	"photostudio-be/internal/repository/redisstore"
	"photostudio-be/internal/repository/unitofwork"
	"photostudio-be/internal/service"
	"photostudio-be/internal/websocket"
	adminEvents "photostudio-be/pkg/admin/events"
	"photostudio-be/pkg/admin/refund"
	"photostudio-be/pkg/ledger"
	pktNats "photostudio-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	AuthController               controller.IAuthController
	PaymentController            controller.IPaymentController
	TransactionController        controller.ITransactionController
	TransactionRequestController controller.ITransactionRequestController

	// Background services, started by main
	MailQueue           service.IMailQueue
	NotificationService *service.NotificationService

	// WebSockets
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
	redis   *redis.Client
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Mail queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)
	mailQueue := service.NewMailQueue(pubSub, cfg.Notification.MailTopic, emailService, sysLogger)

	// 3. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	rdb := connectRedis(cfg.App.RedisURL)

	var blacklist contract.TokenBlacklist = memory.NewTokenBlacklist()
	if rdb != nil {
		blacklist = redisstore.NewTokenBlacklist(rdb)
	}

	// A nil *Publisher stored in the Sink interface would not compare equal
	// to nil, so only assign when connected.
	var sink adminEvents.Sink
	if natsPub != nil {
		sink = natsPub
	}
	eventPublisher := adminEvents.NewNatsPublisher(sink, sysLogger)

	// 4. Domain processors
	ledgerProcessor := ledger.NewProcessor(sysLogger, eventPublisher)
	refundProcessor := refund.NewProcessor(sysLogger, eventPublisher)

	systemUser, err := uuid.Parse(cfg.Auth.SystemUserID)
	if err != nil {
		log.Printf("[WARN] SYSTEM_USER_ID is not a valid UUID, gateway updates will be recorded without an actor: %v", err)
		systemUser = uuid.Nil
	}

	// 5. Services
	authService := service.NewAuthService(uowFactory, blacklist, cfg.Auth, sysLogger)
	transactionService := service.NewTransactionService(uowFactory, ledgerProcessor)
	transactionRequestService := service.NewTransactionRequestService(uowFactory, refundProcessor)
	paymentService := service.NewPaymentService(
		uowFactory,
		ledgerProcessor,
		service.NewSnapGateway(cfg.Midtrans),
		cfg.Midtrans,
		systemUser,
		sysLogger,
	)

	// 6. WebSocket hub and notifier
	wsLogger := logger.NewIsolatedLogger(cfg.Notification.LogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)

	var notificationService *service.NotificationService
	if natsSub != nil {
		notificationService = service.NewNotificationService(uowFactory, natsSub, wsHub, mailQueue, wsLogger)
	}

	// 7. Controllers
	auth := serverutils.JwtMiddleware(cfg.Auth.JWTSecret, blacklist)

	return &Container{
		Logger: sysLogger,

		AuthController:               controller.NewAuthController(authService, auth),
		PaymentController:            controller.NewPaymentController(paymentService, auth),
		TransactionController:        controller.NewTransactionController(transactionService, auth),
		TransactionRequestController: controller.NewTransactionRequestController(transactionRequestService, auth),

		MailQueue:           mailQueue,
		NotificationService: notificationService,

		NotificationHandler: handler.NewNotificationHandler(wsHub, auth, wsLogger),
		WebSocketHub:        wsHub,

		natsPub: natsPub,
		natsSub: natsSub,
		redis:   rdb,
	}
}

// Start launches the background workers. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) {
	go c.WebSocketHub.Run(ctx)

	go func() {
		if err := c.MailQueue.Consume(ctx); err != nil {
			c.Logger.Error("Bootstrap", "Mail queue stopped", map[string]interface{}{"error": err.Error()})
		}
	}()

	if c.NotificationService != nil {
		c.NotificationService.Start()
	} else {
		c.Logger.Warn("Bootstrap", "NATS unavailable, ledger notifications disabled", nil)
	}
}

func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
}

// connectRedis returns nil when Redis is unreachable so callers fall back to
// process-local state.
func connectRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
