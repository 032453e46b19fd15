package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"campaign-server/internal/config"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"

	audienceHandler "campaign-server/internal/audience/handler"
	audienceProcessor "campaign-server/internal/audience/processor"
	"campaign-server/internal/auth/handler"
	"campaign-server/internal/auth/processor"
	"campaign-server/internal/authz"
	authzHandler "campaign-server/internal/authz/handler"
	campaignHandler "campaign-server/internal/campaign/handler"
	campaignProcessor "campaign-server/internal/campaign/processor"
	"campaign-server/internal/clients/googleoauth"
	kafkaClient "campaign-server/internal/clients/kafka"
	"campaign-server/internal/clients/mail"
	redisClient "campaign-server/internal/clients/redis"
	"campaign-server/internal/clients/turnstile"
	commentHandler "campaign-server/internal/comment/handler"
	commentProcessor "campaign-server/internal/comment/processor"
	companyHandler "campaign-server/internal/company/handler"
	companyProcessor "campaign-server/internal/company/processor"
	"campaign-server/internal/events"
	notificationConsumer "campaign-server/internal/notification/consumer"
	notificationHandler "campaign-server/internal/notification/handler"
	notificationProcessor "campaign-server/internal/notification/processor"
	"campaign-server/internal/ratelimit"
	teamHandler "campaign-server/internal/team/handler"
	teamProcessor "campaign-server/internal/team/processor"
	"campaign-server/internal/workers"
	"campaign-server/internal/workflow"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrKafkaNotConfigured is returned when the worker starts without brokers.
var ErrKafkaNotConfigured = errors.New("KAFKA_BROKERS is not set")

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store    store.Store
	Logger   *observability.Logger
	Engine   *authz.Engine
	Resolver *authz.Resolver

	// Handlers
	AuthHandler         handler.Handler
	AuthzHandler        authzHandler.Handler
	TeamHandler         teamHandler.Handler
	CompanyHandler      companyHandler.Handler
	CampaignHandler     campaignHandler.Handler
	AudienceHandler     audienceHandler.Handler
	CommentHandler      commentHandler.Handler
	NotificationHandler notificationHandler.Handler

	// Middleware
	RateLimiter *ratelimit.Service

	// Event publishing. EventPool is nil when Kafka is not configured.
	EventPool workers.WorkerPool

	// Clients (for cleanup)
	RedisClient   *redisClient.Client
	KafkaProducer *kafkaClient.Producer
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize authorization
	deps.Engine = authz.NewEngine(logger, authz.NewMetrics(prometheus.DefaultRegisterer))
	deps.Resolver = authz.NewResolver(&deps.Store, cfg.Auth.SuperAdminDomain, logger)
	gate, err := workflow.NewGate()
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow policy: %w", err)
	}

	// Initialize clients
	mailClient := mail.NewResendClient(cfg.Services.ResendAPIKey, cfg.Services.DefaultEmailSender, logger)
	if err := mailClient.Configured(); err != nil {
		logger.InfoWithError(ctx, "invitation emails are disabled", err)
	}

	deps.RedisClient, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	// A nil *Client must not reach the limiter as a non-nil interface.
	var counter ratelimit.WindowCounter
	if deps.RedisClient.IsEnabled() {
		counter = deps.RedisClient
	}
	deps.RateLimiter = ratelimit.NewService(counter, cfg.Redis.RatePerMinute, logger)

	// Initialize event publishing
	if cfg.Kafka.Enabled() {
		deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
			Brokers: cfg.Kafka.BrokerList(),
			Topic:   cfg.Kafka.Topic,
		}, logger)
		deps.EventPool = workers.NewWorkerPool(workers.DefaultPoolConfig(), events.NewKafkaForwarder(deps.KafkaProducer), logger)
	} else {
		logger.Info(ctx, "Kafka is disabled, campaign events will not be published")
	}
	publisher := events.NewPublisher(deps.EventPool, logger)

	// Optional auth clients stay nil interfaces when not configured
	var captcha processor.CaptchaVerifier
	if cfg.Auth.TurnstileSecretKey != "" {
		captcha = turnstile.NewClient(cfg.Auth.TurnstileSecretKey, logger)
	} else {
		logger.Info(ctx, "Turnstile is disabled, captcha checks are skipped")
	}
	var google processor.GoogleOAuthClient
	if cfg.Auth.GoogleEnabled() {
		google = googleoauth.NewClient(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.GoogleRedirectURL, logger)
	} else {
		logger.Info(ctx, "Google sign in is disabled")
	}

	// Initialize auth processor and handler
	authProc := processor.New(&deps.Store, deps.Engine, deps.Resolver, processor.Config{
		JWTSecret: cfg.Auth.JWTSecret,
	}, captcha, google, logger)
	deps.AuthHandler = handler.New(authProc, deps.Resolver, cfg.Services.WebAppURI, logger)
	deps.AuthzHandler = authzHandler.New(deps.Engine, deps.Resolver, logger)

	// Initialize team processor and handler
	teamProc := teamProcessor.New(&deps.Store, deps.Engine, deps.Resolver, mailClient, cfg.Services.WebAppURI, logger)
	deps.TeamHandler = teamHandler.New(teamProc, logger)

	// Initialize company processor and handler
	companyProc := companyProcessor.New(&deps.Store, deps.Engine, logger)
	deps.CompanyHandler = companyHandler.New(companyProc, logger)

	// Initialize campaign processor and handler
	campaignProc := campaignProcessor.New(&deps.Store, deps.Engine, gate, publisher, logger)
	deps.CampaignHandler = campaignHandler.New(campaignProc, logger)

	// Initialize audience request processor and handler
	audienceProc := audienceProcessor.New(&deps.Store, deps.Engine, publisher, logger)
	deps.AudienceHandler = audienceHandler.New(audienceProc, logger)

	// Initialize comment processor and handler
	commentProc := commentProcessor.New(&deps.Store, deps.Engine, logger)
	deps.CommentHandler = commentHandler.New(commentProc, logger)

	// Initialize notification processor and handler
	notificationProc := notificationProcessor.New(&deps.Store, deps.Engine, logger)
	deps.NotificationHandler = notificationHandler.New(notificationProc, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup(ctx context.Context) {
	if d.EventPool != nil {
		if err := d.EventPool.Drain(ctx); err != nil {
			d.Logger.Error(ctx, "failed to drain event pool", err)
		}
	}
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close kafka producer", err)
		}
	}
	if err := d.RedisClient.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close redis client", err)
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close database", err)
	}
}

// WorkerDependencies holds what the notification worker needs
type WorkerDependencies struct {
	Store    store.Store
	Logger   *observability.Logger
	Consumer workers.EventConsumer
}

// InitializeWorker sets up the notification worker. Kafka is required.
func InitializeWorker(cfg *config.Config, logger *observability.Logger) (*WorkerDependencies, error) {
	if !cfg.Kafka.Enabled() {
		return nil, ErrKafkaNotConfigured
	}

	deps := &WorkerDependencies{
		Logger: logger,
	}

	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	engine := authz.NewEngine(logger, nil)
	resolver := authz.NewResolver(&deps.Store, cfg.Auth.SuperAdminDomain, logger)
	notificationProc := notificationProcessor.New(&deps.Store, engine, logger)

	consumerConfig := workers.DefaultConsumerConfig(cfg.Kafka.BrokerList(), cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic)
	consumerConfig.NumWorkers = cfg.WorkerPool.NotificationWorkers
	deps.Consumer = workers.NewConsumer(
		consumerConfig,
		notificationConsumer.NewNotificationEventProcessor(&notificationProc, resolver, logger),
		logger,
	)

	return deps, nil
}
