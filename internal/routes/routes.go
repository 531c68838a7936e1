package routes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/xyz-asif/awaaz-admin/internal/config"
	"github.com/xyz-asif/awaaz-admin/internal/database"
	"github.com/xyz-asif/awaaz-admin/internal/features/auth"
	"github.com/xyz-asif/awaaz-admin/internal/features/dashboard"
	"github.com/xyz-asif/awaaz-admin/internal/features/events"
	"github.com/xyz-asif/awaaz-admin/internal/features/media"
	"github.com/xyz-asif/awaaz-admin/internal/features/moderation"
	"github.com/xyz-asif/awaaz-admin/internal/features/notifications"
	"github.com/xyz-asif/awaaz-admin/internal/features/reports"
	"github.com/xyz-asif/awaaz-admin/internal/features/users"
	"github.com/xyz-asif/awaaz-admin/internal/middleware"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/cache"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/cloudinary"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/jwt"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/logger"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/mailer"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/push"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/ratelimit"
	"github.com/xyz-asif/awaaz-admin/internal/realtime"
	"github.com/xyz-asif/awaaz-admin/internal/worker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// RegisterValidators installs every custom binding tag used by the features
func RegisterValidators() error {
	for _, register := range []func() error{
		users.RegisterValidators,
		reports.RegisterValidators,
		events.RegisterValidators,
	} {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

// RedisOpt is the asynq connection shared by the API and the worker
func RedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
}

// NewDeliverer wires the e-mail and push channels that cfg enables
func NewDeliverer(ctx context.Context, cfg *config.Config) *notifications.Deliverer {
	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	if !mail.Enabled() {
		logger.Info("smtp not configured, e-mail delivery disabled")
	}

	pusher, err := push.New(ctx, cfg.FirebaseServiceAccountPath)
	if err != nil {
		if !errors.Is(err, push.ErrNotConfigured) {
			logger.Warn("firebase messaging unavailable", zap.Error(err))
		}
		pusher = nil
	}

	return notifications.NewDeliverer(mail, pusher)
}

// SetupRoutes builds every feature on db and mounts it under /admin/v1.
// The returned cleanup releases queue and cache connections.
func SetupRoutes(ctx context.Context, router *gin.Engine, db *mongo.Database, cfg *config.Config, hub *realtime.Hub) (func(), error) {
	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	var closers []func() error
	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("cleanup failed", zap.Error(err))
			}
		}
	}

	// Repositories
	usersRepo := users.NewRepository(db)
	strikesRepo := moderation.NewRepository(db)
	notificationsRepo := notifications.NewRepository(db)
	reportsRepo := reports.NewRepository(db)
	eventsRepo := events.NewRepository(db)
	adminEventsRepo := events.NewAdminRepository(db)
	adminsRepo := auth.NewRepository(db)

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(indexCtx,
		usersRepo, strikesRepo, notificationsRepo, reportsRepo, eventsRepo, adminEventsRepo, adminsRepo,
	); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	// Notification delivery: asynq when redis is configured, otherwise inline
	var dispatcher notifications.Dispatcher
	if cfg.RedisAddr != "" {
		distributor := worker.NewRedisTaskDistributor(RedisOpt(cfg))
		closers = append(closers, distributor.Close)
		dispatcher = distributor
	} else {
		dispatcher = notifications.NewInlineDispatcher(NewDeliverer(ctx, cfg))
	}

	var uploader *cloudinary.Service
	if svc, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder); err == nil {
		uploader = svc
	} else {
		logger.Warn("cloudinary unavailable, uploads disabled", zap.Error(err))
	}

	var statsCache dashboard.Cache
	if cfg.RedisAddr != "" {
		c, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err != nil {
			logger.Warn("redis cache unavailable, dashboard stats uncached", zap.Error(err))
		} else {
			closers = append(closers, c.Close)
			statsCache = c
		}
	}

	// Services
	notificationService := notifications.NewService(notificationsRepo, dispatcher)
	moderationService := moderation.NewService(strikesRepo, usersRepo, notificationService, hub, cfg.AutoBlockThreshold)
	usersService := users.NewService(usersRepo, moderationService)
	reportsService := reports.NewService(reportsRepo, moderationService, hub)
	eventDeps := events.Deps{
		Posts:     eventsRepo,
		Admin:     adminEventsRepo,
		Users:     usersRepo,
		Notifier:  notificationService,
		Publisher: hub,
	}
	mediaHandler := media.NewHandler(nil)
	if uploader != nil {
		eventDeps.Uploader = uploader
		mediaHandler = media.NewHandler(uploader)
	}
	eventsService := events.NewService(eventDeps)
	dashboardService := dashboard.NewService(usersRepo, eventsRepo, reportsRepo, statsCache, cfg.StatsCacheTTL)
	authService := auth.NewService(adminsRepo, jwt.DefaultConfig(cfg.JWTSecret, cfg.JWTExpire))

	loginLimiter := ratelimit.New(cfg.LoginRatePerMinute, time.Minute)
	loginLimiter.StartCleanup(ctx, 5*time.Minute)

	adminAuth := middleware.AdminOnly(cfg.JWTSecret)
	api := router.Group("/admin/v1")

	auth.RegisterRoutes(api, auth.NewHandler(authService), adminAuth, ratelimit.Middleware(loginLimiter))
	users.RegisterRoutes(api, users.NewHandler(usersService), adminAuth)
	moderation.RegisterRoutes(api, moderation.NewHandler(moderationService), adminAuth)
	reports.RegisterRoutes(api, reports.NewHandler(reportsService), adminAuth)
	events.RegisterRoutes(api, events.NewHandler(eventsService), adminAuth)
	notifications.RegisterRoutes(api, notifications.NewHandler(notificationService), adminAuth)
	dashboard.RegisterRoutes(api, dashboard.NewHandler(dashboardService), adminAuth)
	media.RegisterRoutes(api, mediaHandler, adminAuth)

	api.GET("/ws", hub.ServeWS(cfg.JWTSecret))

	return cleanup, nil
}
