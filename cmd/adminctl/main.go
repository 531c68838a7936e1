// Command adminctl is the operator CLI for the Aawaz back office.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/xyz-asif/awaaz-admin/cmd/adminctl/commands"
	"github.com/xyz-asif/awaaz-admin/internal/config"
	"github.com/xyz-asif/awaaz-admin/internal/database"
	"github.com/xyz-asif/awaaz-admin/internal/features/auth"
	"github.com/xyz-asif/awaaz-admin/internal/features/events"
	"github.com/xyz-asif/awaaz-admin/internal/features/moderation"
	"github.com/xyz-asif/awaaz-admin/internal/features/notifications"
	"github.com/xyz-asif/awaaz-admin/internal/features/users"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/cache"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/cloudinary"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/jwt"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/logger"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/mailer"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/push"
	"github.com/xyz-asif/awaaz-admin/internal/routes"
	"github.com/xyz-asif/awaaz-admin/internal/worker"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.Init(cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to MongoDB: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Warn("MongoDB disconnect failed", zap.Error(err))
		}
	}()

	usersRepo := users.NewRepository(db.Database)
	strikesRepo := moderation.NewRepository(db.Database)
	adminsRepo := auth.NewRepository(db.Database)
	if err := database.EnsureIndexes(ctx, adminsRepo, strikesRepo); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to ensure indexes: %v\n", err)
		os.Exit(1)
	}

	// The CLI never publishes realtime events, so the moderation service runs without a hub
	notificationService := notifications.NewService(notifications.NewRepository(db.Database),
		notifications.NewInlineDispatcher(routes.NewDeliverer(ctx, cfg)))
	moderationService := moderation.NewService(strikesRepo, usersRepo, notificationService, nil, cfg.AutoBlockThreshold)
	eventsService := events.NewService(events.Deps{
		Posts: events.NewRepository(db.Database),
		Admin: events.NewAdminRepository(db.Database),
		Users: usersRepo,
	})
	authService := auth.NewService(adminsRepo, jwt.DefaultConfig(cfg.JWTSecret, cfg.JWTExpire))

	rootCmd := &cobra.Command{
		Use:           "adminctl",
		Short:         "Aawaz back-office administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.SeedAdminCommand(authService))
	rootCmd.AddCommand(commands.EventCommands(eventsService))
	rootCmd.AddCommand(commands.StrikeCommands(moderationService, strikesRepo))
	rootCmd.AddCommand(commands.WorkerCommand(func() error {
		if cfg.RedisAddr == "" {
			return errors.New("REDIS_ADDR is not set")
		}
		processor := worker.NewRedisTaskProcessor(routes.RedisOpt(cfg), routes.NewDeliverer(ctx, cfg), log.Named("worker"))
		return processor.Run()
	}))

	rootCmd.AddCommand(commands.DoctorCommand(
		commands.Check{Name: "mongodb", Run: db.HealthCheck},
		commands.Check{Name: "redis", Run: func(ctx context.Context) error {
			if cfg.RedisAddr == "" {
				return commands.ErrSkipped
			}
			c, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
			if err != nil {
				return err
			}
			return c.Close()
		}},
		commands.Check{Name: "cloudinary", Run: func(context.Context) error {
			_, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
			if errors.Is(err, cloudinary.ErrNotConfigured) {
				return commands.ErrSkipped
			}
			return err
		}},
		commands.Check{Name: "firebase", Run: func(ctx context.Context) error {
			_, err := push.New(ctx, cfg.FirebaseServiceAccountPath)
			if errors.Is(err, push.ErrNotConfigured) {
				return commands.ErrSkipped
			}
			return err
		}},
		commands.Check{Name: "smtp", Run: func(context.Context) error {
			if !mailer.New(mailer.Config{Host: cfg.SMTPHost, Port: cfg.SMTPPort, From: cfg.SMTPFrom}).Enabled() {
				return commands.ErrSkipped
			}
			return nil
		}},
	))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		logger.Sync()
		os.Exit(1)
	}
}
