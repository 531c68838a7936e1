// ================== cmd/api/main.go ==================
//
// @title Aawaz Admin API
// @version 1.0
// @description Back-office API for moderating event posts, reports and app users
// @host localhost:8080
// @BasePath /admin/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	docs "github.com/xyz-asif/awaaz-admin/docs"
	"github.com/xyz-asif/awaaz-admin/internal/config"
	"github.com/xyz-asif/awaaz-admin/internal/database"
	"github.com/xyz-asif/awaaz-admin/internal/middleware"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/logger"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/response"
	"github.com/xyz-asif/awaaz-admin/internal/realtime"
	"github.com/xyz-asif/awaaz-admin/internal/routes"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.Init(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/admin/v1"

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Warn("MongoDB disconnect failed", zap.Error(err))
		}
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(cfg.FrontendURL))
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))

	router.GET("/health", healthHandler(db, log))

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
			ginSwagger.PersistAuthorization(true),
		),
	)

	hub := realtime.NewHub(log.Named("realtime"))
	go hub.Run(ctx)

	cleanup, err := routes.SetupRoutes(ctx, router, db.Database, cfg, hub)
	if err != nil {
		log.Fatal("Failed to set up routes", zap.Error(err))
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// healthHandler reports 503 while MongoDB is unreachable
func healthHandler(db healthChecker, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.HealthCheck(c.Request.Context()); err != nil {
			log.Warn("health check failed", zap.Error(err))
			response.ServiceUnavailable(c, "Database unavailable", "DB_UNAVAILABLE")
			return
		}
		response.Success(c, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	}
}
