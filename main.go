// File: fixly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fixly/config"
	"fixly/cron"
	"fixly/database"
	accountRepoPkg "fixly/database/repository/account"
	jobRepoPkg "fixly/database/repository/job"
	"fixly/handlers"
	"fixly/middleware"
	"fixly/routes"
	accountSvc "fixly/services/account"
	"fixly/services/billing"
	"fixly/services/cancellation"
	jobsvc "fixly/services/job"
	"fixly/services/notification"
	"fixly/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	stripe.Key = config.AppConfig.StripeKey

	ctx, cancelIndexes := context.WithTimeout(context.Background(), 10*time.Second)
	if err := accountRepoPkg.EnsureAccountIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to create account indexes: %v", err)
	}
	if err := jobRepoPkg.EnsureJobIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to create job indexes: %v", err)
	}
	cancelIndexes()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	accountRepo := accountRepoPkg.NewMongoAccountRepo()
	jobRepo := jobRepoPkg.NewMongoJobRepo()

	// Services.
	accountService := &accountSvc.DefaultAccountService{Repo: accountRepo}
	jobService := &jobsvc.DefaultJobService{Repo: jobRepo}

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	engine := &cancellation.Engine{
		Registry:  jobService,
		Accounts:  accountRepo,
		Billing:   billing.NewStripeCharger(logger),
		Notifier:  &notification.LogNotifier{Logger: logger},
		Escalator: &cancellation.AsynqEscalator{Client: queueClient},
		Logger:    logger,
	}

	// Handlers.
	handlerBundle := &handlers.HandlerBundle{
		AccountRepo: accountRepo,
		Auth:        handlers.NewAuthHandler(accountService),
		Jobs:        handlers.NewJobHandler(jobService),
		Cancel:      handlers.NewCancellationHandler(engine),
		Access:      handlers.NewAccessHandler(),
		Admin:       handlers.NewAdminHandler(accountRepo, jobService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background worker for the administrative review queue.
	cron.InitEscalationWorker(logger)

	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
