package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wishbox/config"
	"wishbox/database"
	otpRepoPkg "wishbox/database/repository/otp"
	subscriberRepoPkg "wishbox/database/repository/subscriber"
	userRepoPkg "wishbox/database/repository/user"
	"wishbox/handlers"
	"wishbox/routes"
	"wishbox/services/mailer"
	"wishbox/services/newsletter"
	"wishbox/services/notify"
	"wishbox/services/otp"
	"wishbox/services/storage"
	"wishbox/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	// The server stays up when a collaborator is missing; the affected
	// endpoints degrade to 500s and the health endpoint reports the state.
	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Sugar().Warnf("main: Firestore unavailable, running degraded: %v", err)
		db = nil
	}

	smtpMailer := mailer.NewSMTPMailer(cfg)

	// Repositories.
	var (
		otpRepo  otpRepoPkg.OTPRepository
		userRepo userRepoPkg.UserRepository
		subsRepo subscriberRepoPkg.SubscriberRepository
	)
	if db != nil {
		otpRepo = otpRepoPkg.NewFirestoreOTPRepo(db)
		userRepo = userRepoPkg.NewFirestoreUserRepo(db)
		subsRepo = subscriberRepoPkg.NewFirestoreSubscriberRepo(db)
	}

	// Services.
	otpService := &otp.DefaultOTPService{
		Repo:   otpRepo,
		Users:  userRepo,
		Mailer: smtpMailer,
	}
	newsletterService := &newsletter.DefaultNewsletterService{
		Subs:   subsRepo,
		Mailer: smtpMailer,
	}
	notifyService := &notify.DefaultNotifyService{
		Users:  userRepo,
		Mailer: smtpMailer,
	}

	var storageService storage.StorageService
	if cfg.CloudinaryConfigured() {
		svc, err := storage.NewCloudinaryStorageService(cfg, userRepo)
		if err != nil {
			logger.Sugar().Warnf("main: Cloudinary unavailable, uploads disabled: %v", err)
		} else {
			storageService = svc
		}
	}

	// Handlers.
	otpHandler := handlers.NewOTPHandler(otpService)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	notifyHandler := handlers.NewNotifyHandler(notifyService)
	storageHandler := handlers.NewStorageHandler(storageService)
	healthHandler := handlers.NewHealthHandler(handlers.CollaboratorStatus{
		FirebaseConnected:    db != nil,
		MailConfigured:       cfg.MailConfigured(),
		CloudinaryConfigured: storageService != nil,
	})

	handlerBundle := &handlers.HandlerBundle{
		SendOTPHandler:            otpHandler.SendOTPHandler,
		VerifyOTPHandler:          otpHandler.VerifyOTPHandler,
		SubscribeHandler:          newsletterHandler.SubscribeHandler,
		UploadProfileImageHandler: storageHandler.UploadProfileImageHandler,
		NotifyPriceDropHandler:    notifyHandler.NotifyPriceDropHandler,
		HealthHandler:             healthHandler,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, cfg, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
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
	if err := db.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close Firestore client: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
