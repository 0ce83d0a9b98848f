package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/velann/socialize-be/internal/api"
	"github.com/velann/socialize-be/internal/api/handlers"
	"github.com/velann/socialize-be/internal/auth"
	"github.com/velann/socialize-be/internal/config"
	"github.com/velann/socialize-be/internal/database"
	"github.com/velann/socialize-be/internal/logger"
	"github.com/velann/socialize-be/internal/maintenance"
	"github.com/velann/socialize-be/internal/mailer"
	"github.com/velann/socialize-be/internal/services"
	"github.com/velann/socialize-be/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init()

	// Ensure the uploads directory exists
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		log.Fatalf("Failed to create uploads directory: %v", err)
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up the mailer; without an SMTP relay, deliveries are logged only.
	var m mailer.Mailer
	if cfg.SMTPHost != "" {
		m = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		m = mailer.LogMailer{}
	}

	// Set up services
	signer := auth.NewTokenSigner(cfg.JWTSecret, cfg.SessionTTL)
	accountStore := store.NewSQLiteStore(db)
	accountService := services.NewAccountService(accountStore, signer, m, cfg.AppURL, cfg.ResetWindow)
	profileService := services.NewProfileService(db)
	postService := services.NewPostService(db)

	// Set up and run the background reset-token sweeper
	sweeper, err := maintenance.NewSweeper(accountStore, cfg.SweepSchedule)
	if err != nil {
		log.Fatalf("Failed to initialize sweeper: %v", err)
	}
	go sweeper.Run()

	// Set up router
	accountHandler := handlers.NewAccountHandler(accountService, cfg.SessionTTL)
	profileHandler := handlers.NewProfileHandler(profileService)
	postHandler := handlers.NewPostHandler(postService)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadsDir, cfg.Domain)
	router := api.NewRouter(signer, accountHandler, profileHandler, postHandler, uploadHandler, cfg.UploadsDir)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
