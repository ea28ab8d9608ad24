package main

import (
	"log"
	"net/http"

	_ "fotobox/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fotobox/internal/auth"
	"fotobox/internal/cache"
	"fotobox/internal/config"
	"fotobox/internal/db"
	"fotobox/internal/handler"
	"fotobox/internal/mail"
	"fotobox/internal/model"
	"fotobox/internal/repository"
	"fotobox/internal/router"
	"fotobox/internal/service"
	"fotobox/internal/storage"
)

// @title Fotobox API
// @version 1.0
// @description Webcam capture and gallery service with session auth and emailed password-reset tokens.
// @host localhost:10000
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Photo{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	frameStore, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("frame store init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	photoRepo := repository.NewPhotoRepository(gormDB)

	// Initialize auth components
	hasher := auth.NewBcryptHasher()
	sessions := auth.NewSessionService(cfg.SecretKey)
	resetTokens := auth.NewResetTokenService(cfg.SecretKey)
	mailer := mail.NewSMTPMailer(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, sessions, resetTokens, mailer, cfg.BaseURL)
	captureService := service.NewCaptureService(photoRepo, frameStore, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userRepo, sessions)
	captureHandler := handler.NewCaptureHandler(captureService, userRepo)

	// Register routes
	router.Register(e, cfg, authHandler, captureHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
