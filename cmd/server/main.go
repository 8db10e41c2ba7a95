package main

import (
	"log"
	"time"

	"go.uber.org/zap"

	"teamtask-api/internal/auth"
	"teamtask-api/internal/config"
	"teamtask-api/internal/database"
	"teamtask-api/internal/handlers"
	"teamtask-api/internal/logging"
	"teamtask-api/internal/notify"
	"teamtask-api/internal/realtime"
	"teamtask-api/internal/routes"
	"teamtask-api/internal/store"
	"teamtask-api/internal/tasks"
	"teamtask-api/internal/visibility"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	defer logger.Sync()

	auth.Configure(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	// Init database
	database.InitDB(cfg.Database.Path)
	db := database.GetDB()

	loc, err := time.LoadLocation(cfg.Notifications.Timezone)
	if err != nil {
		logger.Warn("invalid reminder timezone, falling back to UTC",
			zap.String("timezone", cfg.Notifications.Timezone))
		loc = time.UTC
	}

	hub := realtime.NewHub()
	emailSender := notify.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	var sender notify.Sender
	if emailSender != nil {
		sender = emailSender
	} else {
		logger.Info("SMTP host not configured; email delivery disabled")
	}

	dispatcher := notify.NewDispatcher(db, hub, sender, loc, logger)
	taskService := tasks.NewService(store.NewGormStore(db), dispatcher, logger)
	resolver := visibility.NewResolver(db, cfg.Notifications.VisibilityTTL)

	api := handlers.New(logger, taskService, dispatcher, resolver, hub)
	ginRoutes := routes.SetupRoutes(api)

	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := ginRoutes.Run(cfg.Server.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
