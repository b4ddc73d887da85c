package cmd

import (
	"context"
	"fmt"
	"time"

	"taixiu/bot"
	"taixiu/config"
	"taixiu/database"
	"taixiu/repository"
	"taixiu/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting taixiu bot...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	uowFactory := repository.NewUnitOfWorkFactory(db)

	userService := service.NewUserService(uowFactory)
	gameService := service.NewGameService(uowFactory)
	rechargeService := service.NewRechargeService(uowFactory)

	log.Info("Initializing Telegram bot...")
	tgBot, err := bot.New(cfg, userService, gameService, rechargeService)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	tgBot.Run(ctx)

	log.Info("Shutting down bot...")

	// Give in-flight settlements a moment before the pool closes
	time.Sleep(1 * time.Second)

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}
