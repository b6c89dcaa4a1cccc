// Command seed-admin replaces the operator account.  Credentials come from
// ADMIN_EMAIL and ADMIN_PASSWORD; every existing admin is removed first.
package main

import (
	"context"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ecowash/ecowash-backend/internal/config"
	"github.com/ecowash/ecowash-backend/internal/database"
	"github.com/ecowash/ecowash-backend/internal/logger"
	"github.com/ecowash/ecowash-backend/internal/service"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, "")

	if cfg.DBDriver == config.DriverMemory {
		log.Fatal("seed-admin needs a persistent DB_DRIVER (mysql or mongo)")
	}

	stores, closeStores, err := database.OpenStores(cfg)
	if err != nil {
		log.WithError(err).Fatal("storage init failed")
	}
	defer closeStores()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth := service.NewAuthService(stores, cfg.JWTSecret, cfg.TokenTTLDays, cfg.BcryptCost)
	a, err := auth.SeedAdmin(ctx, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"))
	if err != nil {
		log.WithError(err).Error("seeding admin failed")
		closeStores()
		os.Exit(1)
	}
	log.WithFields(log.Fields{"id": a.ID, "email": a.Email}).Info("admin account created")
}
