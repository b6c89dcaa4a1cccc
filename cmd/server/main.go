package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ecowash/ecowash-backend/internal/config"
	"github.com/ecowash/ecowash-backend/internal/database"
	"github.com/ecowash/ecowash-backend/internal/logger"
	"github.com/ecowash/ecowash-backend/internal/notify"
	"github.com/ecowash/ecowash-backend/internal/queue"
	"github.com/ecowash/ecowash-backend/internal/router"
)

// waiter is implemented by notifiers that deliver in the background.
type waiter interface{ Wait() }

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFile)

	stores, closeStores, err := database.OpenStores(cfg)
	if err != nil {
		log.WithError(err).Fatal("storage init failed")
	}
	defer closeStores()

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mailer := notify.NewMailer(config.LoadMailConfig())
	var notifier interface {
		notify.Notifier
		waiter
	}
	switch cfg.NotifyMode {
	case config.NotifyQueue:
		notifier = queue.NewPublisher(cfg.RabbitURL)
		consumer := queue.NewConsumer(cfg.RabbitURL, mailer)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("notification consumer stopped")
			}
		}()
	default:
		notifier = notify.NewDirectNotifier(mailer, 30*time.Second)
	}

	e := router.New(router.Deps{
		Cfg:       cfg,
		Stores:    stores,
		Notifier:  notifier,
		Redis:     rdb,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
	})

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(log.Fields{"addr": addr, "env": cfg.Env, "db": cfg.DBDriver, "notify": cfg.NotifyMode}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	notifier.Wait()
}
