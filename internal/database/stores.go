package database

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ecowash/ecowash-backend/internal/config"
	"github.com/ecowash/ecowash-backend/internal/repository"
	"github.com/ecowash/ecowash-backend/internal/repository/memstore"
	"github.com/ecowash/ecowash-backend/internal/repository/mongostore"
)

// OpenStores connects the backend selected by cfg.DBDriver, prepares its
// schema or indexes and returns the stores with a function that releases
// the connection.
func OpenStores(cfg config.Config) (repository.Stores, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.DBDriver {
	case config.DriverMySQL:
		db, err := Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return repository.Stores{}, nil, fmt.Errorf("mysql: %w", err)
		}
		if err := Migrate(ctx, db); err != nil {
			_ = db.Close()
			return repository.Stores{}, nil, fmt.Errorf("mysql migrate: %w", err)
		}
		log.WithFields(log.Fields{"host": cfg.DBHost, "db": cfg.DBName}).Info("storage: mysql ready")
		return repository.NewMySQLStores(db), func() { _ = db.Close() }, nil

	case config.DriverMongo:
		client, err := OpenMongo(cfg.MongoURI)
		if err != nil {
			return repository.Stores{}, nil, fmt.Errorf("mongo: %w", err)
		}
		mdb := client.Database(cfg.MongoDB)
		if err := mongostore.EnsureIndexes(ctx, mdb); err != nil {
			_ = client.Disconnect(context.Background())
			return repository.Stores{}, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.WithField("db", cfg.MongoDB).Info("storage: mongo ready")
		return mongostore.New(mdb), func() { _ = client.Disconnect(context.Background()) }, nil

	case config.DriverMemory:
		log.Warn("storage: in-memory backend, data is lost on exit")
		return memstore.New().Stores(), func() {}, nil
	}
	return repository.Stores{}, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}
