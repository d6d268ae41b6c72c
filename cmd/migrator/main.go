package main

import (
	"context"
	"flag"
	"os"

	"devevents/config"
	"devevents/internal/repository/postgres"
)

const (
	migrationUp   = "up"
	migrationDown = "down"
)

func main() {
	logger := config.NewLogger()

	var migrationType, migrationsPath, dsn string
	flag.StringVar(&migrationType, "migration-type", migrationUp, "migration type: up or down")
	flag.StringVar(&migrationsPath, "migrations-path", "migrations", "path to migrations")
	flag.StringVar(&dsn, "dsn", "", "database url (defaults to DATABASE_URL)")
	flag.Parse()

	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			logger.Error("load config", "err", err)
			os.Exit(1)
		}
		dsn = cfg.DBUrl
	}

	db, err := postgres.NewDB(context.Background(), dsn)
	if err != nil {
		logger.Error("connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	switch migrationType {
	case migrationUp:
		err = postgres.RunMigrations(db, migrationsPath)
	case migrationDown:
		err = postgres.RollbackMigrations(db, migrationsPath)
	default:
		logger.Error("unknown migration type", "type", migrationType)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("migration failed", "type", migrationType, "err", err)
		db.Close()
		os.Exit(1)
	}
	logger.Info("migrations done", "type", migrationType, "path", migrationsPath)
}
