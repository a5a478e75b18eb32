package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Mathew-2006/school-website/repository"
	"github.com/Mathew-2006/school-website/services"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	// Setup structured logging with JSON format
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	config := services.LoadConfig()

	server := services.NewServer(config)

	if config.Database.URL != "" {
		// Probe connectivity before the ORM takes over
		pool, err := pgxpool.New(context.Background(), config.Database.URL)
		if err != nil {
			slog.Error("Failed to create connection pool", "error", err)
			os.Exit(1)
		}
		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("Database unreachable", "error", err)
			pool.Close()
			os.Exit(1)
		}
		pool.Close()

		db, err := repository.Connect(repository.ConnectOptions{
			URL:          config.Database.URL,
			LogLevel:     config.Database.LogLevel,
			MaxIdleConns: config.Database.MaxIdleConns,
			MaxOpenConns: config.Database.MaxOpenConns,
		})
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}

		repo := repository.NewGORMRepository(db)
		docs := repository.NewDocumentStore(db)

		if err := repo.AutoMigrate(); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed")

		if config.Database.Seed {
			seeder := services.NewDatabaseSeeder(repo, docs)
			if err := seeder.SeedDatabase(); err != nil {
				slog.Error("Failed to seed database", "error", err)
			}
		}

		server.SetDatabase(repo, docs, db)
	} else {
		slog.Warn("Database URL not configured, running without database")
	}

	if err := server.InitializeServices(); err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	server.Start()
}
