// Command setup creates the configured PostgreSQL database when it is missing
// and applies the embedded migrations. It is safe to run repeatedly.
package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/osse101/TriCard_Go/internal/config"
	"github.com/osse101/TriCard_Go/internal/database"
)

const setupTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	if err := ensureDatabase(ctx, cfg); err != nil {
		log.Fatalf("Failed to prepare database: %v", err)
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 2)
	if err != nil {
		log.Fatalf("Unable to connect to %s database: %v", cfg.DBName, err)
	}
	defer pool.Close()

	fmt.Println("Running migrations...")
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	fmt.Println("Migrations completed successfully.")
}

// ensureDatabase connects to the server's maintenance database and creates cfg.DBName if absent
func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, maintenanceConnString(cfg))
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
		return nil
	}

	fmt.Printf("Creating database %s...\n", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	fmt.Println("Database created successfully.")
	return nil
}

func maintenanceConnString(cfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:     cfg.DBHost + ":" + cfg.DBPort,
		Path:     "/postgres",
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
