package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/linemk/storefront/internal/config"
	"github.com/linemk/storefront/internal/lib/logger"
)

func main() {
	var (
		migrationsPathFlag string
		down               bool
	)
	flag.StringVar(&migrationsPathFlag, "migrations-path", "", "path to migration files")
	flag.BoolVar(&down, "down", false, "roll back every applied migration")

	// MustLoad сам разберёт флаги вместе с -config
	cfg := config.MustLoad()
	log := logger.SetupLogger(cfg.Env)

	migrationsPath := cfg.Migrations.Path
	if migrationsPathFlag != "" {
		migrationsPath = migrationsPathFlag
	}

	extra := url.Values{}
	extra.Set("x-migrations-table", cfg.Migrations.Table)

	m, err := migrate.New("file://"+migrationsPath, cfg.Database.DSN(extra))
	if err != nil {
		log.Error("failed to create migrate instance", slog.Any("error", err))
		os.Exit(1)
	}

	if err := apply(m, down); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
		} else {
			log.Error("migration failed", slog.Any("error", err))
			os.Exit(1)
		}
	} else {
		log.Info("migrations applied", slog.String("path", migrationsPath), slog.Bool("down", down))
	}

	if err := printTables(cfg.Database.DSN(nil)); err != nil {
		log.Error("failed to list tables", slog.Any("error", err))
		os.Exit(1)
	}
}

func apply(m *migrate.Migrate, down bool) error {
	if down {
		return m.Down()
	}
	return m.Up()
}

func printTables(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name
	`)
	if err != nil {
		return fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	fmt.Println("Current tables in the database:")
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		fmt.Println(" -", tableName)
	}
	return rows.Err()
}
