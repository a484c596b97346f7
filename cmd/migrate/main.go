// Package main applies database migrations.
package main

import (
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var dir string
	var down bool
	flag.StringVar(&dir, "dir", "migrations", "migrations directory")
	flag.BoolVar(&down, "down", false, "roll back the latest migration instead of migrating up")
	flag.Parse()

	_ = godotenv.Load()

	conn := os.Getenv("DATABASE_URL")
	if conn == "" {
		slog.Error("DATABASE_URL not set")
		os.Exit(1)
	}

	db, err := sql.Open("pgx", conn)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		slog.Error("failed to resolve working directory", "error", err)
		os.Exit(1)
	}
	migrationsDir := filepath.Join(wd, dir)

	if down {
		slog.Info("rolling back migration", "dir", migrationsDir)
		if err := goose.Down(db, migrationsDir); err != nil {
			slog.Error("rollback failed", "error", err)
			os.Exit(1)
		}
		slog.Info("rollback complete")
		return
	}

	slog.Info("applying migrations", "dir", migrationsDir)
	if err := goose.Up(db, migrationsDir); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")
}
