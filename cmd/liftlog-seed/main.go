package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/liftlog/internal/config"
	"github.com/meltforce/liftlog/internal/seed"
	"github.com/meltforce/liftlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	templatePath := flag.String("file", "", "path to program template YAML (required)")
	dryRun := flag.Bool("dry-run", false, "validate the template without writing to the database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *templatePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-seed -config config.yaml -file programs.yaml [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	tmpl, err := seed.Load(*templatePath)
	if err != nil {
		log.Error("failed to load template", "error", err)
		os.Exit(1)
	}

	if *dryRun {
		for _, p := range tmpl.Programs {
			log.Info("template program", "title", p.Title, "days", len(p.Days))
		}
		log.Info("template is valid, nothing written")
		return
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	// Connect database
	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Seed inside one transaction so a broken template writes nothing
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		log.Error("failed to begin transaction", "error", err)
		os.Exit(1)
	}

	stats, err := seed.Apply(ctx, tx, tmpl, log)
	if err != nil {
		_ = tx.Rollback(ctx)
		log.Error("seed failed, rolled back", "error", err)
		os.Exit(1)
	}
	if err := tx.Commit(ctx); err != nil {
		log.Error("commit failed", "error", err)
		os.Exit(1)
	}

	log.Info("seed stats",
		"programs", stats.Programs,
		"days", stats.Days,
		"exercises_created", stats.Exercises,
		"exercises_reused", stats.ReusedExercises,
		"day_exercise_links", stats.DayExerciseLinks,
	)
	log.Info("seed complete")
}
