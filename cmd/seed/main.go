package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"

	"stratify/internal/config"
	"stratify/internal/db"
	"stratify/internal/repository"
	"stratify/internal/seed"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		reset bool
		file  string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into the portfolio database",
		Long: "Loads sectors, users, assets and price history. Records are matched by sector name,\n" +
			"user email and asset ticker, so running the command twice is safe.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), config.Load(), reset, file)
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "drop and recreate every table before seeding")
	cmd.Flags().StringVarP(&file, "file", "f", "", "dataset JSON file or http(s) URL (default: embedded demo dataset)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, reset bool, file string) error {
	log.Println("Starting seed script...")

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, db.Options{LogLevel: logger.Warn})
	if err != nil {
		return err
	}
	defer db.Close(gormDB)
	log.Printf("Connected to %s database", cfg.DBDriver)

	if reset {
		log.Println("--reset given, dropping all tables...")
		if err := db.Reset(gormDB); err != nil {
			return err
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	log.Println("Database migrations completed")

	dataset, err := seed.Default()
	if file != "" {
		log.Printf("Loading dataset from: %s", file)
		dataset, err = seed.Fetch(ctx, file)
	}
	if err != nil {
		return err
	}

	stats, err := seed.Apply(ctx, repository.New(gormDB), dataset)
	if err != nil {
		return err
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Sectors created: %d", stats.SectorsCreated)
	log.Printf("  - Users created: %d, updated: %d", stats.UsersCreated, stats.UsersUpdated)
	log.Printf("  - Assets created: %d, updated: %d", stats.AssetsCreated, stats.AssetsUpdated)
	log.Printf("  - Price bars loaded: %d", stats.PriceBars)
	return nil
}
