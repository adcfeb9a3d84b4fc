package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/JaimeStill/ecopoint/internal/config"
	"github.com/JaimeStill/ecopoint/internal/infrastructure"
	"github.com/JaimeStill/ecopoint/migrations"
	"github.com/JaimeStill/ecopoint/pkg/database"
	"github.com/joho/godotenv"
)

func main() {
	var (
		all     = flag.Bool("all", false, "Run all seeders")
		items   = flag.Bool("items", false, "Seed waste categories")
		file    = flag.String("file", "", "External items seed file (overrides embedded)")
		list    = flag.Bool("list", false, "List available seeders")
		migrate = flag.Bool("migrate", false, "Apply database migrations before seeding")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	var names []string
	switch {
	case *all:
		for _, s := range listSeeders() {
			names = append(names, s.Name())
		}
	case *items:
		names = []string{"items"}
	}

	if len(names) == 0 && !*migrate {
		fmt.Println("usage: seed [-migrate] [-all|-items] [-file <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	if *file != "" {
		if s, ok := getSeeder("items"); ok {
			s.(*ItemSeeder).SetFile(*file)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("load .env: %v", err)
	}

	if err := run(*migrate, names); err != nil {
		log.Fatal(err)
	}
}

func run(migrate bool, names []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	cfg.Database.AutoMigrate = false

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return fmt.Errorf("infrastructure init failed: %w", err)
	}
	if err := infra.Start(); err != nil {
		return fmt.Errorf("infrastructure start failed: %w", err)
	}
	defer func() {
		if err := infra.Lifecycle.Shutdown(10 * time.Second); err != nil {
			infra.Logger.Error("shutdown failed", "error", err)
		}
	}()

	if migrate {
		version, err := database.Migrate(infra.Database.Connection(), migrations.FS)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		infra.Logger.Info("migrations applied", "version", version)
	}

	if len(names) == 0 {
		return nil
	}

	deps := Deps{Storage: infra.Storage, Logger: infra.Logger.With("command", "seed")}
	if err := runSeeders(context.Background(), infra.Database.Connection(), deps, names...); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Println("seeding completed successfully")
	return nil
}
