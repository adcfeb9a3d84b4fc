// Package main provides the seed command. Seeders run individually or
// together inside a single transaction so a failed run leaves no rows behind.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/JaimeStill/ecopoint/pkg/repository"
	"github.com/JaimeStill/ecopoint/pkg/storage"
)

// Deps are the systems a seeder may write to besides the transaction.
type Deps struct {
	Storage storage.System
	Logger  *slog.Logger
}

// Seeder populates one domain's reference data.
type Seeder interface {
	Name() string
	Description() string

	// Seed must be idempotent: running it twice leaves the same state.
	Seed(ctx context.Context, tx *sql.Tx, deps Deps) error
}

var seeders = map[string]Seeder{}

// registerSeeder adds s to the registry. Seeders self-register from init.
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns the registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b Seeder) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

// runSeeders executes the named seeders in one transaction.
func runSeeders(ctx context.Context, db *sql.DB, deps Deps, names ...string) error {
	selected := make([]Seeder, 0, len(names))
	for _, name := range names {
		s, ok := getSeeder(name)
		if !ok {
			return fmt.Errorf("seeder not found: %s", name)
		}
		selected = append(selected, s)
	}

	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		for _, s := range selected {
			if err := s.Seed(ctx, tx, deps); err != nil {
				return struct{}{}, fmt.Errorf("seed %s: %w", s.Name(), err)
			}
			deps.Logger.Info("seeder completed", "seeder", s.Name())
		}
		return struct{}{}, nil
	})
	return err
}
