package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path"
)

//go:embed seeds
var seedFiles embed.FS

func init() {
	registerSeeder(&ItemSeeder{})
}

// ItemSeed is one entry of the items seed file. Icon names a file under
// seeds/icons and becomes the storage key "items/<icon>".
type ItemSeed struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// ItemSeeder upserts the waste categories and stores their icons.
type ItemSeeder struct {
	file string
}

func (s *ItemSeeder) Name() string {
	return "items"
}

func (s *ItemSeeder) Description() string {
	return "Seeds waste categories and their icons"
}

// SetFile replaces the embedded seed data with an external JSON file.
func (s *ItemSeeder) SetFile(path string) {
	s.file = path
}

// Seed stores each icon unless its key already exists, then upserts the
// item row by title.
func (s *ItemSeeder) Seed(ctx context.Context, tx *sql.Tx, deps Deps) error {
	seeds, err := s.loadSeedData()
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO items (title, image)
		VALUES ($1, $2)
		ON CONFLICT (title) DO UPDATE SET image = EXCLUDED.image`

	for _, item := range seeds {
		key := "items/" + item.Icon

		exists, err := deps.Storage.Validate(ctx, key)
		if err != nil {
			return fmt.Errorf("check icon %s: %w", key, err)
		}

		if !exists {
			icon, err := seedFiles.ReadFile(path.Join("seeds", "icons", item.Icon))
			if err != nil {
				return fmt.Errorf("read icon %s: %w", item.Icon, err)
			}
			if err := deps.Storage.Store(ctx, key, icon); err != nil {
				return fmt.Errorf("store icon %s: %w", key, err)
			}
			deps.Logger.Info("icon stored", "key", key, "bytes", len(icon))
		}

		if _, err := tx.ExecContext(ctx, query, item.Title, key); err != nil {
			return fmt.Errorf("save item %s: %w", item.Title, err)
		}
	}

	return nil
}

func (s *ItemSeeder) loadSeedData() ([]ItemSeed, error) {
	var content []byte
	var err error

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/items.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data struct {
		Items []ItemSeed `json:"items"`
	}
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	return data.Items, nil
}
