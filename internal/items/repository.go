package items

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/ecopoint/pkg/query"
	"github.com/JaimeStill/ecopoint/pkg/repository"
)

var projection = query.NewProjectionMap("public", "items", "i").
	Project("id", "ID").
	Project("title", "Title").
	Project("image", "Image")

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	uploadsURL string
}

// New creates an item repository. uploadsURL is the public address of the
// uploads route, used to build each item's ImageURL.
func New(db *sql.DB, logger *slog.Logger, uploadsURL string) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "items"),
		uploadsURL: uploadsURL,
	}
}

func (r *repo) List(ctx context.Context) ([]Item, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s ASC",
		projection.Columns(),
		projection.Table(),
		projection.Column("Title"),
	)

	items, err := repository.QueryMany(ctx, r.db, q, nil, r.scan)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return items, nil
}

func (r *repo) scan(s repository.Scanner) (Item, error) {
	var it Item
	if err := s.Scan(&it.ID, &it.Title, &it.Image); err != nil {
		return it, err
	}
	it.ImageURL = ImageURL(r.uploadsURL, it.Image)
	return it, nil
}
