package points

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/ecopoint/internal/items"
	"github.com/JaimeStill/ecopoint/pkg/pagination"
	"github.com/JaimeStill/ecopoint/pkg/query"
	"github.com/JaimeStill/ecopoint/pkg/repository"
	"github.com/JaimeStill/ecopoint/pkg/storage"
	"github.com/google/uuid"
)

const (
	insertPoint = `INSERT INTO points(id, image, name, email, whatsapp, latitude, longitude, city, uf)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, image, name, email, whatsapp, latitude, longitude, city, uf, created_at, updated_at`

	insertPointItem = `INSERT INTO point_items(point_id, item_id) VALUES($1, $2)`

	selectPointItems = `SELECT i.id, i.title, i.image
		FROM public.items i
		JOIN public.point_items pi ON pi.item_id = i.id
		WHERE pi.point_id = $1
		ORDER BY i.title ASC`
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
	uploadsURL string
}

// New creates a point repository with database and blob storage integration.
// uploadsURL is the public address of the uploads route.
func New(db *sql.DB, storage storage.System, logger *slog.Logger, pagination pagination.Config, uploadsURL string) System {
	return &repo{
		db:         db,
		storage:    storage,
		logger:     logger.With("system", "points"),
		pagination: pagination,
		uploadsURL: uploadsURL,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Point], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "City")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count points: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	points, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, r.scan)
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}

	result := pagination.NewPageResult(points, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Detail, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, r.scan)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	collected, err := repository.QueryMany(ctx, r.db, selectPointItems, []any{id}, r.scanItem)
	if err != nil {
		return nil, fmt.Errorf("query point items: %w", err)
	}

	return &Detail{Point: p, Items: collected}, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Detail, error) {
	id := uuid.New()

	var storageKey string
	if cmd.Image != nil {
		storageKey = buildStorageKey(id, cmd.Image)
		if err := r.storage.Store(ctx, storageKey, cmd.Image.Data); err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Point, error) {
		p, err := repository.QueryOne(ctx, tx, insertPoint, []any{
			id, storageKey, cmd.Name, cmd.Email, cmd.Whatsapp,
			cmd.Latitude, cmd.Longitude, cmd.City, cmd.UF,
		}, r.scan)
		if err != nil {
			return p, err
		}

		for _, itemID := range cmd.Items {
			if _, err := tx.ExecContext(ctx, insertPointItem, id, itemID); err != nil {
				return p, err
			}
		}
		return p, nil
	})

	if err != nil {
		if storageKey != "" {
			if delErr := r.storage.Delete(context.WithoutCancel(ctx), storageKey); delErr != nil {
				r.logger.Error("cleanup failed after db error", "storage_key", storageKey, "error", delErr)
			}
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: unknown item id", ErrInvalidItems)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("point created", "id", p.ID, "name", p.Name, "uf", p.UF, "city", p.City, "items", len(cmd.Items))

	return r.Find(ctx, p.ID)
}

func (r *repo) scan(s repository.Scanner) (Point, error) {
	p, err := scanPoint(s)
	if err != nil {
		return p, err
	}
	p.ImageURL = items.ImageURL(r.uploadsURL, p.Image)
	return p, nil
}

func (r *repo) scanItem(s repository.Scanner) (items.Item, error) {
	var it items.Item
	if err := s.Scan(&it.ID, &it.Title, &it.Image); err != nil {
		return it, err
	}
	it.ImageURL = items.ImageURL(r.uploadsURL, it.Image)
	return it, nil
}

// buildStorageKey keeps the client's file stem but takes the extension
// from the sniffed content type, so the stored key never disagrees with
// the bytes it holds.
func buildStorageKey(id uuid.UUID, img *Image) string {
	name := sanitizeFilename(img.Filename)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		stem = "image"
	}
	return fmt.Sprintf("points/%s/%s%s", id.String(), stem, extensionFor(img.ContentType))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ""
}
