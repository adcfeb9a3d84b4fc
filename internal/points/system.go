package points

import (
	"context"

	"github.com/JaimeStill/ecopoint/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the collection point operations.
// Implementations persist rows in the database and photos in blob storage.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Point], error)
	Find(ctx context.Context, id uuid.UUID) (*Detail, error)
	Create(ctx context.Context, cmd CreateCommand) (*Detail, error)
}
