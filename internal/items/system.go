package items

import "context"

// System reads item categories.
type System interface {
	List(ctx context.Context) ([]Item, error)
}
