package domain

import "context"

// Category is a named taxonomy entry. Immutable reference data; every event
// belongs to exactly one category.
// swagger:model Category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryRepository defines storage operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]*Category, error)
}

// CategoryCache is an optional read-through cache in front of the category
// repository. Implementations must be safe to call with a cold cache.
type CategoryCache interface {
	Get(ctx context.Context) ([]*Category, error)
	Set(ctx context.Context, categories []*Category) error
}
