package product

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/inventory-api/internal/models"
)

// ErrNotFound is returned when an id does not resolve to a usable row.
var ErrNotFound = errors.New("product not found")

// ErrInvalidCursor is returned when a list cursor does not reference an
// existing product.
var ErrInvalidCursor = errors.New("invalid cursor")

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// Input carries the mutable Product fields submitted by the caller.
// Update is a full replacement of these fields, not a partial patch.
type Input struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Price       float64  `json:"price"`
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
}

type ListParams struct {
	// Cursor is the id of the last record of the previous page. Results
	// start strictly after it in the (created_at, id) ordering.
	Cursor string
	Limit  int
	Search string
}

// Repository is the persistence boundary for the catalog. Every mutating
// call writes exactly one audit entry in the same transaction as the
// primary write.
type Repository interface {
	Create(ctx context.Context, in Input) (*models.Product, error)

	// GetByID excludes soft-deleted rows.
	GetByID(ctx context.Context, id string) (*models.Product, error)

	// Update replaces the mutable fields of the row identified by id,
	// regardless of its soft-delete state.
	Update(ctx context.Context, id string, in Input) (*models.Product, error)

	SoftDelete(ctx context.Context, id string) (*models.Product, error)

	// List returns non-deleted products ordered by created_at then id.
	List(ctx context.Context, p ListParams) ([]models.Product, error)

	// SetImageURL stores the uploaded image location on the product.
	SetImageURL(ctx context.Context, id string, url string) (*models.Product, error)
}
