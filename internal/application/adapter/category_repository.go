// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	// Returns domainerror.ErrCategoryNotFound if the category does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// EnsureExists inserts the given categories, leaving existing rows untouched.
	EnsureExists(ctx context.Context, categories []*entity.Category) error
}
