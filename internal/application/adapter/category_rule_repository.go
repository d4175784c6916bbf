// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryRuleRepository defines the interface for category rule persistence operations.
type CategoryRuleRepository interface {
	// Create creates a new category rule in the database.
	Create(ctx context.Context, rule *entity.CategoryRule) error

	// FindByID retrieves a category rule by its ID.
	// Returns domainerror.ErrCategoryRuleNotFound if the rule does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CategoryRule, error)

	// FindByUser retrieves all category rules of a user, sorted by priority (ascending).
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error)

	// FindActiveByUser retrieves only active category rules of a user, sorted by priority (ascending).
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error)

	// GetMaxPriorityByUser returns the highest priority value in use by the user, or 0 if none.
	GetMaxPriorityByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// Delete removes a category rule from the database (hard delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
