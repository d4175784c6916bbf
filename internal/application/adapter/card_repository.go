// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CardRepository defines the interface for credit card persistence operations.
type CardRepository interface {
	// Create creates a new card in the database.
	Create(ctx context.Context, card *entity.Card) error

	// FindByID retrieves a card by its ID.
	// Returns domainerror.ErrCardNotFound if the card does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Card, error)
}
