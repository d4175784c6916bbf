// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// cardRepository implements the adapter.CardRepository interface.
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository instance.
func NewCardRepository(db *gorm.DB) adapter.CardRepository {
	return &cardRepository{
		db: db,
	}
}

// Create creates a new card in the database.
func (r *cardRepository) Create(ctx context.Context, card *entity.Card) error {
	cardModel := model.CardFromEntity(card)
	if err := conn(ctx, r.db).Omit("PaymentAccount").Create(cardModel).Error; err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// FindByID retrieves a card by its ID.
func (r *cardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	var cardModel model.CardModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&cardModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", result.Error)
	}
	return cardModel.ToEntity(), nil
}
