// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	if err := conn(ctx, r.db).Create(categoryModel).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// FindByID retrieves a category by its ID.
// Soft-deleted categories are treated as not found.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", result.Error)
	}
	return categoryModel.ToEntity(), nil
}

// EnsureExists inserts the categories whose IDs are not stored yet.
func (r *categoryRepository) EnsureExists(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}

	categoryModels := make([]*model.CategoryModel, len(categories))
	for i, c := range categories {
		categoryModels[i] = model.CategoryFromEntity(c)
	}

	err := conn(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&categoryModels).Error
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}
