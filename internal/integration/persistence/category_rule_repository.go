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

// categoryRuleRepository implements the adapter.CategoryRuleRepository interface.
type categoryRuleRepository struct {
	db *gorm.DB
}

// NewCategoryRuleRepository creates a new category rule repository instance.
func NewCategoryRuleRepository(db *gorm.DB) adapter.CategoryRuleRepository {
	return &categoryRuleRepository{
		db: db,
	}
}

// Create creates a new category rule in the database.
func (r *categoryRuleRepository) Create(ctx context.Context, rule *entity.CategoryRule) error {
	ruleModel := model.CategoryRuleFromEntity(rule)
	if err := conn(ctx, r.db).Omit("Category").Create(ruleModel).Error; err != nil {
		return fmt.Errorf("failed to create category rule: %w", err)
	}
	return nil
}

// FindByID retrieves a category rule by its ID.
func (r *categoryRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CategoryRule, error) {
	var ruleModel model.CategoryRuleModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryRuleNotFound
		}
		return nil, fmt.Errorf("failed to find category rule: %w", result.Error)
	}
	return ruleModel.ToEntity(), nil
}

// FindByUser retrieves all category rules of a user, sorted by priority (ascending).
func (r *categoryRuleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error) {
	return r.find(conn(ctx, r.db).Where("user_id = ?", userID))
}

// FindActiveByUser retrieves only active category rules of a user, sorted by priority (ascending).
func (r *categoryRuleRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategoryRule, error) {
	return r.find(conn(ctx, r.db).Where("user_id = ? AND is_active = ?", userID, true))
}

func (r *categoryRuleRepository) find(query *gorm.DB) ([]*entity.CategoryRule, error) {
	var ruleModels []model.CategoryRuleModel
	result := query.Order("priority ASC, created_at ASC").Find(&ruleModels)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list category rules: %w", result.Error)
	}

	rules := make([]*entity.CategoryRule, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntity()
	}
	return rules, nil
}

// GetMaxPriorityByUser returns the highest priority in use by the user, or 0 if none.
func (r *categoryRuleRepository) GetMaxPriorityByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var maxPriority *int
	result := conn(ctx, r.db).
		Model(&model.CategoryRuleModel{}).
		Where("user_id = ?", userID).
		Select("MAX(priority)").
		Scan(&maxPriority)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to get max priority: %w", result.Error)
	}
	if maxPriority == nil {
		return 0, nil
	}
	return *maxPriority, nil
}

// Delete removes a category rule from the database (hard delete).
func (r *categoryRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := conn(ctx, r.db).Delete(&model.CategoryRuleModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete category rule: %w", err)
	}
	return nil
}
