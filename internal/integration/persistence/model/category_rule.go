package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryRuleModel represents the category_rules table. Rules are hard-deleted,
// so there is no deleted_at column.
type CategoryRuleModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_category_rules_user_priority,priority:1"`
	Priority   int       `gorm:"not null;default:0;index:idx_category_rules_user_priority,priority:2"`
	MatchText  string    `gorm:"type:varchar(255);not null"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the CategoryRuleModel.
func (CategoryRuleModel) TableName() string {
	return "category_rules"
}

// ToEntity converts the row to a domain CategoryRule.
func (m *CategoryRuleModel) ToEntity() *entity.CategoryRule {
	return &entity.CategoryRule{
		ID:         m.ID,
		UserID:     m.UserID,
		MatchText:  m.MatchText,
		CategoryID: m.CategoryID,
		Priority:   m.Priority,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// CategoryRuleFromEntity builds the row for rule.
func CategoryRuleFromEntity(rule *entity.CategoryRule) *CategoryRuleModel {
	return &CategoryRuleModel{
		ID:         rule.ID,
		UserID:     rule.UserID,
		MatchText:  rule.MatchText,
		CategoryID: rule.CategoryID,
		Priority:   rule.Priority,
		IsActive:   rule.IsActive,
		CreatedAt:  rule.CreatedAt,
		UpdatedAt:  rule.UpdatedAt,
	}
}
