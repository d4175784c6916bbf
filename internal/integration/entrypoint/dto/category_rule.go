package dto

import (
	"time"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreateCategoryRuleRequest represents the request body for category rule creation.
type CreateCategoryRuleRequest struct {
	MatchText     string `json:"match_text" binding:"required,max=255"`
	CategoryID    string `json:"category_id" binding:"required"`
	Priority      *int   `json:"priority,omitempty"`
	ApplyExisting bool   `json:"apply_existing,omitempty"`
}

// CategoryRuleResponse represents a category rule in API responses.
type CategoryRuleResponse struct {
	ID         string    `json:"id"`
	MatchText  string    `json:"match_text"`
	CategoryID string    `json:"category_id"`
	Priority   int       `json:"priority"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateCategoryRuleResponse represents the response of a category rule creation.
type CreateCategoryRuleResponse struct {
	Rule                CategoryRuleResponse `json:"rule"`
	TransactionsUpdated int                  `json:"transactions_updated"`
}

// ListCategoryRulesResponse lists the rules of a user in priority order.
type ListCategoryRulesResponse struct {
	Rules []CategoryRuleResponse `json:"rules"`
}

// ApplyCategoryRuleResponse represents the result of a bulk rule application.
type ApplyCategoryRuleResponse struct {
	TransactionsUpdated int `json:"transactions_updated"`
}

// ToCategoryRuleResponse converts a domain CategoryRule entity to a CategoryRuleResponse DTO.
func ToCategoryRuleResponse(rule *entity.CategoryRule) CategoryRuleResponse {
	return CategoryRuleResponse{
		ID:         rule.ID.String(),
		MatchText:  rule.MatchText,
		CategoryID: rule.CategoryID.String(),
		Priority:   rule.Priority,
		IsActive:   rule.IsActive,
		CreatedAt:  rule.CreatedAt,
	}
}

// ToCategoryRuleResponses converts a list of rules.
func ToCategoryRuleResponses(rules []*entity.CategoryRule) []CategoryRuleResponse {
	responses := make([]CategoryRuleResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, ToCategoryRuleResponse(rule))
	}
	return responses
}
