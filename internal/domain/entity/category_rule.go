// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CategoryRule represents an auto-categorization rule.
// Rules are matched as case-insensitive substrings of the transaction
// description; the lowest priority value is tried first.
type CategoryRule struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	MatchText  string
	CategoryID uuid.UUID // The category to assign when the text matches
	Priority   int
	IsActive   bool // Allows disabling rules without deleting them
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewCategoryRule creates a new CategoryRule entity.
func NewCategoryRule(userID uuid.UUID, matchText string, categoryID uuid.UUID, priority int) *CategoryRule {
	now := time.Now().UTC()

	return &CategoryRule{
		ID:         uuid.New(),
		UserID:     userID,
		MatchText:  matchText,
		CategoryID: categoryID,
		Priority:   priority,
		IsActive:   true, // New rules are active by default
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Matches reports whether the rule text occurs in description, ignoring case.
func (r *CategoryRule) Matches(description string) bool {
	text := strings.ToLower(strings.TrimSpace(r.MatchText))
	if text == "" {
		return false
	}
	return strings.Contains(strings.ToLower(description), text)
}
