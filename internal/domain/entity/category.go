// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// systemCategoryNamespace seeds the deterministic IDs of system categories.
var systemCategoryNamespace = uuid.MustParse("0f4b9a3e-6c1d-4f58-9b7a-2d8e5c3a1f60")

// Category represents a transaction category. System categories have no owner
// and are shared by every user.
type Category struct {
	ID        uuid.UUID
	Name      string
	UserID    *uuid.UUID // nil for system categories
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new user-owned Category entity.
func NewCategory(userID uuid.UUID, name string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		UserID:    &userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsSystem reports whether the category is shared by every user.
func (c *Category) IsSystem() bool {
	return c.UserID == nil
}

// VisibleTo reports whether the user may assign the category.
func (c *Category) VisibleTo(userID uuid.UUID) bool {
	return c.IsSystem() || *c.UserID == userID
}

// SystemCategories holds the IDs of the categories seeded at startup.
type SystemCategories struct {
	Other          uuid.UUID
	InvoicePayment uuid.UUID
}

// DefaultSystemCategories returns the stable IDs of the seeded system categories.
func DefaultSystemCategories() SystemCategories {
	return SystemCategories{
		Other:          uuid.NewSHA1(systemCategoryNamespace, []byte("other")),
		InvoicePayment: uuid.NewSHA1(systemCategoryNamespace, []byte("invoice-payment")),
	}
}

// Seed returns the category rows that must exist for s.
func (s SystemCategories) Seed() []*Category {
	now := time.Now().UTC()

	return []*Category{
		{ID: s.Other, Name: "Other", CreatedAt: now, UpdatedAt: now},
		{ID: s.InvoicePayment, Name: "Invoice Payment", CreatedAt: now, UpdatedAt: now},
	}
}

// IsDefault reports whether id is unset or the catch-all "Other" category.
func (s SystemCategories) IsDefault(id uuid.UUID) bool {
	return id == uuid.Nil || id == s.Other
}
