// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// formatDate renders a calendar date as yyyy-mm-dd.
func formatDate(t time.Time) string {
	return t.Format(valueobject.DateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func formatOptionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
