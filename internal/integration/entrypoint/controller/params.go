package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// currentUser returns the authenticated user, answering 401 when there is none.
func currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
	}
	return userID, ok
}

// pathID parses the :id path parameter, answering 400 when it is malformed.
func pathID(ctx *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + what + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body, answering 400 when it is invalid.
func bindJSON(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// parseDate parses a yyyy-mm-dd field.
func parseDate(ctx *gin.Context, field, value string) (time.Time, bool) {
	date, err := valueobject.ParseDate(value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + field + " format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		})
		return time.Time{}, false
	}
	return date, true
}

// parseOptionalDate parses a yyyy-mm-dd field that may be absent.
func parseOptionalDate(ctx *gin.Context, field string, value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	date, ok := parseDate(ctx, field, *value)
	if !ok {
		return nil, false
	}
	return &date, true
}

// parseOptionalID parses an ID field that may be absent.
func parseOptionalID(ctx *gin.Context, field string, value *string) (*uuid.UUID, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + field + " format",
		})
		return nil, false
	}
	return &id, true
}
