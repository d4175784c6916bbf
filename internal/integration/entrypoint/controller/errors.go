// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// handleLedgerError maps coded domain errors to HTTP responses. Uncoded
// errors are logged and reported as internal errors.
func handleLedgerError(ctx *gin.Context, err error) {
	var (
		accountErr *domainerror.AccountError
		invoiceErr *domainerror.InvoiceError
		txnErr     *domainerror.TransactionError
		ruleErr    *domainerror.CategoryRuleError
		importErr  *domainerror.ImportError
	)

	switch {
	case errors.As(err, &txnErr):
		respondError(ctx, statusForTransactionError(txnErr.Code), txnErr.Message, string(txnErr.Code))
	case errors.As(err, &invoiceErr):
		respondError(ctx, statusForInvoiceError(invoiceErr.Code), invoiceErr.Message, string(invoiceErr.Code))
	case errors.As(err, &accountErr):
		respondError(ctx, statusForAccountError(accountErr.Code), accountErr.Message, string(accountErr.Code))
	case errors.As(err, &ruleErr):
		respondError(ctx, statusForCategoryRuleError(ruleErr.Code), ruleErr.Message, string(ruleErr.Code))
	case errors.As(err, &importErr):
		respondError(ctx, statusForImportError(importErr.Code), importErr.Message, string(importErr.Code))
	default:
		slog.Error("request failed", "method", ctx.Request.Method, "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func respondError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// statusForTransactionError maps transaction error codes to HTTP status codes.
func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvoiceClosed,
		domainerror.ErrCodePaymentLinkedToInvoice:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// statusForInvoiceError maps invoice error codes to HTTP status codes.
func statusForInvoiceError(code domainerror.InvoiceErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvoiceNotFound,
		domainerror.ErrCodeCardNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvoiceNotClosed,
		domainerror.ErrCodeInvoicePaymentReconciled,
		domainerror.ErrCodeInvoiceStateChanged,
		domainerror.ErrCodeInvoiceBusy:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// statusForAccountError maps account error codes to HTTP status codes.
func statusForAccountError(code domainerror.AccountErrorCode) int {
	if code == domainerror.ErrCodeAccountNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// statusForCategoryRuleError maps category rule error codes to HTTP status codes.
func statusForCategoryRuleError(code domainerror.CategoryRuleErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryRuleNotFound,
		domainerror.ErrCodeCategoryNotFoundForRule:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// statusForImportError maps import error codes to HTTP status codes.
func statusForImportError(code domainerror.ImportErrorCode) int {
	switch code {
	case domainerror.ErrCodeImportBusy:
		return http.StatusConflict
	case domainerror.ErrCodeImportRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}
