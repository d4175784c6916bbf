package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	createUseCase     *transaction.CreateTransactionUseCase
	updateUseCase     *transaction.UpdateTransactionUseCase
	deleteUseCase     *transaction.DeleteTransactionUseCase
	bulkDeleteUseCase *transaction.BulkDeleteTransactionsUseCase
	reconcileUseCase  *transaction.ReconcileTransactionUseCase
	expandUseCase     *transaction.ExpandRecurrenceUseCase
	suggestUseCase    *transaction.SuggestCategoryUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	bulkDeleteUseCase *transaction.BulkDeleteTransactionsUseCase,
	reconcileUseCase *transaction.ReconcileTransactionUseCase,
	expandUseCase *transaction.ExpandRecurrenceUseCase,
	suggestUseCase *transaction.SuggestCategoryUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		bulkDeleteUseCase: bulkDeleteUseCase,
		reconcileUseCase:  reconcileUseCase,
		expandUseCase:     expandUseCase,
		suggestUseCase:    suggestUseCase,
	}
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	accrualDate, ok := parseDate(ctx, "accrual_date", req.AccrualDate)
	if !ok {
		return
	}
	effectiveDate, ok := parseOptionalDate(ctx, "effective_date", req.EffectiveDate)
	if !ok {
		return
	}
	accountID, ok := parseOptionalID(ctx, "account_id", req.AccountID)
	if !ok {
		return
	}
	cardID, ok := parseOptionalID(ctx, "card_id", req.CardID)
	if !ok {
		return
	}
	categoryID, ok := parseOptionalID(ctx, "category_id", req.CategoryID)
	if !ok {
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:         userID,
		AccountID:      accountID,
		CardID:         cardID,
		Description:    req.Description,
		Amount:         req.Amount,
		Type:           entity.TransactionType(req.Type),
		AccrualDate:    accrualDate,
		EffectiveDate:  effectiveDate,
		Reconciled:     req.Reconciled,
		CategoryID:     categoryID,
		DocumentNumber: req.DocumentNumber,
	}
	if req.Recurrence != nil {
		input.Recurrence = &transaction.RecurrenceInput{
			Period: req.Recurrence.Period,
			Count:  req.Recurrence.Count,
		}
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		TransactionResponse: dto.ToTransactionResponse(output.Transaction),
		Occurrences:         dto.ToTransactionResponses(output.Occurrences),
	})
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "transaction")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Description:   req.Description,
		Amount:        req.Amount,
		ApplyToSeries: req.ApplyToSeries,
	}
	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}
	if input.AccrualDate, ok = parseOptionalDate(ctx, "accrual_date", req.AccrualDate); !ok {
		return
	}
	if input.EffectiveDate, ok = parseOptionalDate(ctx, "effective_date", req.EffectiveDate); !ok {
		return
	}
	if input.CategoryID, ok = parseOptionalID(ctx, "category_id", req.CategoryID); !ok {
		return
	}
	if input.AccountID, ok = parseOptionalID(ctx, "account_id", req.AccountID); !ok {
		return
	}
	if input.CardID, ok = parseOptionalID(ctx, "card_id", req.CardID); !ok {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateTransactionResponse{
		TransactionResponse: dto.ToTransactionResponse(output.Transaction),
		SeriesUpdated:       output.SeriesUpdated,
	})
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "transaction")
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		CascadeSeries: ctx.Query("cascade_series") == "true",
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteTransactionsResponse{DeletedCount: output.DeletedCount})
}

// BulkDelete handles POST /transactions/bulk-delete requests.
func (c *TransactionController) BulkDelete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.BulkDeleteTransactionsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid transaction ID format: " + raw,
			})
			return
		}
		ids = append(ids, id)
	}

	output, err := c.bulkDeleteUseCase.Execute(ctx.Request.Context(), transaction.BulkDeleteTransactionsInput{
		IDs:    ids,
		UserID: userID,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteTransactionsResponse{DeletedCount: output.DeletedCount})
}

// Reconcile handles POST /transactions/:id/reconcile requests.
func (c *TransactionController) Reconcile(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "transaction")
	if !ok {
		return
	}

	var req dto.ReconcileTransactionRequest
	if !bindJSON(ctx, &req) {
		return
	}
	effectiveDate, ok := parseDate(ctx, "effective_date", req.EffectiveDate)
	if !ok {
		return
	}

	output, err := c.reconcileUseCase.Execute(ctx.Request.Context(), transaction.ReconcileTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		EffectiveDate: effectiveDate,
		Amount:        req.Amount,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// ExpandRecurrence handles POST /transactions/:id/recurrence requests.
func (c *TransactionController) ExpandRecurrence(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "transaction")
	if !ok {
		return
	}

	var req dto.ExpandRecurrenceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.expandUseCase.Execute(ctx.Request.Context(), transaction.ExpandRecurrenceInput{
		TransactionID: transactionID,
		UserID:        userID,
		Period:        req.Period,
		Count:         req.Count,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ExpandRecurrenceResponse{
		Occurrences: dto.ToTransactionResponses(output.Occurrences),
	})
}

// SuggestCategory handles POST /transactions/suggest-category requests.
func (c *TransactionController) SuggestCategory(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.SuggestCategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), transaction.SuggestCategoryInput{
		UserID:      userID,
		Description: req.Description,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuggestCategoryResponse{
		CategoryID: output.CategoryID.String(),
		Matched:    output.Matched,
	})
}
