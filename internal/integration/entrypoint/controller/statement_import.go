package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	statementimport "github.com/finance-tracker/ledger/internal/application/usecase/statement_import"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// StatementImportController handles bank statement import endpoints.
type StatementImportController struct {
	previewUseCase *statementimport.PreviewImportUseCase
	confirmUseCase *statementimport.ConfirmImportUseCase
}

// NewStatementImportController creates a new statement import controller instance.
func NewStatementImportController(
	previewUseCase *statementimport.PreviewImportUseCase,
	confirmUseCase *statementimport.ConfirmImportUseCase,
) *StatementImportController {
	return &StatementImportController{
		previewUseCase: previewUseCase,
		confirmUseCase: confirmUseCase,
	}
}

// Preview handles POST /accounts/:id/imports/preview requests.
func (c *StatementImportController) Preview(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	accountID, ok := pathID(ctx, "account")
	if !ok {
		return
	}

	rows, ok := c.bindRows(ctx)
	if !ok {
		return
	}

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), statementimport.PreviewImportInput{
		AccountID: accountID,
		UserID:    userID,
		Rows:      rows,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreviewImportResponse(output))
}

// Confirm handles POST /accounts/:id/imports requests.
func (c *StatementImportController) Confirm(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	accountID, ok := pathID(ctx, "account")
	if !ok {
		return
	}

	rows, ok := c.bindRows(ctx)
	if !ok {
		return
	}

	output, err := c.confirmUseCase.Execute(ctx.Request.Context(), statementimport.ConfirmImportInput{
		AccountID: accountID,
		UserID:    userID,
		Rows:      rows,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToConfirmImportResponse(output))
}

func (c *StatementImportController) bindRows(ctx *gin.Context) ([]statementimport.RawRow, bool) {
	var req dto.ImportRequest
	if !bindJSON(ctx, &req) {
		return nil, false
	}

	rows := make([]statementimport.RawRow, 0, len(req.Rows))
	for _, r := range req.Rows {
		categoryID, ok := parseOptionalID(ctx, "category_id", r.CategoryID)
		if !ok {
			return nil, false
		}
		rows = append(rows, statementimport.RawRow{
			EffectiveDate:  r.EffectiveDate,
			AccrualDate:    r.AccrualDate,
			Description:    r.Description,
			DocumentNumber: r.DocumentNumber,
			Amount:         r.Amount,
			CategoryID:     categoryID,
		})
	}
	return rows, true
}
