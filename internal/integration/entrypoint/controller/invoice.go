package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/application/usecase/invoice"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// InvoiceController handles credit card invoice endpoints.
type InvoiceController struct {
	resolveUseCase *invoice.ResolveInvoiceUseCase
	listUseCase    *invoice.ListInvoicesUseCase
	getUseCase     *invoice.GetInvoiceUseCase
	closeUseCase   *invoice.CloseInvoiceUseCase
	reopenUseCase  *invoice.ReopenInvoiceUseCase
}

// NewInvoiceController creates a new invoice controller instance.
func NewInvoiceController(
	resolveUseCase *invoice.ResolveInvoiceUseCase,
	listUseCase *invoice.ListInvoicesUseCase,
	getUseCase *invoice.GetInvoiceUseCase,
	closeUseCase *invoice.CloseInvoiceUseCase,
	reopenUseCase *invoice.ReopenInvoiceUseCase,
) *InvoiceController {
	return &InvoiceController{
		resolveUseCase: resolveUseCase,
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
		closeUseCase:   closeUseCase,
		reopenUseCase:  reopenUseCase,
	}
}

// Resolve handles POST /cards/:id/invoices/resolve requests.
func (c *InvoiceController) Resolve(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	cardID, ok := pathID(ctx, "card")
	if !ok {
		return
	}

	var req dto.ResolveInvoiceRequest
	if !bindJSON(ctx, &req) {
		return
	}
	accrualDate, ok := parseDate(ctx, "accrual_date", req.AccrualDate)
	if !ok {
		return
	}

	output, err := c.resolveUseCase.Execute(ctx.Request.Context(), invoice.ResolveInvoiceInput{
		CardID:      cardID,
		UserID:      userID,
		AccrualDate: accrualDate,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output.Invoice))
}

// List handles GET /cards/:id/invoices requests.
func (c *InvoiceController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	cardID, ok := pathID(ctx, "card")
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), invoice.ListInvoicesInput{
		CardID: cardID,
		UserID: userID,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListInvoicesResponse{
		Invoices: dto.ToInvoiceResponses(output.Invoices),
	})
}

// Get handles GET /invoices/:id requests.
func (c *InvoiceController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	invoiceID, ok := pathID(ctx, "invoice")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), invoice.GetInvoiceInput{
		InvoiceID: invoiceID,
		UserID:    userID,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.InvoiceDetailResponse{
		InvoiceResponse: dto.ToInvoiceResponse(output.Invoice),
		CardName:        output.Card.Name,
		Transactions:    dto.ToTransactionResponses(output.Transactions),
	})
}

// Close handles POST /invoices/:id/close requests.
func (c *InvoiceController) Close(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	invoiceID, ok := pathID(ctx, "invoice")
	if !ok {
		return
	}

	// The body is optional
	var req dto.CloseInvoiceRequest
	if ctx.Request.ContentLength > 0 && !bindJSON(ctx, &req) {
		return
	}
	var paymentDate *time.Time
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		date, err := valueobject.ParseDate(*req.PaymentDate)
		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid payment_date format. Use YYYY-MM-DD", string(domainerror.ErrCodeInvalidPaymentDate))
			return
		}
		paymentDate = &date
	}

	output, err := c.closeUseCase.Execute(ctx.Request.Context(), invoice.CloseInvoiceInput{
		InvoiceID:   invoiceID,
		UserID:      userID,
		PaymentDate: paymentDate,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	response := dto.CloseInvoiceResponse{Invoice: dto.ToInvoiceResponse(output.Invoice)}
	if output.Payment != nil {
		id := output.Payment.ID.String()
		response.PaymentTransactionID = &id
	}
	ctx.JSON(http.StatusOK, response)
}

// Reopen handles POST /invoices/:id/reopen requests.
func (c *InvoiceController) Reopen(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	invoiceID, ok := pathID(ctx, "invoice")
	if !ok {
		return
	}

	output, err := c.reopenUseCase.Execute(ctx.Request.Context(), invoice.ReopenInvoiceInput{
		InvoiceID: invoiceID,
		UserID:    userID,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	switch output.Outcome {
	case ledger.ReopenOutcomeNotClosed:
		respondError(ctx, http.StatusConflict, domainerror.ErrInvoiceNotClosed.Error(), string(domainerror.ErrCodeInvoiceNotClosed))
	case ledger.ReopenOutcomePaymentReconciled:
		respondError(ctx, http.StatusConflict, domainerror.ErrInvoicePaymentReconciled.Error(), string(domainerror.ErrCodeInvoicePaymentReconciled))
	default:
		ctx.JSON(http.StatusOK, dto.ReopenInvoiceResponse{
			Reopened: output.Reopened(),
			Invoice:  dto.ToInvoiceResponse(output.Invoice),
		})
	}
}
