package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/account"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// AccountController handles account balance endpoints.
type AccountController struct {
	getUseCase                  *account.GetAccountUseCase
	recomputeUseCase            *account.RecomputeBalanceUseCase
	updateInitialBalanceUseCase *account.UpdateInitialBalanceUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	getUseCase *account.GetAccountUseCase,
	recomputeUseCase *account.RecomputeBalanceUseCase,
	updateInitialBalanceUseCase *account.UpdateInitialBalanceUseCase,
) *AccountController {
	return &AccountController{
		getUseCase:                  getUseCase,
		recomputeUseCase:            recomputeUseCase,
		updateInitialBalanceUseCase: updateInitialBalanceUseCase,
	}
}

// Get handles GET /accounts/:id requests.
func (c *AccountController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	accountID, ok := pathID(ctx, "account")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), account.GetAccountInput{
		AccountID: accountID,
		UserID:    userID,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output.Account))
}

// Recompute handles POST /accounts/:id/recompute requests.
func (c *AccountController) Recompute(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	accountID, ok := pathID(ctx, "account")
	if !ok {
		return
	}

	output, err := c.recomputeUseCase.Execute(ctx.Request.Context(), account.RecomputeBalanceInput{
		AccountID: accountID,
		UserID:    userID,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output.Account))
}

// UpdateInitialBalance handles PATCH /accounts/:id/initial-balance requests.
func (c *AccountController) UpdateInitialBalance(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	accountID, ok := pathID(ctx, "account")
	if !ok {
		return
	}

	var req dto.UpdateInitialBalanceRequest
	if !bindJSON(ctx, &req) {
		return
	}
	date, ok := parseDate(ctx, "initial_balance_date", req.InitialBalanceDate)
	if !ok {
		return
	}

	output, err := c.updateInitialBalanceUseCase.Execute(ctx.Request.Context(), account.UpdateInitialBalanceInput{
		AccountID:          accountID,
		UserID:             userID,
		InitialBalance:     req.InitialBalance,
		InitialBalanceDate: date,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output.Account))
}
