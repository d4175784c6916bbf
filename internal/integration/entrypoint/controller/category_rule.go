package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	categoryrule "github.com/finance-tracker/ledger/internal/application/usecase/category_rule"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// CategoryRuleController handles category rule endpoints.
type CategoryRuleController struct {
	createUseCase *categoryrule.CreateCategoryRuleUseCase
	listUseCase   *categoryrule.ListCategoryRulesUseCase
	deleteUseCase *categoryrule.DeleteCategoryRuleUseCase
	applyUseCase  *categoryrule.ApplyCategoryRuleUseCase
}

// NewCategoryRuleController creates a new category rule controller instance.
func NewCategoryRuleController(
	createUseCase *categoryrule.CreateCategoryRuleUseCase,
	listUseCase *categoryrule.ListCategoryRulesUseCase,
	deleteUseCase *categoryrule.DeleteCategoryRuleUseCase,
	applyUseCase *categoryrule.ApplyCategoryRuleUseCase,
) *CategoryRuleController {
	return &CategoryRuleController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
		applyUseCase:  applyUseCase,
	}
}

// List handles GET /category-rules requests.
func (c *CategoryRuleController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), categoryrule.ListCategoryRulesInput{
		UserID:     userID,
		ActiveOnly: ctx.Query("active_only") == "true",
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListCategoryRulesResponse{
		Rules: dto.ToCategoryRuleResponses(output.Rules),
	})
}

// Create handles POST /category-rules requests.
func (c *CategoryRuleController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRuleRequest
	if !bindJSON(ctx, &req) {
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), categoryrule.CreateCategoryRuleInput{
		UserID:        userID,
		MatchText:     req.MatchText,
		CategoryID:    categoryID,
		Priority:      req.Priority,
		ApplyExisting: req.ApplyExisting,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateCategoryRuleResponse{
		Rule:                dto.ToCategoryRuleResponse(output.Rule),
		TransactionsUpdated: output.TransactionsUpdated,
	})
}

// Delete handles DELETE /category-rules/:id requests.
func (c *CategoryRuleController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	ruleID, ok := pathID(ctx, "category rule")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), categoryrule.DeleteCategoryRuleInput{
		RuleID: ruleID,
		UserID: userID,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Apply handles POST /category-rules/:id/apply requests.
func (c *CategoryRuleController) Apply(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	ruleID, ok := pathID(ctx, "category rule")
	if !ok {
		return
	}

	output, err := c.applyUseCase.Execute(ctx.Request.Context(), categoryrule.ApplyCategoryRuleInput{
		RuleID: ruleID,
		UserID: userID,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ApplyCategoryRuleResponse{
		TransactionsUpdated: output.TransactionsUpdated,
	})
}
