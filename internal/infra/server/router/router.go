// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                    *gin.Engine
	healthController          *controller.HealthController
	accountController         *controller.AccountController
	invoiceController         *controller.InvoiceController
	transactionController     *controller.TransactionController
	categoryRuleController    *controller.CategoryRuleController
	statementImportController *controller.StatementImportController
	importRateLimiter         *middleware.RateLimiter
	authMiddleware            *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	accountController *controller.AccountController,
	invoiceController *controller.InvoiceController,
	transactionController *controller.TransactionController,
	categoryRuleController *controller.CategoryRuleController,
	statementImportController *controller.StatementImportController,
	importRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:          healthController,
		accountController:         accountController,
		invoiceController:         invoiceController,
		transactionController:     transactionController,
		categoryRuleController:    categoryRuleController,
		statementImportController: statementImportController,
		importRateLimiter:         importRateLimiter,
		authMiddleware:            authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Every route requires authentication.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())

	accounts := v1.Group("/accounts")
	{
		accounts.GET("/:id", r.accountController.Get)
		accounts.POST("/:id/recompute", r.accountController.Recompute)
		accounts.PATCH("/:id/initial-balance", r.accountController.UpdateInitialBalance)

		imports := accounts.Group("/:id/imports")
		imports.Use(r.importRateLimiter.Middleware())
		{
			imports.POST("/preview", r.statementImportController.Preview)
			imports.POST("", r.statementImportController.Confirm)
		}
	}

	cards := v1.Group("/cards")
	{
		cards.GET("/:id/invoices", r.invoiceController.List)
		cards.POST("/:id/invoices/resolve", r.invoiceController.Resolve)
	}

	invoices := v1.Group("/invoices")
	{
		invoices.GET("/:id", r.invoiceController.Get)
		invoices.POST("/:id/close", r.invoiceController.Close)
		invoices.POST("/:id/reopen", r.invoiceController.Reopen)
	}

	transactions := v1.Group("/transactions")
	{
		transactions.POST("", r.transactionController.Create)
		transactions.POST("/bulk-delete", r.transactionController.BulkDelete)
		transactions.POST("/suggest-category", r.transactionController.SuggestCategory)
		transactions.PATCH("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)
		transactions.POST("/:id/reconcile", r.transactionController.Reconcile)
		transactions.POST("/:id/recurrence", r.transactionController.ExpandRecurrence)
	}

	categoryRules := v1.Group("/category-rules")
	{
		categoryRules.GET("", r.categoryRuleController.List)
		categoryRules.POST("", r.categoryRuleController.Create)
		categoryRules.DELETE("/:id", r.categoryRuleController.Delete)
		categoryRules.POST("/:id/apply", r.categoryRuleController.Apply)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
