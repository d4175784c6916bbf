// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/application/usecase/account"
	categoryrule "github.com/finance-tracker/ledger/internal/application/usecase/category_rule"
	"github.com/finance-tracker/ledger/internal/application/usecase/invoice"
	statementimport "github.com/finance-tracker/ledger/internal/application/usecase/statement_import"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/infra/server/router"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledger/internal/integration/lock"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	System entity.SystemCategories
	Router *router.Router
}

// Options carries the optional collaborators of NewInjector.
type Options struct {
	// Redis backs the distributed locker. Nil selects the in-process locker.
	Redis *redis.Client
	// Clock defaults to the wall clock.
	Clock adapter.Clock
	// CacheHealthChecker is reported by the health endpoint when set.
	CacheHealthChecker func() bool
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	policy, err := ledger.ParseBalancePolicy(cfg.Ledger.BalancePolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_BALANCE_POLICY: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = adapter.SystemClock{}
	}

	var locker adapter.Locker
	if opts.Redis != nil {
		locker = lock.NewRedisLocker(opts.Redis)
	} else {
		locker = lock.NewLocalLocker()
	}

	system := entity.DefaultSystemCategories()

	// Create repositories
	txManager := persistence.NewTransactionManager(db)
	accountRepo := persistence.NewAccountRepository(db)
	cardRepo := persistence.NewCardRepository(db)
	invoiceRepo := persistence.NewInvoiceRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	ruleRepo := persistence.NewCategoryRuleRepository(db)

	// Create ledger services
	balances := ledger.NewBalanceRecalculator(accountRepo, clock, policy)
	resolver := ledger.NewInvoiceResolver(invoiceRepo)
	engine := ledger.NewRuleEngine(ruleRepo, transactionRepo, system)
	orchestrator := ledger.NewOrchestrator(
		txManager,
		transactionRepo,
		cardRepo,
		invoiceRepo,
		categoryRepo,
		resolver,
		engine,
		balances,
		ledger.NewInvoiceTotals(invoiceRepo),
		clock,
		system,
	)
	lifecycle := ledger.NewInvoiceLifecycle(txManager, invoiceRepo, cardRepo, transactionRepo, orchestrator, locker, cfg.Ledger.LockTTL, system)
	recurrence := ledger.NewRecurrenceGenerator(orchestrator)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return sqlDB.PingContext(ctx) == nil
	}, opts.CacheHealthChecker)

	accountController := controller.NewAccountController(
		account.NewGetAccountUseCase(accountRepo, balances),
		account.NewRecomputeBalanceUseCase(accountRepo, balances),
		account.NewUpdateInitialBalanceUseCase(txManager, accountRepo, balances),
	)

	invoiceController := controller.NewInvoiceController(
		invoice.NewResolveInvoiceUseCase(cardRepo, resolver),
		invoice.NewListInvoicesUseCase(cardRepo, invoiceRepo),
		invoice.NewGetInvoiceUseCase(invoiceRepo, cardRepo, transactionRepo),
		invoice.NewCloseInvoiceUseCase(invoiceRepo, cardRepo, lifecycle, clock),
		invoice.NewReopenInvoiceUseCase(invoiceRepo, cardRepo, lifecycle),
	)

	transactionController := controller.NewTransactionController(
		transaction.NewCreateTransactionUseCase(accountRepo, cardRepo, orchestrator, recurrence),
		transaction.NewUpdateTransactionUseCase(transactionRepo, accountRepo, cardRepo, invoiceRepo, orchestrator),
		transaction.NewDeleteTransactionUseCase(transactionRepo, invoiceRepo, orchestrator),
		transaction.NewBulkDeleteTransactionsUseCase(transactionRepo, invoiceRepo, orchestrator),
		transaction.NewReconcileTransactionUseCase(transactionRepo, invoiceRepo, orchestrator),
		transaction.NewExpandRecurrenceUseCase(transactionRepo, recurrence),
		transaction.NewSuggestCategoryUseCase(engine, system),
	)

	categoryRuleController := controller.NewCategoryRuleController(
		categoryrule.NewCreateCategoryRuleUseCase(ruleRepo, categoryRepo, engine),
		categoryrule.NewListCategoryRulesUseCase(ruleRepo),
		categoryrule.NewDeleteCategoryRuleUseCase(ruleRepo),
		categoryrule.NewApplyCategoryRuleUseCase(ruleRepo, engine),
	)

	statementImportController := controller.NewStatementImportController(
		statementimport.NewPreviewImportUseCase(accountRepo, transactionRepo, engine),
		statementimport.NewConfirmImportUseCase(accountRepo, transactionRepo, orchestrator, locker, cfg.Ledger.LockTTL, clock),
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var importRateLimiter *middleware.RateLimiter
	if cfg.Server.IsTest() {
		importRateLimiter = middleware.NewRateLimiterWithConfig(1000, time.Minute)
	} else {
		importRateLimiter = middleware.NewRateLimiterWithConfig(cfg.Ledger.ImportRateLimit, time.Minute)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		accountController,
		invoiceController,
		transactionController,
		categoryRuleController,
		statementImportController,
		importRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		System: system,
		Router: r,
	}, nil
}

// SeedSystemCategories inserts the system categories when missing.
func (i *Injector) SeedSystemCategories(ctx context.Context) error {
	if err := persistence.NewCategoryRepository(i.DB).EnsureExists(ctx, i.System.Seed()); err != nil {
		return fmt.Errorf("failed to seed system categories: %w", err)
	}
	return nil
}
