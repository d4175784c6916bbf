// Package ledgertest wires the ledger services over an in-memory database for use case tests.
package ledgertest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/lock"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/persistencetest"
)

// Clock is a settable adapter.Clock.
type Clock struct {
	Time time.Time
}

// Now returns the configured time.
func (c *Clock) Now() time.Time {
	return c.Time
}

// Env holds repositories and services sharing one test database.
type Env struct {
	System       entity.SystemCategories
	Clock        *Clock
	Locker       adapter.Locker
	TxManager    adapter.TransactionManager
	Accounts     adapter.AccountRepository
	Cards        adapter.CardRepository
	Invoices     adapter.InvoiceRepository
	Transactions adapter.TransactionRepository
	Categories   adapter.CategoryRepository
	Rules        adapter.CategoryRuleRepository
	Balances     *ledger.BalanceRecalculator
	Resolver     *ledger.InvoiceResolver
	Engine       *ledger.RuleEngine
	Orchestrator *ledger.Orchestrator
	Lifecycle    *ledger.InvoiceLifecycle
	Recurrence   *ledger.RecurrenceGenerator
}

// New creates an Env whose clock reads 2024-06-15 and whose system categories are seeded.
func New(t testing.TB) *Env {
	t.Helper()

	db := persistencetest.NewDB(t)
	env := &Env{
		System:       entity.DefaultSystemCategories(),
		Clock:        &Clock{Time: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)},
		Locker:       lock.NewLocalLocker(),
		TxManager:    persistence.NewTransactionManager(db),
		Accounts:     persistence.NewAccountRepository(db),
		Cards:        persistence.NewCardRepository(db),
		Invoices:     persistence.NewInvoiceRepository(db),
		Transactions: persistence.NewTransactionRepository(db),
		Categories:   persistence.NewCategoryRepository(db),
		Rules:        persistence.NewCategoryRuleRepository(db),
	}
	if err := env.Categories.EnsureExists(context.Background(), env.System.Seed()); err != nil {
		t.Fatalf("seed categories: %v", err)
	}

	env.Balances = ledger.NewBalanceRecalculator(env.Accounts, env.Clock, ledger.BalancePolicyToDate)
	env.Resolver = ledger.NewInvoiceResolver(env.Invoices)
	env.Engine = ledger.NewRuleEngine(env.Rules, env.Transactions, env.System)
	env.Orchestrator = ledger.NewOrchestrator(
		env.TxManager,
		env.Transactions,
		env.Cards,
		env.Invoices,
		env.Categories,
		env.Resolver,
		env.Engine,
		env.Balances,
		ledger.NewInvoiceTotals(env.Invoices),
		env.Clock,
		env.System,
	)
	env.Lifecycle = ledger.NewInvoiceLifecycle(env.TxManager, env.Invoices, env.Cards, env.Transactions, env.Orchestrator, env.Locker, time.Minute, env.System)
	env.Recurrence = ledger.NewRecurrenceGenerator(env.Orchestrator)
	return env
}

// Account stores an account opened on 2024-01-01.
func (e *Env) Account(t testing.TB, userID uuid.UUID, initial string) *entity.Account {
	t.Helper()
	account := entity.NewAccount(userID, "Checking", decimal.RequireFromString(initial), Date(2024, 1, 1))
	if err := e.Accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

// Card stores a card with the given billing days.
func (e *Env) Card(t testing.TB, userID uuid.UUID, closingDay, dueDay int, paymentAccountID *uuid.UUID) *entity.Card {
	t.Helper()
	card := entity.NewCard(userID, "Gold", decimal.NewFromInt(5000), closingDay, dueDay, paymentAccountID)
	if err := e.Cards.Create(context.Background(), card); err != nil {
		t.Fatalf("create card: %v", err)
	}
	return card
}

// Category stores a user category.
func (e *Env) Category(t testing.TB, userID uuid.UUID, name string) *entity.Category {
	t.Helper()
	category := entity.NewCategory(userID, name)
	if err := e.Categories.Create(context.Background(), category); err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

// Balance returns the stored computed balance of an account.
func (e *Env) Balance(t testing.TB, accountID uuid.UUID) decimal.Decimal {
	t.Helper()
	account, err := e.Accounts.FindByID(context.Background(), accountID)
	if err != nil {
		t.Fatalf("find account: %v", err)
	}
	return account.ComputedBalance
}

// Date returns midnight UTC of the given day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
