package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/persistencetest"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type memoryLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func (l *memoryLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[key] {
		return nil, adapter.ErrLockHeld
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, nil
}

type fixture struct {
	ctx          context.Context
	userID       uuid.UUID
	system       entity.SystemCategories
	clock        *fixedClock
	locker       *memoryLocker
	accounts     adapter.AccountRepository
	cards        adapter.CardRepository
	invoices     adapter.InvoiceRepository
	transactions adapter.TransactionRepository
	categories   adapter.CategoryRepository
	rules        adapter.CategoryRuleRepository
	resolver     *ledger.InvoiceResolver
	engine       *ledger.RuleEngine
	orchestrator *ledger.Orchestrator
	lifecycle    *ledger.InvoiceLifecycle
	recurrence   *ledger.RecurrenceGenerator
}

func newFixture(t *testing.T, policy ledger.BalancePolicy) *fixture {
	t.Helper()

	db := persistencetest.NewDB(t)
	f := &fixture{
		ctx:          context.Background(),
		userID:       uuid.New(),
		system:       entity.DefaultSystemCategories(),
		clock:        &fixedClock{now: time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)},
		locker:       &memoryLocker{held: make(map[string]bool)},
		accounts:     persistence.NewAccountRepository(db),
		cards:        persistence.NewCardRepository(db),
		invoices:     persistence.NewInvoiceRepository(db),
		transactions: persistence.NewTransactionRepository(db),
		categories:   persistence.NewCategoryRepository(db),
		rules:        persistence.NewCategoryRuleRepository(db),
	}
	if err := f.categories.EnsureExists(f.ctx, f.system.Seed()); err != nil {
		t.Fatalf("seed categories: %v", err)
	}

	txManager := persistence.NewTransactionManager(db)
	f.resolver = ledger.NewInvoiceResolver(f.invoices)
	f.engine = ledger.NewRuleEngine(f.rules, f.transactions, f.system)
	f.orchestrator = ledger.NewOrchestrator(
		txManager,
		f.transactions,
		f.cards,
		f.invoices,
		f.categories,
		f.resolver,
		f.engine,
		ledger.NewBalanceRecalculator(f.accounts, f.clock, policy),
		ledger.NewInvoiceTotals(f.invoices),
		f.clock,
		f.system,
	)
	f.lifecycle = ledger.NewInvoiceLifecycle(txManager, f.invoices, f.cards, f.transactions, f.orchestrator, f.locker, time.Minute, f.system)
	f.recurrence = ledger.NewRecurrenceGenerator(f.orchestrator)
	return f
}

func (f *fixture) account(t *testing.T, initial string) *entity.Account {
	t.Helper()
	account := entity.NewAccount(f.userID, "Checking", dec(initial), date(2024, 1, 1))
	if err := f.accounts.Create(f.ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

func (f *fixture) card(t *testing.T, closingDay, dueDay int, paymentAccountID *uuid.UUID) *entity.Card {
	t.Helper()
	card := entity.NewCard(f.userID, "Gold", dec("5000"), closingDay, dueDay, paymentAccountID)
	if err := f.cards.Create(f.ctx, card); err != nil {
		t.Fatalf("create card: %v", err)
	}
	return card
}

func (f *fixture) category(t *testing.T, name string) *entity.Category {
	t.Helper()
	category := entity.NewCategory(f.userID, name)
	if err := f.categories.Create(f.ctx, category); err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func (f *fixture) create(t *testing.T, target entity.Target, amount string, typ entity.TransactionType, accrual time.Time, effective *time.Time) *entity.Transaction {
	t.Helper()
	txn := entity.NewTransaction(f.userID, target, "purchase", dec(amount), typ, accrual, effective, uuid.Nil)
	if err := f.orchestrator.Create(f.ctx, txn); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return txn
}

func (f *fixture) balance(t *testing.T, accountID uuid.UUID) decimal.Decimal {
	t.Helper()
	account, err := f.accounts.FindByID(f.ctx, accountID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	return account.ComputedBalance
}

func (f *fixture) invoice(t *testing.T, invoiceID uuid.UUID) *entity.Invoice {
	t.Helper()
	invoice, err := f.invoices.FindByID(f.ctx, invoiceID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	return invoice
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
