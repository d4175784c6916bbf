package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// Orchestrator is the single write path for ledger rows. Each mutation runs
// validate, pre-persist, persist and post-persist inside one database
// transaction, so derived balances and invoice totals never drift from the rows.
type Orchestrator struct {
	txManager    adapter.TransactionManager
	transactions adapter.TransactionRepository
	cards        adapter.CardRepository
	invoices     adapter.InvoiceRepository
	categories   adapter.CategoryRepository
	resolver     *InvoiceResolver
	rules        *RuleEngine
	balances     *BalanceRecalculator
	totals       *InvoiceTotals
	clock        adapter.Clock
	system       entity.SystemCategories
}

// NewOrchestrator creates a new Orchestrator instance.
func NewOrchestrator(
	txManager adapter.TransactionManager,
	transactions adapter.TransactionRepository,
	cards adapter.CardRepository,
	invoices adapter.InvoiceRepository,
	categories adapter.CategoryRepository,
	resolver *InvoiceResolver,
	rules *RuleEngine,
	balances *BalanceRecalculator,
	totals *InvoiceTotals,
	clock adapter.Clock,
	system entity.SystemCategories,
) *Orchestrator {
	return &Orchestrator{
		txManager:    txManager,
		transactions: transactions,
		cards:        cards,
		invoices:     invoices,
		categories:   categories,
		resolver:     resolver,
		rules:        rules,
		balances:     balances,
		totals:       totals,
		clock:        clock,
		system:       system,
	}
}

// Create validates and stores a new row, then refreshes what it touched.
func (o *Orchestrator) Create(ctx context.Context, txn *entity.Transaction) error {
	return o.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := o.validate(ctx, txn); err != nil {
			return err
		}
		if err := o.prePersist(ctx, nil, txn); err != nil {
			return err
		}
		if err := o.transactions.Create(ctx, txn); err != nil {
			return err
		}
		return o.postPersist(ctx, txn)
	})
}

// Update validates and saves an existing row, refreshing both its previous
// and its new account or invoice.
func (o *Orchestrator) Update(ctx context.Context, txn *entity.Transaction) error {
	return o.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		previous, err := o.transactions.FindByID(ctx, txn.ID)
		if err != nil {
			return transactionNotFound(err)
		}
		if err := o.validate(ctx, txn); err != nil {
			return err
		}
		if err := o.prePersist(ctx, previous, txn); err != nil {
			return err
		}
		if err := o.transactions.Update(ctx, txn); err != nil {
			return err
		}
		return o.postPersist(ctx, previous, txn)
	})
}

// Delete removes a row and refreshes what it touched. Rows of a closed
// invoice cannot be deleted.
func (o *Orchestrator) Delete(ctx context.Context, id uuid.UUID) error {
	return o.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := o.transactions.FindByID(ctx, id)
		if err != nil {
			return transactionNotFound(err)
		}
		if txn.InvoiceID != nil {
			if err := o.ensureInvoiceOpen(ctx, *txn.InvoiceID); err != nil {
				return err
			}
		}
		if err := o.transactions.Delete(ctx, id); err != nil {
			return err
		}
		return o.postPersist(ctx, txn)
	})
}

func (o *Orchestrator) validate(ctx context.Context, txn *entity.Transaction) error {
	if !txn.Target.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTarget,
			"transaction must reference exactly one account or card",
			domainerror.ErrInvalidTarget,
		)
	}
	if txn.Amount.IsNegative() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be negative",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if !txn.Type.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'credit' or 'debit'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if txn.AccrualDate.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingAccrualDate,
			"accrual date is required",
			domainerror.ErrMissingAccrualDate,
		)
	}
	if len(txn.Description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	txn.AccrualDate = valueobject.DateOf(txn.AccrualDate)
	if txn.EffectiveDate != nil {
		effective := valueobject.DateOf(*txn.EffectiveDate)
		txn.EffectiveDate = &effective
	}

	if txn.Reconciled {
		today := valueobject.DateOf(o.clock.Now())
		if txn.EffectiveDate == nil || txn.EffectiveDate.After(today) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeReconcileFutureDate,
				"only transactions effective up to today can be reconciled",
				domainerror.ErrReconcileFutureDate,
			)
		}
	}

	if !o.system.IsDefault(txn.CategoryID) && txn.CategoryID != o.system.InvoicePayment {
		category, err := o.categories.FindByID(ctx, txn.CategoryID)
		if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
			return err
		}
		if err != nil || !category.VisibleTo(txn.UserID) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
	}

	return nil
}

// prePersist categorizes the row and binds it to its invoice. previous is nil on create.
func (o *Orchestrator) prePersist(ctx context.Context, previous, txn *entity.Transaction) error {
	if _, err := o.rules.Apply(ctx, txn); err != nil {
		return err
	}
	if txn.CategoryID == uuid.Nil {
		txn.CategoryID = o.system.Other
	}

	if previous != nil && previous.InvoiceID != nil && changesInvoice(previous, txn) {
		if err := o.ensureInvoiceOpen(ctx, *previous.InvoiceID); err != nil {
			return err
		}
	}

	cardID, ok := txn.CardID()
	if !ok {
		txn.InvoiceID = nil
		return nil
	}

	card, err := o.cards.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return domainerror.NewInvoiceError(domainerror.ErrCodeCardNotFound, "card not found", err)
		}
		return err
	}
	if card.UserID != txn.UserID {
		return domainerror.NewInvoiceError(domainerror.ErrCodeCardNotFound, "card not found", domainerror.ErrCardNotFound)
	}

	invoice, err := o.resolver.Resolve(ctx, card, txn.AccrualDate)
	if err != nil {
		return err
	}

	joining := previous == nil || changesInvoice(previous, txn) || !sameInvoice(previous.InvoiceID, invoice.ID)
	if invoice.IsClosed() && joining {
		return invoiceClosed()
	}

	txn.InvoiceID = &invoice.ID
	return nil
}

// postPersist refreshes every account and invoice the given row versions touch.
func (o *Orchestrator) postPersist(ctx context.Context, versions ...*entity.Transaction) error {
	var accounts, invoices []uuid.UUID
	for _, txn := range versions {
		if accountID, ok := txn.AccountID(); ok {
			accounts = append(accounts, accountID)
		}
		if txn.InvoiceID != nil {
			invoices = append(invoices, *txn.InvoiceID)
		}
	}

	if b := batchFrom(ctx); b != nil {
		b.record(accounts, invoices)
		return nil
	}
	return o.refresh(ctx, dedupe(accounts), dedupe(invoices))
}

func (o *Orchestrator) refresh(ctx context.Context, accounts, invoices []uuid.UUID) error {
	for _, id := range invoices {
		if err := o.totals.Recompute(ctx, id); err != nil {
			return err
		}
	}
	for _, id := range accounts {
		if err := o.balances.Recompute(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) ensureInvoiceOpen(ctx context.Context, invoiceID uuid.UUID) error {
	invoice, err := o.invoices.FindByID(ctx, invoiceID)
	if errors.Is(err, domainerror.ErrInvoiceNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if invoice.IsClosed() {
		return invoiceClosed()
	}
	return nil
}

// Batch runs fn in one database transaction with recalculation deferred:
// writes made through ctx only record the accounts and invoices they touch,
// and each of those is refreshed once after fn succeeds. A nested Batch joins
// the outer one. The deferred state lives in the context handed to fn, so
// callers outside fn are never affected.
func (o *Orchestrator) Batch(ctx context.Context, fn func(ctx context.Context) error) error {
	if batchFrom(ctx) != nil {
		return fn(ctx)
	}

	return o.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		b := &batch{}
		if err := fn(context.WithValue(ctx, batchKey{}, b)); err != nil {
			return err
		}

		accounts, invoices := b.drain()
		slog.Debug("ledger batch flushed", "accounts", len(accounts), "invoices", len(invoices))
		return o.refresh(ctx, accounts, invoices)
	})
}

type batchKey struct{}

// batch collects the IDs touched while recalculation is deferred.
type batch struct {
	mu       sync.Mutex
	accounts []uuid.UUID
	invoices []uuid.UUID
}

func batchFrom(ctx context.Context) *batch {
	b, _ := ctx.Value(batchKey{}).(*batch)
	return b
}

func (b *batch) record(accounts, invoices []uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.accounts = append(b.accounts, accounts...)
	b.invoices = append(b.invoices, invoices...)
}

// drain returns each recorded ID once, in first-touched order.
func (b *batch) drain() (accounts, invoices []uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return dedupe(b.accounts), dedupe(b.invoices)
}

// changesInvoice reports whether the edit alters what previous contributes to its invoice.
func changesInvoice(previous, txn *entity.Transaction) bool {
	return previous.Target != txn.Target ||
		!previous.Amount.Equal(txn.Amount) ||
		previous.Type != txn.Type ||
		!previous.AccrualDate.Equal(txn.AccrualDate)
}

func sameInvoice(current *uuid.UUID, id uuid.UUID) bool {
	return current != nil && *current == id
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func invoiceClosed() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvoiceClosed,
		"invoice is closed, reopen it first",
		domainerror.ErrInvoiceClosed,
	)
}

func transactionNotFound(err error) error {
	if errors.Is(err, domainerror.ErrTransactionNotFound) {
		return domainerror.NewTransactionError(domainerror.ErrCodeTransactionNotFound, "transaction not found", err)
	}
	return err
}
