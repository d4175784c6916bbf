package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// ReopenOutcome describes what a reopen request did.
type ReopenOutcome string

const (
	// ReopenOutcomeReopened means the invoice is open again and its payment was removed.
	ReopenOutcomeReopened ReopenOutcome = "reopened"
	// ReopenOutcomeNotClosed means the invoice was not closed.
	ReopenOutcomeNotClosed ReopenOutcome = "not_closed"
	// ReopenOutcomePaymentReconciled means the payment was already reconciled, so nothing changed.
	ReopenOutcomePaymentReconciled ReopenOutcome = "payment_reconciled"
)

// InvoiceLifecycle closes and reopens invoices. Closing books the payment on
// the card's payment account, and reopening removes it again.
type InvoiceLifecycle struct {
	txManager    adapter.TransactionManager
	invoices     adapter.InvoiceRepository
	cards        adapter.CardRepository
	transactions adapter.TransactionRepository
	orchestrator *Orchestrator
	locker       adapter.Locker
	lockTTL      time.Duration
	system       entity.SystemCategories
}

// NewInvoiceLifecycle creates a new InvoiceLifecycle instance.
func NewInvoiceLifecycle(
	txManager adapter.TransactionManager,
	invoices adapter.InvoiceRepository,
	cards adapter.CardRepository,
	transactions adapter.TransactionRepository,
	orchestrator *Orchestrator,
	locker adapter.Locker,
	lockTTL time.Duration,
	system entity.SystemCategories,
) *InvoiceLifecycle {
	return &InvoiceLifecycle{
		txManager:    txManager,
		invoices:     invoices,
		cards:        cards,
		transactions: transactions,
		orchestrator: orchestrator,
		locker:       locker,
		lockTTL:      lockTTL,
		system:       system,
	}
}

// Close settles an open invoice with a positive total. It returns the
// payment transaction, or nil when there was nothing to close.
func (l *InvoiceLifecycle) Close(ctx context.Context, invoiceID uuid.UUID, paymentDate time.Time) (*entity.Transaction, error) {
	release, err := l.lock(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	defer release()

	var payment *entity.Transaction
	err = l.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := l.invoices.RecalculateTotal(ctx, invoiceID); err != nil {
			return err
		}
		invoice, err := l.findInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		if !invoice.CanClose() {
			return nil
		}

		card, err := l.cards.FindByID(ctx, invoice.CardID)
		if err != nil {
			return err
		}
		if card.PaymentAccountID == nil {
			return domainerror.NewInvoiceError(
				domainerror.ErrCodeCardWithoutPaymentAccount,
				"card has no payment account",
				domainerror.ErrCardWithoutPaymentAccount,
			)
		}

		dueDate := invoice.DueDate
		payment = entity.NewTransaction(
			card.UserID,
			entity.AccountTarget(*card.PaymentAccountID),
			fmt.Sprintf("Invoice payment %s - due %s", card.Name, dueDate.Format("02/01")),
			invoice.TotalAmount,
			entity.TransactionTypeDebit,
			valueobject.DateOf(paymentDate),
			&dueDate,
			l.system.InvoicePayment,
		)
		if err := l.orchestrator.Create(ctx, payment); err != nil {
			return err
		}

		closed, err := l.invoices.MarkClosed(ctx, invoice.ID, invoice.TotalAmount, payment.ID)
		if err != nil {
			return err
		}
		if !closed {
			return stateChanged()
		}

		if _, err := l.transactions.SetEffectiveDateByInvoice(ctx, invoice.ID, dueDate); err != nil {
			return err
		}

		slog.Info("invoice closed", "invoiceID", invoice.ID, "paymentID", payment.ID, "amount", invoice.TotalAmount.String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// Reopen undoes a close. A reconciled payment blocks it, since that money
// has already left the account.
func (l *InvoiceLifecycle) Reopen(ctx context.Context, invoiceID uuid.UUID) (ReopenOutcome, error) {
	release, err := l.lock(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	defer release()

	var outcome ReopenOutcome
	err = l.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := l.findInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		if !invoice.IsClosed() {
			outcome = ReopenOutcomeNotClosed
			return nil
		}

		if invoice.PaymentTransactionID != nil {
			payment, err := l.transactions.FindByID(ctx, *invoice.PaymentTransactionID)
			switch {
			case errors.Is(err, domainerror.ErrTransactionNotFound):
				// Already gone; the invoice can still be reopened.
			case err != nil:
				return err
			case payment.Reconciled:
				outcome = ReopenOutcomePaymentReconciled
				return nil
			default:
				if err := l.orchestrator.Delete(ctx, payment.ID); err != nil {
					return err
				}
			}
		}

		opened, err := l.invoices.MarkOpen(ctx, invoice.ID)
		if err != nil {
			return err
		}
		if !opened {
			return stateChanged()
		}

		outcome = ReopenOutcomeReopened
		slog.Info("invoice reopened", "invoiceID", invoice.ID)
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

func (l *InvoiceLifecycle) lock(ctx context.Context, invoiceID uuid.UUID) (func(), error) {
	release, err := l.locker.Acquire(ctx, "invoice:"+invoiceID.String(), l.lockTTL)
	if errors.Is(err, adapter.ErrLockHeld) {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceBusy,
			"invoice is being modified, try again",
			domainerror.ErrInvoiceBusy,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock invoice: %w", err)
	}
	return release, nil
}

func (l *InvoiceLifecycle) findInvoice(ctx context.Context, invoiceID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := l.invoices.FindByID(ctx, invoiceID)
	if errors.Is(err, domainerror.ErrInvoiceNotFound) {
		return nil, domainerror.NewInvoiceError(domainerror.ErrCodeInvoiceNotFound, "invoice not found", err)
	}
	return invoice, err
}

func stateChanged() error {
	return domainerror.NewInvoiceError(
		domainerror.ErrCodeInvoiceStateChanged,
		"invoice status changed concurrently",
		domainerror.ErrInvoiceStateChanged,
	)
}
