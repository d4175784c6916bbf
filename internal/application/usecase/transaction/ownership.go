// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// targets checks that the account or card a row is booked against belongs to the user.
type targets struct {
	accountRepo adapter.AccountRepository
	cardRepo    adapter.CardRepository
}

// buildTarget turns the optional account and card IDs of a request into a Target.
// Exactly one of them must be set.
func buildTarget(accountID, cardID *uuid.UUID) (entity.Target, error) {
	switch {
	case accountID != nil && cardID == nil:
		return entity.AccountTarget(*accountID), nil
	case cardID != nil && accountID == nil:
		return entity.CardTarget(*cardID), nil
	default:
		return entity.Target{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTarget,
			"exactly one of account_id and card_id is required",
			domainerror.ErrInvalidTarget,
		)
	}
}

func (t targets) checkOwned(ctx context.Context, target entity.Target, userID uuid.UUID) error {
	if accountID, ok := target.AccountID(); ok {
		account, err := t.accountRepo.FindByID(ctx, accountID)
		if err != nil && !errors.Is(err, domainerror.ErrAccountNotFound) {
			return fmt.Errorf("failed to find account: %w", err)
		}
		if err != nil || account.UserID != userID {
			return domainerror.NewAccountError(domainerror.ErrCodeAccountNotFound, "account not found", domainerror.ErrAccountNotFound)
		}
		return nil
	}

	if cardID, ok := target.CardID(); ok {
		card, err := t.cardRepo.FindByID(ctx, cardID)
		if err != nil && !errors.Is(err, domainerror.ErrCardNotFound) {
			return fmt.Errorf("failed to find card: %w", err)
		}
		if err != nil || card.UserID != userID {
			return domainerror.NewInvoiceError(domainerror.ErrCodeCardNotFound, "card not found", domainerror.ErrCardNotFound)
		}
		return nil
	}

	return domainerror.NewTransactionError(domainerror.ErrCodeInvalidTarget, "invalid target", domainerror.ErrInvalidTarget)
}

// findOwned loads a transaction and checks it belongs to userID.
func findOwned(ctx context.Context, transactionRepo adapter.TransactionRepository, transactionID, userID uuid.UUID) (*entity.Transaction, error) {
	txn, err := transactionRepo.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, transactionNotFound()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if txn.UserID != userID {
		return nil, transactionNotFound()
	}
	return txn, nil
}

// ensureNotClosedPayment refuses changes to the payment generated by closing an invoice.
func ensureNotClosedPayment(ctx context.Context, invoiceRepo adapter.InvoiceRepository, txn *entity.Transaction) error {
	invoice, err := invoiceRepo.FindByPaymentTransactionID(ctx, txn.ID)
	if errors.Is(err, domainerror.ErrInvoiceNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check invoice payment: %w", err)
	}
	if invoice.IsClosed() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodePaymentLinkedToInvoice,
			"transaction is the payment of a closed invoice, reopen the invoice instead",
			domainerror.ErrPaymentLinkedToInvoice,
		)
	}
	return nil
}

// changesPayment reports whether after books a different amount, type or
// target than before. Those are the fields closing an invoice paid.
func changesPayment(before, after *entity.Transaction) bool {
	return before.Target != after.Target ||
		!before.Amount.Equal(after.Amount) ||
		before.Type != after.Type
}

func transactionNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}
