// Package invoice contains credit card invoice use cases.
package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// findOwnedCard loads a card and checks it belongs to userID.
func findOwnedCard(ctx context.Context, cardRepo adapter.CardRepository, cardID, userID uuid.UUID) (*entity.Card, error) {
	card, err := cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return nil, cardNotFound()
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	if card.UserID != userID {
		return nil, cardNotFound()
	}
	return card, nil
}

// findOwnedInvoice loads an invoice and checks its card belongs to userID.
func findOwnedInvoice(
	ctx context.Context,
	invoiceRepo adapter.InvoiceRepository,
	cardRepo adapter.CardRepository,
	invoiceID, userID uuid.UUID,
) (*entity.Invoice, *entity.Card, error) {
	invoice, err := invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return nil, nil, invoiceNotFound()
		}
		return nil, nil, fmt.Errorf("failed to find invoice: %w", err)
	}

	card, err := cardRepo.FindByID(ctx, invoice.CardID)
	if err != nil && !errors.Is(err, domainerror.ErrCardNotFound) {
		return nil, nil, fmt.Errorf("failed to find card: %w", err)
	}
	if err != nil || card.UserID != userID {
		return nil, nil, invoiceNotFound()
	}
	return invoice, card, nil
}

func cardNotFound() error {
	return domainerror.NewInvoiceError(
		domainerror.ErrCodeCardNotFound,
		"card not found",
		domainerror.ErrCardNotFound,
	)
}

func invoiceNotFound() error {
	return domainerror.NewInvoiceError(
		domainerror.ErrCodeInvoiceNotFound,
		"invoice not found",
		domainerror.ErrInvoiceNotFound,
	)
}
