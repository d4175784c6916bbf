// Package invoice contains credit card invoice use cases.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ResolveInvoiceInput represents the input for resolving a purchase's invoice.
type ResolveInvoiceInput struct {
	CardID      uuid.UUID
	UserID      uuid.UUID
	AccrualDate time.Time
}

// ResolveInvoiceOutput represents the output of invoice resolution.
type ResolveInvoiceOutput struct {
	Invoice *entity.Invoice
}

// ResolveInvoiceUseCase finds or creates the invoice a purchase date falls in.
type ResolveInvoiceUseCase struct {
	cardRepo adapter.CardRepository
	resolver *ledger.InvoiceResolver
}

// NewResolveInvoiceUseCase creates a new ResolveInvoiceUseCase instance.
func NewResolveInvoiceUseCase(cardRepo adapter.CardRepository, resolver *ledger.InvoiceResolver) *ResolveInvoiceUseCase {
	return &ResolveInvoiceUseCase{
		cardRepo: cardRepo,
		resolver: resolver,
	}
}

// Execute performs the resolution.
func (uc *ResolveInvoiceUseCase) Execute(ctx context.Context, input ResolveInvoiceInput) (*ResolveInvoiceOutput, error) {
	card, err := findOwnedCard(ctx, uc.cardRepo, input.CardID, input.UserID)
	if err != nil {
		return nil, err
	}

	invoice, err := uc.resolver.Resolve(ctx, card, input.AccrualDate)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve invoice: %w", err)
	}
	return &ResolveInvoiceOutput{Invoice: invoice}, nil
}
