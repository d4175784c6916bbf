package ledger

import (
	"context"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// InvoiceResolver finds the invoice a card purchase belongs to, creating it on first use.
type InvoiceResolver struct {
	invoices adapter.InvoiceRepository
}

// NewInvoiceResolver creates a new InvoiceResolver instance.
func NewInvoiceResolver(invoices adapter.InvoiceRepository) *InvoiceResolver {
	return &InvoiceResolver{
		invoices: invoices,
	}
}

// Resolve returns the invoice of card whose billing cycle contains accrualDate.
// The same card and date always resolve to the same invoice.
func (r *InvoiceResolver) Resolve(ctx context.Context, card *entity.Card, accrualDate time.Time) (*entity.Invoice, error) {
	cycle, err := valueobject.NewBillingCycle(card.ClosingDay, card.DueDay, accrualDate)
	if err != nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidBillingDay,
			err.Error(),
			domainerror.ErrInvalidBillingDay,
		)
	}

	return r.invoices.GetOrCreate(ctx, entity.NewInvoice(card.ID, cycle))
}
