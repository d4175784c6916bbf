// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// invoiceRepository implements the adapter.InvoiceRepository interface.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance.
func NewInvoiceRepository(db *gorm.DB) adapter.InvoiceRepository {
	return &invoiceRepository{
		db: db,
	}
}

// FindByID retrieves an invoice by its ID.
func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoiceModel model.InvoiceModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to find invoice: %w", result.Error)
	}
	return invoiceModel.ToEntity(), nil
}

// FindByCard retrieves all invoices of a card, most recent first.
func (r *invoiceRepository) FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.Invoice, error) {
	var invoiceModels []model.InvoiceModel
	result := conn(ctx, r.db).
		Where("card_id = ?", cardID).
		Order("reference_month DESC").
		Find(&invoiceModels)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", result.Error)
	}

	invoices := make([]*entity.Invoice, len(invoiceModels))
	for i, im := range invoiceModels {
		invoices[i] = im.ToEntity()
	}
	return invoices, nil
}

// FindByPaymentTransactionID retrieves the invoice paid by the given transaction.
func (r *invoiceRepository) FindByPaymentTransactionID(ctx context.Context, transactionID uuid.UUID) (*entity.Invoice, error) {
	var invoiceModel model.InvoiceModel
	result := conn(ctx, r.db).Where("payment_transaction_id = ?", transactionID).First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by payment: %w", result.Error)
	}
	return invoiceModel.ToEntity(), nil
}

// GetOrCreate inserts the invoice unless one already exists for its card and
// reference month, then returns the stored row.
func (r *invoiceRepository) GetOrCreate(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error) {
	db := conn(ctx, r.db)

	invoiceModel := model.InvoiceFromEntity(invoice)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}, {Name: "reference_month"}},
		DoNothing: true,
	}).Omit("Card").Create(invoiceModel).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	var stored model.InvoiceModel
	result := db.
		Where("card_id = ? AND reference_month = ?", invoice.CardID, invoice.ReferenceMonth).
		First(&stored)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load invoice: %w", result.Error)
	}
	return stored.ToEntity(), nil
}

// RecalculateTotal rewrites total_amount from the invoice's debit rows.
func (r *invoiceRepository) RecalculateTotal(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).
		Model(&model.InvoiceModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_amount": gorm.Expr(`COALESCE((SELECT SUM(t.amount) FROM transactions t
				WHERE t.invoice_id = invoices.id AND t.type = 'debit'), 0)`),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to recalculate invoice total: %w", result.Error)
	}
	return nil
}

// MarkClosed closes the invoice only if it is still open.
func (r *invoiceRepository) MarkClosed(ctx context.Context, id uuid.UUID, paidAmount decimal.Decimal, paymentTransactionID uuid.UUID) (bool, error) {
	result := conn(ctx, r.db).
		Model(&model.InvoiceModel{}).
		Where("id = ? AND status = ?", id, string(entity.InvoiceStatusOpen)).
		Updates(map[string]interface{}{
			"status":                 string(entity.InvoiceStatusClosed),
			"paid_amount":            paidAmount,
			"payment_transaction_id": paymentTransactionID,
			"updated_at":             time.Now().UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to close invoice: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// MarkOpen reopens the invoice only if it is closed.
func (r *invoiceRepository) MarkOpen(ctx context.Context, id uuid.UUID) (bool, error) {
	result := conn(ctx, r.db).
		Model(&model.InvoiceModel{}).
		Where("id = ? AND status = ?", id, string(entity.InvoiceStatusClosed)).
		Updates(map[string]interface{}{
			"status":                 string(entity.InvoiceStatusOpen),
			"paid_amount":            nil,
			"payment_transaction_id": nil,
			"updated_at":             time.Now().UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to reopen invoice: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
