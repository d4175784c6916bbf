// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(transactionModel).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// Update saves every column of an existing transaction.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transaction.UpdatedAt = time.Now().UTC()
	transactionModel := model.TransactionFromEntity(transaction)
	if err := conn(ctx, r.db).Omit(clause.Associations).Save(transactionModel).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// Delete removes a transaction from the database (hard delete).
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := conn(ctx, r.db).Delete(&model.TransactionModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to find transaction: %w", result.Error)
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDs retrieves the user's transactions among ids.
func (r *transactionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]*entity.Transaction, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var transactionModels []model.TransactionModel
	result := conn(ctx, r.db).
		Where("id IN ? AND user_id = ?", ids, userID).
		Order("accrual_date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", result.Error)
	}
	return toTransactionEntities(transactionModels), nil
}

// FindByInvoice retrieves all rows of an invoice ordered by accrual date.
func (r *transactionRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := conn(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		Order("accrual_date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find invoice transactions: %w", result.Error)
	}
	return toTransactionEntities(transactionModels), nil
}

// FindSeriesFrom retrieves the unreconciled rows of a series from the given accrual date on.
func (r *transactionRepository) FindSeriesFrom(ctx context.Context, recurrenceID uuid.UUID, from time.Time) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := conn(ctx, r.db).
		Where("recurrence_id = ? AND accrual_date >= ? AND reconciled = ?", recurrenceID, from, false).
		Order("accrual_date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find series: %w", result.Error)
	}
	return toTransactionEntities(transactionModels), nil
}

// SetEffectiveDateByInvoice moves every row of an invoice to the given effective date.
func (r *transactionRepository) SetEffectiveDateByInvoice(ctx context.Context, invoiceID uuid.UUID, effectiveDate time.Time) (int, error) {
	result := conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Where("invoice_id = ?", invoiceID).
		Updates(map[string]interface{}{
			"effective_date": effectiveDate,
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to set effective date: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

// BulkUpdateCategoryByText recategorizes the user's rows whose description contains text.
func (r *transactionRepository) BulkUpdateCategoryByText(ctx context.Context, userID uuid.UUID, text string, categoryID uuid.UUID) (int, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0, nil
	}

	result := conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Where("user_id = ?", userID).
		Where("category_id <> ?", categoryID).
		Where(`LOWER(description) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(text)+"%").
		Updates(map[string]interface{}{
			"category_id": categoryID,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update categories: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

// FindExistingFingerprints returns the fingerprints among the given ones that are already stored.
func (r *transactionRepository) FindExistingFingerprints(ctx context.Context, fingerprints []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(fingerprints) == 0 {
		return existing, nil
	}

	var found []string
	result := conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Where("import_fingerprint IN ?", fingerprints).
		Pluck("import_fingerprint", &found)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find fingerprints: %w", result.Error)
	}

	for _, fp := range found {
		existing[fp] = true
	}
	return existing, nil
}

func toTransactionEntities(models []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions
}
