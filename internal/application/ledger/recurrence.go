package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// MaxRecurrenceCount bounds how many occurrences a single expansion may create.
const MaxRecurrenceCount = 120

// RecurrenceGenerator materializes the future occurrences of a transaction.
type RecurrenceGenerator struct {
	orchestrator *Orchestrator
}

// NewRecurrenceGenerator creates a new RecurrenceGenerator instance.
func NewRecurrenceGenerator(orchestrator *Orchestrator) *RecurrenceGenerator {
	return &RecurrenceGenerator{
		orchestrator: orchestrator,
	}
}

// Expand creates occurrences 1 to count-1 of base, which must already be
// stored and counts as occurrence 0. Every occurrence date is derived from
// the base date. All rows are written in one batch. A count of 1 or less
// creates nothing.
func (g *RecurrenceGenerator) Expand(
	ctx context.Context,
	base *entity.Transaction,
	period valueobject.RecurrencePeriod,
	count int,
) ([]*entity.Transaction, error) {
	if count <= 1 {
		return nil, nil
	}
	if count > MaxRecurrenceCount || !period.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidRecurrence,
			"recurrence period or count is invalid",
			domainerror.ErrInvalidRecurrence,
		)
	}

	created := make([]*entity.Transaction, 0, count-1)
	err := g.orchestrator.Batch(ctx, func(ctx context.Context) error {
		if base.RecurrenceID == nil {
			seriesID := uuid.New()
			base.RecurrenceID = &seriesID
			if err := g.orchestrator.Update(ctx, base); err != nil {
				return err
			}
		}

		for i := 1; i < count; i++ {
			occurrence := base.Clone()
			occurrence.AccrualDate = period.Occurrence(base.AccrualDate, i)
			if base.EffectiveDate != nil {
				effective := period.Occurrence(*base.EffectiveDate, i)
				occurrence.EffectiveDate = &effective
			}
			if err := g.orchestrator.Create(ctx, occurrence); err != nil {
				return err
			}
			created = append(created, occurrence)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("recurrence expanded", "seriesID", *base.RecurrenceID, "occurrences", len(created))
	return created, nil
}
