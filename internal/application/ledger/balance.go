// Package ledger keeps account balances and invoice totals consistent with
// the ledger rows. Every write to a transaction goes through the Orchestrator.
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// BalancePolicy selects which effective dates count towards an account balance.
type BalancePolicy string

const (
	// BalancePolicyToDate ignores rows that become effective after today.
	BalancePolicyToDate BalancePolicy = "to_date"
	// BalancePolicyAll counts every row with a known effective date.
	BalancePolicyAll BalancePolicy = "all"
)

// ParseBalancePolicy parses a policy name. An empty value selects BalancePolicyToDate.
func ParseBalancePolicy(value string) (BalancePolicy, error) {
	switch BalancePolicy(value) {
	case "", BalancePolicyToDate:
		return BalancePolicyToDate, nil
	case BalancePolicyAll:
		return BalancePolicyAll, nil
	default:
		return "", fmt.Errorf("unknown balance policy %q", value)
	}
}

// BalanceRecalculator derives an account's computed balance from its rows.
type BalanceRecalculator struct {
	accounts adapter.AccountRepository
	clock    adapter.Clock
	policy   BalancePolicy
}

// NewBalanceRecalculator creates a new BalanceRecalculator instance.
func NewBalanceRecalculator(accounts adapter.AccountRepository, clock adapter.Clock, policy BalancePolicy) *BalanceRecalculator {
	return &BalanceRecalculator{
		accounts: accounts,
		clock:    clock,
		policy:   policy,
	}
}

// Recompute overwrites the computed balance of the account. A missing account is ignored.
func (b *BalanceRecalculator) Recompute(ctx context.Context, accountID uuid.UUID) error {
	if b.policy == BalancePolicyAll {
		return b.accounts.RecalculateBalance(ctx, accountID, nil)
	}

	today := valueobject.DateOf(b.clock.Now())
	return b.accounts.RecalculateBalance(ctx, accountID, &today)
}

// InvoiceTotals derives an invoice's total from its debit rows.
type InvoiceTotals struct {
	invoices adapter.InvoiceRepository
}

// NewInvoiceTotals creates a new InvoiceTotals instance.
func NewInvoiceTotals(invoices adapter.InvoiceRepository) *InvoiceTotals {
	return &InvoiceTotals{
		invoices: invoices,
	}
}

// Recompute overwrites the total of the invoice. A missing invoice is ignored.
func (t *InvoiceTotals) Recompute(ctx context.Context, invoiceID uuid.UUID) error {
	return t.invoices.RecalculateTotal(ctx, invoiceID)
}
