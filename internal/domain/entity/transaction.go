// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger entry.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// TargetKind identifies what a transaction is booked against.
type TargetKind string

const (
	TargetKindAccount TargetKind = "account"
	TargetKindCard    TargetKind = "card"
)

// Target is the account or card a transaction is booked against. It can only
// be built with AccountTarget or CardTarget, so a transaction can never point
// at both. The zero value is not a valid target.
type Target struct {
	kind TargetKind
	id   uuid.UUID
}

// AccountTarget books a transaction against a bank account.
func AccountTarget(accountID uuid.UUID) Target {
	return Target{kind: TargetKindAccount, id: accountID}
}

// CardTarget books a transaction against a credit card.
func CardTarget(cardID uuid.UUID) Target {
	return Target{kind: TargetKindCard, id: cardID}
}

// Kind returns the target kind.
func (t Target) Kind() TargetKind { return t.kind }

// ID returns the referenced account or card ID.
func (t Target) ID() uuid.UUID { return t.id }

// IsValid reports whether the target references exactly one account or card.
func (t Target) IsValid() bool {
	return (t.kind == TargetKindAccount || t.kind == TargetKindCard) && t.id != uuid.Nil
}

// AccountID returns the account ID when the target is an account.
func (t Target) AccountID() (uuid.UUID, bool) {
	if t.kind != TargetKindAccount {
		return uuid.Nil, false
	}
	return t.id, true
}

// CardID returns the card ID when the target is a card.
func (t Target) CardID() (uuid.UUID, bool) {
	if t.kind != TargetKindCard {
		return uuid.Nil, false
	}
	return t.id, true
}

// Transaction represents a single ledger entry.
type Transaction struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Description       string
	Amount            decimal.Decimal // Non-negative magnitude, direction is given by Type
	Type              TransactionType
	AccrualDate       time.Time  // When the economic event happened
	EffectiveDate     *time.Time // When cash moves, nil until known
	Reconciled        bool       // Confirmed against a bank statement
	CategoryID        uuid.UUID
	Target            Target
	InvoiceID         *uuid.UUID // Set iff the target is a card
	RecurrenceID      *uuid.UUID // Shared by every occurrence of a series
	ImportFingerprint *string
	DocumentNumber    string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	target Target,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	accrualDate time.Time,
	effectiveDate *time.Time,
	categoryID uuid.UUID,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Description:   description,
		Amount:        amount,
		Type:          transactionType,
		AccrualDate:   accrualDate,
		EffectiveDate: effectiveDate,
		CategoryID:    categoryID,
		Target:        target,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SignedAmount returns the amount with debits as negative values.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// AccountID returns the booked account, if any.
func (t *Transaction) AccountID() (uuid.UUID, bool) {
	return t.Target.AccountID()
}

// CardID returns the booked card, if any.
func (t *Transaction) CardID() (uuid.UUID, bool) {
	return t.Target.CardID()
}

// Clone copies the transaction under a new ID. Reconciliation, invoice and
// import fingerprint are not carried over.
func (t *Transaction) Clone() *Transaction {
	now := time.Now().UTC()

	clone := *t
	clone.ID = uuid.New()
	clone.Reconciled = false
	clone.InvoiceID = nil
	clone.ImportFingerprint = nil
	clone.CreatedAt = now
	clone.UpdatedAt = now
	if t.EffectiveDate != nil {
		effective := *t.EffectiveDate
		clone.EffectiveDate = &effective
	}
	if t.RecurrenceID != nil {
		recurrenceID := *t.RecurrenceID
		clone.RecurrenceID = &recurrenceID
	}
	return &clone
}
