// Package statementimport contains bank statement import use cases.
package statementimport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// statementDateLayout is the dd/mm/yyyy layout used by bank exports.
const statementDateLayout = "02/01/2006"

// RawRow is one normalized statement line as exported by the bank.
type RawRow struct {
	EffectiveDate  string
	AccrualDate    string // Defaults to EffectiveDate
	Description    string
	DocumentNumber string
	Amount         string     // Signed, positive for credits
	CategoryID     *uuid.UUID // Caller's choice, kept on preview and confirmation; nil lets rules decide
}

// Candidate is a parsed row ready to become a transaction.
type Candidate struct {
	Row             int // 1-based position in the request
	AccrualDate     time.Time
	EffectiveDate   time.Time
	Description     string
	DocumentNumber  string
	Amount          decimal.Decimal // Magnitude
	Type            entity.TransactionType
	Fingerprint     string
	AlreadyImported bool // Stored before, or repeated earlier in the same batch
	CategoryID      *uuid.UUID
}

// SignedAmount returns the amount as it appeared on the statement.
func (c Candidate) SignedAmount() decimal.Decimal {
	if c.Type == entity.TransactionTypeDebit {
		return c.Amount.Neg()
	}
	return c.Amount
}

// OldRow is a row dated before the account's initial balance date. Importing
// it would double count money already included in the initial balance.
type OldRow struct {
	Row           int
	EffectiveDate time.Time
	Description   string
	Amount        decimal.Decimal // Signed
}

// parsed is the outcome of reading a batch of raw rows.
type parsed struct {
	candidates []Candidate
	oldRows    []OldRow
	warnings   []string
}

// parseRows reads the rows of one account. Balance lines (no document number,
// or "0") are dropped, unreadable rows become warnings, and duplicates are
// flagged against stored fingerprints and earlier rows of the batch.
func parseRows(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	account *entity.Account,
	rows []RawRow,
) (*parsed, error) {
	if len(rows) == 0 {
		return nil, domainerror.NewImportError(domainerror.ErrCodeEmptyImport, "no rows to import", domainerror.ErrEmptyImport)
	}

	result := &parsed{}
	for i, raw := range rows {
		n := i + 1
		doc := strings.TrimSpace(raw.DocumentNumber)
		if doc == "" || doc == "0" {
			continue
		}

		candidate, err := parseRow(account.ID, raw)
		if err != nil {
			result.warnings = append(result.warnings, fmt.Sprintf("row %d: %v", n, err))
			continue
		}
		candidate.Row = n

		if candidate.EffectiveDate.Before(valueobject.DateOf(account.InitialBalanceDate)) {
			result.oldRows = append(result.oldRows, OldRow{
				Row:           n,
				EffectiveDate: candidate.EffectiveDate,
				Description:   candidate.Description,
				Amount:        candidate.SignedAmount(),
			})
			continue
		}
		result.candidates = append(result.candidates, candidate)
	}

	fingerprints := make([]string, 0, len(result.candidates))
	for _, c := range result.candidates {
		fingerprints = append(fingerprints, c.Fingerprint)
	}
	existing, err := transactionRepo.FindExistingFingerprints(ctx, fingerprints)
	if err != nil {
		return nil, fmt.Errorf("failed to check imported rows: %w", err)
	}

	seen := make(map[string]bool, len(result.candidates))
	for i := range result.candidates {
		fp := result.candidates[i].Fingerprint
		result.candidates[i].AlreadyImported = existing[fp] || seen[fp]
		seen[fp] = true
	}
	return result, nil
}

func parseRow(accountID uuid.UUID, raw RawRow) (Candidate, error) {
	effective, err := parseStatementDate(raw.EffectiveDate)
	if err != nil {
		return Candidate{}, fmt.Errorf("invalid effective date %q", raw.EffectiveDate)
	}

	accrual := effective
	if strings.TrimSpace(raw.AccrualDate) != "" {
		accrual, err = parseStatementDate(raw.AccrualDate)
		if err != nil {
			return Candidate{}, fmt.Errorf("invalid accrual date %q", raw.AccrualDate)
		}
	}

	signed, err := parseStatementAmount(raw.Amount)
	if err != nil {
		return Candidate{}, fmt.Errorf("invalid amount %q", raw.Amount)
	}

	description := strings.TrimSpace(raw.Description)
	if len(description) > ledger.MaxDescriptionLength {
		description = strings.ToValidUTF8(description[:ledger.MaxDescriptionLength], "")
	}

	transactionType := entity.TransactionTypeDebit
	if signed.IsPositive() {
		transactionType = entity.TransactionTypeCredit
	}

	doc := strings.TrimSpace(raw.DocumentNumber)
	return Candidate{
		AccrualDate:    accrual,
		EffectiveDate:  effective,
		Description:    description,
		DocumentNumber: doc,
		Amount:         signed.Abs(),
		Type:           transactionType,
		Fingerprint:    valueobject.ImportFingerprint(accountID, effective, doc, signed),
		CategoryID:     raw.CategoryID,
	}, nil
}

// parseStatementDate accepts dd/mm/yyyy and yyyy-mm-dd.
func parseStatementDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(statementDateLayout, value); err == nil {
		return valueobject.DateOf(t), nil
	}
	return valueobject.ParseDate(value)
}

// parseStatementAmount accepts 1234.56 and the comma-decimal form 1.234,56.
func parseStatementAmount(value string) (decimal.Decimal, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if strings.Contains(value, ",") {
		if strings.LastIndex(value, ",") > strings.LastIndex(value, ".") {
			value = strings.ReplaceAll(value, ".", "")
			value = strings.Replace(value, ",", ".", 1)
		} else {
			value = strings.ReplaceAll(value, ",", "")
		}
	}
	return decimal.NewFromString(value)
}
