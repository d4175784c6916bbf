package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestTarget(t *testing.T) {
	accountID := uuid.New()
	cardID := uuid.New()

	t.Run("account target", func(t *testing.T) {
		target := AccountTarget(accountID)
		if !target.IsValid() {
			t.Fatal("expected account target to be valid")
		}
		if id, ok := target.AccountID(); !ok || id != accountID {
			t.Errorf("expected account %s, got %s (ok=%v)", accountID, id, ok)
		}
		if _, ok := target.CardID(); ok {
			t.Error("account target must not expose a card")
		}
	})

	t.Run("card target", func(t *testing.T) {
		target := CardTarget(cardID)
		if id, ok := target.CardID(); !ok || id != cardID {
			t.Errorf("expected card %s, got %s (ok=%v)", cardID, id, ok)
		}
		if _, ok := target.AccountID(); ok {
			t.Error("card target must not expose an account")
		}
	})

	t.Run("zero and nil targets are invalid", func(t *testing.T) {
		if (Target{}).IsValid() {
			t.Error("expected zero target to be invalid")
		}
		if AccountTarget(uuid.Nil).IsValid() {
			t.Error("expected nil account target to be invalid")
		}
	})
}

func TestTransaction_SignedAmount(t *testing.T) {
	day := time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC)
	debit := NewTransaction(uuid.New(), AccountTarget(uuid.New()), "rent", decimal.RequireFromString("1200"), TransactionTypeDebit, day, &day, uuid.Nil)
	credit := NewTransaction(uuid.New(), AccountTarget(uuid.New()), "salary", decimal.RequireFromString("3000"), TransactionTypeCredit, day, &day, uuid.Nil)

	if !debit.SignedAmount().Equal(decimal.RequireFromString("-1200")) {
		t.Errorf("expected -1200, got %s", debit.SignedAmount())
	}
	if !credit.SignedAmount().Equal(decimal.RequireFromString("3000")) {
		t.Errorf("expected 3000, got %s", credit.SignedAmount())
	}
}

func TestTransaction_Clone(t *testing.T) {
	day := time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC)
	invoiceID := uuid.New()
	seriesID := uuid.New()
	fingerprint := "abc"

	base := NewTransaction(uuid.New(), CardTarget(uuid.New()), "gym", decimal.RequireFromString("99.90"), TransactionTypeDebit, day, &day, uuid.New())
	base.Reconciled = true
	base.InvoiceID = &invoiceID
	base.RecurrenceID = &seriesID
	base.ImportFingerprint = &fingerprint

	clone := base.Clone()

	if clone.ID == base.ID {
		t.Error("expected clone to get a new ID")
	}
	if clone.Reconciled {
		t.Error("expected clone to be unreconciled")
	}
	if clone.InvoiceID != nil || clone.ImportFingerprint != nil {
		t.Error("expected clone to drop invoice and fingerprint")
	}
	if clone.RecurrenceID == nil || *clone.RecurrenceID != seriesID {
		t.Error("expected clone to keep the series")
	}
	if clone.Target != base.Target || clone.CategoryID != base.CategoryID || !clone.Amount.Equal(base.Amount) {
		t.Error("expected clone to keep target, category and amount")
	}

	moved := day.AddDate(0, 1, 0)
	*clone.EffectiveDate = moved
	if !base.EffectiveDate.Equal(day) {
		t.Error("expected clone effective date to be independent of the base")
	}
}

func TestCategoryRule_Matches(t *testing.T) {
	rule := NewCategoryRule(uuid.New(), "Uber", uuid.New(), 1)

	tests := map[string]bool{
		"UBER EATS TRIP":  true,
		"pagamento uber*": true,
		"Ubiquiti router": false,
		"":                false,
	}
	for description, want := range tests {
		if got := rule.Matches(description); got != want {
			t.Errorf("Matches(%q): expected %v, got %v", description, want, got)
		}
	}

	blank := NewCategoryRule(uuid.New(), "   ", uuid.New(), 1)
	if blank.Matches("anything") {
		t.Error("expected blank rule to never match")
	}
}

func TestDefaultSystemCategories(t *testing.T) {
	first := DefaultSystemCategories()
	second := DefaultSystemCategories()

	if first != second {
		t.Error("expected system category IDs to be stable")
	}
	if first.Other == first.InvoicePayment {
		t.Error("expected distinct system categories")
	}
	if !first.IsDefault(uuid.Nil) || !first.IsDefault(first.Other) || first.IsDefault(first.InvoicePayment) {
		t.Error("unexpected IsDefault result")
	}
}
