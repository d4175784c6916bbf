package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger/ledgertest"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

type useCases struct {
	create    *transaction.CreateTransactionUseCase
	update    *transaction.UpdateTransactionUseCase
	delete    *transaction.DeleteTransactionUseCase
	bulk      *transaction.BulkDeleteTransactionsUseCase
	reconcile *transaction.ReconcileTransactionUseCase
	expand    *transaction.ExpandRecurrenceUseCase
	suggest   *transaction.SuggestCategoryUseCase
}

func newUseCases(env *ledgertest.Env) useCases {
	return useCases{
		create:    transaction.NewCreateTransactionUseCase(env.Accounts, env.Cards, env.Orchestrator, env.Recurrence),
		update:    transaction.NewUpdateTransactionUseCase(env.Transactions, env.Accounts, env.Cards, env.Invoices, env.Orchestrator),
		delete:    transaction.NewDeleteTransactionUseCase(env.Transactions, env.Invoices, env.Orchestrator),
		bulk:      transaction.NewBulkDeleteTransactionsUseCase(env.Transactions, env.Invoices, env.Orchestrator),
		reconcile: transaction.NewReconcileTransactionUseCase(env.Transactions, env.Invoices, env.Orchestrator),
		expand:    transaction.NewExpandRecurrenceUseCase(env.Transactions, env.Recurrence),
		suggest:   transaction.NewSuggestCategoryUseCase(env.Engine, env.System),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertBalance(t *testing.T, env *ledgertest.Env, accountID uuid.UUID, want string) {
	t.Helper()
	if got := env.Balance(t, accountID); !got.Equal(dec(want)) {
		t.Errorf("balance = %s, want %s", got, want)
	}
}

func TestRecurringSeries(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	uc := newUseCases(env)
	userID := uuid.New()
	account := env.Account(t, userID, "1000")

	accrual := ledgertest.Date(2024, 4, 10)
	created, err := uc.create.Execute(ctx, transaction.CreateTransactionInput{
		UserID:        userID,
		AccountID:     &account.ID,
		Description:   "gym",
		Amount:        dec("100"),
		Type:          entity.TransactionTypeDebit,
		AccrualDate:   accrual,
		EffectiveDate: &accrual,
		Recurrence:    &transaction.RecurrenceInput{Period: "monthly", Count: 3},
	})
	if err != nil {
		t.Fatalf("Create Execute() error = %v", err)
	}
	if len(created.Occurrences) != 2 {
		t.Fatalf("len(Occurrences) = %d, want 2", len(created.Occurrences))
	}
	if created.Transaction.RecurrenceID == nil {
		t.Fatal("first occurrence has no series ID")
	}
	if created.Transaction.CategoryID != env.System.Other {
		t.Errorf("CategoryID = %s, want fallback category", created.Transaction.CategoryID)
	}
	assertBalance(t, env, account.ID, "700")

	t.Run("edit applies to the rest of the series", func(t *testing.T) {
		amount := dec("50")
		out, err := uc.update.Execute(ctx, transaction.UpdateTransactionInput{
			TransactionID: created.Transaction.ID,
			UserID:        userID,
			Amount:        &amount,
			ApplyToSeries: true,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out.SeriesUpdated != 2 {
			t.Errorf("SeriesUpdated = %d, want 2", out.SeriesUpdated)
		}
		assertBalance(t, env, account.ID, "850")
	})

	t.Run("delete cascades to later occurrences", func(t *testing.T) {
		out, err := uc.delete.Execute(ctx, transaction.DeleteTransactionInput{
			TransactionID: created.Occurrences[0].ID,
			UserID:        userID,
			CascadeSeries: true,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out.DeletedCount != 2 {
			t.Errorf("DeletedCount = %d, want 2", out.DeletedCount)
		}
		assertBalance(t, env, account.ID, "950")
	})

	t.Run("expand an existing row", func(t *testing.T) {
		out, err := uc.expand.Execute(ctx, transaction.ExpandRecurrenceInput{
			TransactionID: created.Transaction.ID,
			UserID:        userID,
			Period:        "weekly",
			Count:         2,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(out.Occurrences) != 1 || !out.Occurrences[0].AccrualDate.Equal(ledgertest.Date(2024, 4, 17)) {
			t.Fatalf("occurrences = %+v, want one on 2024-04-17", out.Occurrences)
		}
		assertBalance(t, env, account.ID, "900")
	})

	t.Run("expand rejects a bad count", func(t *testing.T) {
		_, err := uc.expand.Execute(ctx, transaction.ExpandRecurrenceInput{
			TransactionID: created.Transaction.ID,
			UserID:        userID,
			Count:         121,
		})
		if !errors.Is(err, domainerror.ErrInvalidRecurrence) {
			t.Errorf("error = %v, want ErrInvalidRecurrence", err)
		}
	})
}

func TestCreateTransactionTargets(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	uc := newUseCases(env)
	userID := uuid.New()
	account := env.Account(t, userID, "0")
	card := env.Card(t, userID, 20, 10, &account.ID)
	strangerAccount := env.Account(t, uuid.New(), "0")

	tests := []struct {
		name      string
		accountID *uuid.UUID
		cardID    *uuid.UUID
		wantErr   error
	}{
		{name: "account and card", accountID: &account.ID, cardID: &card.ID, wantErr: domainerror.ErrInvalidTarget},
		{name: "neither", wantErr: domainerror.ErrInvalidTarget},
		{name: "account of another user", accountID: &strangerAccount.ID, wantErr: domainerror.ErrAccountNotFound},
		{name: "card", cardID: &card.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.create.Execute(ctx, transaction.CreateTransactionInput{
				UserID:      userID,
				AccountID:   tt.accountID,
				CardID:      tt.cardID,
				Description: "lunch",
				Amount:      dec("30"),
				Type:        entity.TransactionTypeDebit,
				AccrualDate: ledgertest.Date(2024, 6, 3),
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out.Transaction.InvoiceID == nil {
				t.Error("card purchase was not bound to an invoice")
			}
		})
	}
}

func TestReconcileTransaction(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	uc := newUseCases(env)
	userID := uuid.New()
	account := env.Account(t, userID, "1000")

	created, err := uc.create.Execute(ctx, transaction.CreateTransactionInput{
		UserID:      userID,
		AccountID:   &account.ID,
		Description: "rent",
		Amount:      dec("400"),
		Type:        entity.TransactionTypeDebit,
		AccrualDate: ledgertest.Date(2024, 6, 5),
	})
	if err != nil {
		t.Fatalf("Create Execute() error = %v", err)
	}
	assertBalance(t, env, account.ID, "1000")

	_, err = uc.reconcile.Execute(ctx, transaction.ReconcileTransactionInput{
		TransactionID: created.Transaction.ID,
		UserID:        userID,
		EffectiveDate: ledgertest.Date(2024, 6, 20),
	})
	if !errors.Is(err, domainerror.ErrReconcileFutureDate) {
		t.Fatalf("future reconcile error = %v, want ErrReconcileFutureDate", err)
	}

	amount := dec("410")
	out, err := uc.reconcile.Execute(ctx, transaction.ReconcileTransactionInput{
		TransactionID: created.Transaction.ID,
		UserID:        userID,
		EffectiveDate: ledgertest.Date(2024, 6, 6),
		Amount:        &amount,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.Transaction.Reconciled {
		t.Error("transaction not reconciled")
	}
	assertBalance(t, env, account.ID, "590")
}

func TestDeleteGuards(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	uc := newUseCases(env)
	userID := uuid.New()
	account := env.Account(t, userID, "1000")
	card := env.Card(t, userID, 20, 10, &account.ID)

	purchase, err := uc.create.Execute(ctx, transaction.CreateTransactionInput{
		UserID:      userID,
		CardID:      &card.ID,
		Description: "tv",
		Amount:      dec("600"),
		Type:        entity.TransactionTypeDebit,
		AccrualDate: ledgertest.Date(2024, 6, 3),
	})
	if err != nil {
		t.Fatalf("Create Execute() error = %v", err)
	}
	payment, err := env.Lifecycle.Close(ctx, *purchase.Transaction.InvoiceID, ledgertest.Date(2024, 6, 15))
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	t.Run("payment of a closed invoice", func(t *testing.T) {
		_, err := uc.delete.Execute(ctx, transaction.DeleteTransactionInput{TransactionID: payment.ID, UserID: userID})
		var txnErr *domainerror.TransactionError
		if !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodePaymentLinkedToInvoice {
			t.Errorf("error = %v, want %s", err, domainerror.ErrCodePaymentLinkedToInvoice)
		}
	})

	t.Run("row of a closed invoice", func(t *testing.T) {
		_, err := uc.delete.Execute(ctx, transaction.DeleteTransactionInput{TransactionID: purchase.Transaction.ID, UserID: userID})
		if !errors.Is(err, domainerror.ErrInvoiceClosed) {
			t.Errorf("error = %v, want ErrInvoiceClosed", err)
		}
	})

	t.Run("another user", func(t *testing.T) {
		_, err := uc.delete.Execute(ctx, transaction.DeleteTransactionInput{TransactionID: payment.ID, UserID: uuid.New()})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("error = %v, want ErrTransactionNotFound", err)
		}
	})
}

func TestClosedInvoicePaymentEdits(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	uc := newUseCases(env)
	userID := uuid.New()
	account := env.Account(t, userID, "1000")
	other := env.Account(t, userID, "500")
	card := env.Card(t, userID, 20, 10, &account.ID)

	purchase, err := uc.create.Execute(ctx, transaction.CreateTransactionInput{
		UserID:      userID,
		CardID:      &card.ID,
		Description: "tv",
		Amount:      dec("600"),
		Type:        entity.TransactionTypeDebit,
		AccrualDate: ledgertest.Date(2024, 6, 3),
	})
	if err != nil {
		t.Fatalf("Create Execute() error = %v", err)
	}
	invoiceID := *purchase.Transaction.InvoiceID
	payment, err := env.Lifecycle.Close(ctx, invoiceID, ledgertest.Date(2024, 6, 15))
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	amount := dec("1")
	credit := entity.TransactionTypeCredit
	refused := []struct {
		name  string
		input transaction.UpdateTransactionInput
	}{
		{"amount and account", transaction.UpdateTransactionInput{Amount: &amount, AccountID: &other.ID}},
		{"amount", transaction.UpdateTransactionInput{Amount: &amount}},
		{"type", transaction.UpdateTransactionInput{Type: &credit}},
		{"account", transaction.UpdateTransactionInput{AccountID: &other.ID}},
	}
	for _, tt := range refused {
		t.Run("update "+tt.name, func(t *testing.T) {
			input := tt.input
			input.TransactionID = payment.ID
			input.UserID = userID
			_, err := uc.update.Execute(ctx, input)
			var txnErr *domainerror.TransactionError
			if !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodePaymentLinkedToInvoice {
				t.Fatalf("error = %v, want %s", err, domainerror.ErrCodePaymentLinkedToInvoice)
			}
		})
	}

	stored, err := env.Transactions.FindByID(ctx, payment.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if accountID, ok := stored.AccountID(); !ok || accountID != account.ID || !stored.Amount.Equal(dec("600")) {
		t.Errorf("payment changed: target account %v, amount %s", accountID, stored.Amount)
	}
	invoice, err := env.Invoices.FindByID(ctx, invoiceID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if !invoice.IsClosed() || invoice.PaidAmount == nil || !invoice.PaidAmount.Equal(dec("600")) {
		t.Errorf("invoice = %s paid %v, want closed paid 600", invoice.Status, invoice.PaidAmount)
	}
	assertBalance(t, env, other.ID, "500")

	t.Run("description edit is allowed", func(t *testing.T) {
		description := "card bill"
		out, err := uc.update.Execute(ctx, transaction.UpdateTransactionInput{
			TransactionID: payment.ID,
			UserID:        userID,
			Description:   &description,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out.Transaction.Description != description {
			t.Errorf("Description = %q, want %q", out.Transaction.Description, description)
		}
	})

	t.Run("reconcile with another amount", func(t *testing.T) {
		_, err := uc.reconcile.Execute(ctx, transaction.ReconcileTransactionInput{
			TransactionID: payment.ID,
			UserID:        userID,
			EffectiveDate: ledgertest.Date(2024, 6, 15),
			Amount:        &amount,
		})
		if !errors.Is(err, domainerror.ErrPaymentLinkedToInvoice) {
			t.Errorf("error = %v, want ErrPaymentLinkedToInvoice", err)
		}
	})

	t.Run("reconcile for the amount paid", func(t *testing.T) {
		paid := dec("600")
		out, err := uc.reconcile.Execute(ctx, transaction.ReconcileTransactionInput{
			TransactionID: payment.ID,
			UserID:        userID,
			EffectiveDate: ledgertest.Date(2024, 6, 15),
			Amount:        &paid,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !out.Transaction.Reconciled {
			t.Error("payment not reconciled")
		}
	})
}

func TestBulkDeleteTransactions(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	uc := newUseCases(env)
	userID := uuid.New()
	account := env.Account(t, userID, "1000")

	var ids []uuid.UUID
	for _, amount := range []string{"10", "20", "30"} {
		effective := ledgertest.Date(2024, 6, 1)
		out, err := uc.create.Execute(ctx, transaction.CreateTransactionInput{
			UserID:        userID,
			AccountID:     &account.ID,
			Description:   "coffee",
			Amount:        dec(amount),
			Type:          entity.TransactionTypeDebit,
			AccrualDate:   effective,
			EffectiveDate: &effective,
		})
		if err != nil {
			t.Fatalf("Create Execute() error = %v", err)
		}
		ids = append(ids, out.Transaction.ID)
	}
	assertBalance(t, env, account.ID, "940")

	t.Run("empty list", func(t *testing.T) {
		_, err := uc.bulk.Execute(ctx, transaction.BulkDeleteTransactionsInput{UserID: userID})
		if !errors.Is(err, domainerror.ErrEmptyTransactionIDs) {
			t.Errorf("error = %v, want ErrEmptyTransactionIDs", err)
		}
	})

	t.Run("unknown ID deletes nothing", func(t *testing.T) {
		_, err := uc.bulk.Execute(ctx, transaction.BulkDeleteTransactionsInput{UserID: userID, IDs: []uuid.UUID{ids[0], uuid.New()}})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("error = %v, want ErrTransactionNotFound", err)
		}
		assertBalance(t, env, account.ID, "940")
	})

	t.Run("deletes all", func(t *testing.T) {
		out, err := uc.bulk.Execute(ctx, transaction.BulkDeleteTransactionsInput{UserID: userID, IDs: append(ids, ids[0])})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out.DeletedCount != 3 {
			t.Errorf("DeletedCount = %d, want 3", out.DeletedCount)
		}
		assertBalance(t, env, account.ID, "1000")
	})
}

func TestSuggestCategory(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	uc := newUseCases(env)
	userID := uuid.New()
	food := env.Category(t, userID, "Food")

	rule := entity.NewCategoryRule(userID, "ifood", food.ID, 1)
	if err := env.Rules.Create(ctx, rule); err != nil {
		t.Fatalf("create rule: %v", err)
	}

	tests := []struct {
		description string
		want        uuid.UUID
		matched     bool
	}{
		{description: "IFOOD *Pizza", want: food.ID, matched: true},
		{description: "parking", want: env.System.Other, matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			out, err := uc.suggest.Execute(ctx, transaction.SuggestCategoryInput{UserID: userID, Description: tt.description})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out.CategoryID != tt.want || out.Matched != tt.matched {
				t.Errorf("suggestion = %s/%v, want %s/%v", out.CategoryID, out.Matched, tt.want, tt.matched)
			}
		})
	}
}
