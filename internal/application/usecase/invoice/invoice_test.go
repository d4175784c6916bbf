package invoice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/application/ledger/ledgertest"
	"github.com/finance-tracker/ledger/internal/application/usecase/invoice"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

func TestInvoiceUseCases(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	userID := uuid.New()
	account := env.Account(t, userID, "1000")
	card := env.Card(t, userID, 20, 10, &account.ID)

	resolve := invoice.NewResolveInvoiceUseCase(env.Cards, env.Resolver)
	get := invoice.NewGetInvoiceUseCase(env.Invoices, env.Cards, env.Transactions)
	list := invoice.NewListInvoicesUseCase(env.Cards, env.Invoices)
	closeInvoice := invoice.NewCloseInvoiceUseCase(env.Invoices, env.Cards, env.Lifecycle, env.Clock)
	reopen := invoice.NewReopenInvoiceUseCase(env.Invoices, env.Cards, env.Lifecycle)

	resolved, err := resolve.Execute(ctx, invoice.ResolveInvoiceInput{CardID: card.ID, UserID: userID, AccrualDate: ledgertest.Date(2024, 6, 3)})
	if err != nil {
		t.Fatalf("Resolve Execute() error = %v", err)
	}
	invoiceID := resolved.Invoice.ID

	purchase := entity.NewTransaction(userID, entity.CardTarget(card.ID), "market", decimal.NewFromInt(250), entity.TransactionTypeDebit, ledgertest.Date(2024, 6, 3), nil, uuid.Nil)
	if err := env.Orchestrator.Create(ctx, purchase); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if *purchase.InvoiceID != invoiceID {
		t.Fatalf("purchase joined invoice %s, want %s", *purchase.InvoiceID, invoiceID)
	}

	t.Run("detail lists the rows", func(t *testing.T) {
		out, err := get.Execute(ctx, invoice.GetInvoiceInput{InvoiceID: invoiceID, UserID: userID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(out.Transactions) != 1 || !out.Invoice.TotalAmount.Equal(decimal.NewFromInt(250)) {
			t.Errorf("detail = %d rows total %s, want 1 row total 250", len(out.Transactions), out.Invoice.TotalAmount)
		}
	})

	t.Run("close defaults the payment date to today", func(t *testing.T) {
		out, err := closeInvoice.Execute(ctx, invoice.CloseInvoiceInput{InvoiceID: invoiceID, UserID: userID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out.Payment == nil || !out.Payment.AccrualDate.Equal(ledgertest.Date(2024, 6, 15)) {
			t.Fatalf("payment = %+v, want accrual 2024-06-15", out.Payment)
		}
		if out.Invoice.Status != entity.InvoiceStatusClosed {
			t.Errorf("Status = %s, want closed", out.Invoice.Status)
		}
	})

	t.Run("reopen", func(t *testing.T) {
		out, err := reopen.Execute(ctx, invoice.ReopenInvoiceInput{InvoiceID: invoiceID, UserID: userID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !out.Reopened() || out.Invoice.Status != entity.InvoiceStatusOpen {
			t.Errorf("Reopen outcome = %s status = %s, want reopened/open", out.Outcome, out.Invoice.Status)
		}

		again, err := reopen.Execute(ctx, invoice.ReopenInvoiceInput{InvoiceID: invoiceID, UserID: userID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if again.Outcome != ledger.ReopenOutcomeNotClosed {
			t.Errorf("second Reopen outcome = %s, want %s", again.Outcome, ledger.ReopenOutcomeNotClosed)
		}
	})

	t.Run("list", func(t *testing.T) {
		out, err := list.Execute(ctx, invoice.ListInvoicesInput{CardID: card.ID, UserID: userID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(out.Invoices) != 1 {
			t.Errorf("listed %d invoices, want 1", len(out.Invoices))
		}
	})

	t.Run("other users see nothing", func(t *testing.T) {
		stranger := uuid.New()
		tests := []struct {
			name string
			run  func() error
			want error
		}{
			{
				name: "get",
				run: func() error {
					_, err := get.Execute(ctx, invoice.GetInvoiceInput{InvoiceID: invoiceID, UserID: stranger})
					return err
				},
				want: domainerror.ErrInvoiceNotFound,
			},
			{
				name: "close",
				run: func() error {
					_, err := closeInvoice.Execute(ctx, invoice.CloseInvoiceInput{InvoiceID: invoiceID, UserID: stranger})
					return err
				},
				want: domainerror.ErrInvoiceNotFound,
			},
			{
				name: "resolve",
				run: func() error {
					_, err := resolve.Execute(ctx, invoice.ResolveInvoiceInput{CardID: card.ID, UserID: stranger, AccrualDate: ledgertest.Date(2024, 6, 3)})
					return err
				},
				want: domainerror.ErrCardNotFound,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if err := tt.run(); !errors.Is(err, tt.want) {
					t.Errorf("error = %v, want %v", err, tt.want)
				}
			})
		}
	})
}
