package dependency

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/persistencetest"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "test-issuer"
	return cfg
}

func TestNewInjector_InvalidBalancePolicy(t *testing.T) {
	cfg := testConfig()
	cfg.Ledger.BalancePolicy = "someday"

	if _, err := NewInjector(cfg, persistencetest.NewDB(t), Options{}); err == nil {
		t.Error("NewInjector() error = nil, want error")
	}
}

func TestNewInjector_ServesLedgerRoutes(t *testing.T) {
	db := persistencetest.NewDB(t)
	cfg := testConfig()
	clock := fixedClock{now: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}

	injector, err := NewInjector(cfg, db, Options{Clock: clock})
	if err != nil {
		t.Fatalf("NewInjector() error = %v", err)
	}
	if err := injector.SeedSystemCategories(context.Background()); err != nil {
		t.Fatalf("SeedSystemCategories() error = %v", err)
	}
	engine := injector.Router.Setup(cfg.Server.Environment)

	userID := uuid.New()
	account := entity.NewAccount(userID, "Checking", decimal.NewFromInt(1000), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := persistence.NewAccountRepository(db).Create(context.Background(), account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	token, err := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer).GenerateAccessToken(context.Background(), userID, "")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		t.Helper()
		var reader *bytes.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			reader = bytes.NewReader(raw)
		} else {
			reader = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec
	}

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp controllerHealth
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Database != "connected" || resp.Cache != "disabled" {
			t.Errorf("health = %+v", resp)
		}
	})

	t.Run("requires token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+account.ID.String(), nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("create transaction updates balance", func(t *testing.T) {
		accountID := account.ID.String()
		effective := "2024-06-01"
		rec := do(http.MethodPost, "/api/v1/transactions", dto.CreateTransactionRequest{
			AccountID:     &accountID,
			Description:   "Salary",
			Amount:        decimal.NewFromInt(100),
			Type:          "credit",
			AccrualDate:   "2024-06-01",
			EffectiveDate: &effective,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
		}

		rec = do(http.MethodGet, "/api/v1/accounts/"+accountID, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("get status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var resp dto.AccountResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.ComputedBalance != "1100.00" {
			t.Errorf("computed_balance = %s, want 1100.00", resp.ComputedBalance)
		}
	})

	t.Run("unknown account is not found", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/v1/accounts/"+uuid.NewString(), nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

type controllerHealth struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}
