package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokenService struct {
	userID uuid.UUID
	err    error
}

func (s stubTokenService) GenerateAccessToken(context.Context, uuid.UUID, string) (string, error) {
	return "token", nil
}

func (s stubTokenService) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &adapter.TokenClaims{UserID: s.userID}, nil
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		service    stubTokenService
		wantStatus int
		wantCode   domainerror.AuthErrorCode
	}{
		{"missing header", "", stubTokenService{userID: userID}, http.StatusUnauthorized, domainerror.ErrCodeMissingToken},
		{"wrong scheme", "Basic abc", stubTokenService{userID: userID}, http.StatusUnauthorized, domainerror.ErrCodeInvalidToken},
		{"empty bearer", "Bearer  ", stubTokenService{userID: userID}, http.StatusUnauthorized, domainerror.ErrCodeMissingToken},
		{"expired", "Bearer abc", stubTokenService{err: domainerror.ErrExpiredToken}, http.StatusUnauthorized, domainerror.ErrCodeExpiredToken},
		{"invalid", "Bearer abc", stubTokenService{err: domainerror.ErrInvalidToken}, http.StatusUnauthorized, domainerror.ErrCodeInvalidToken},
		{"valid", "Bearer abc", stubTokenService{userID: userID}, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", NewAuthMiddleware(tt.service).Authenticate(), func(c *gin.Context) {
				id, ok := GetUserIDFromContext(c)
				if !ok || id != userID {
					t.Errorf("user in context = %v, %v", id, ok)
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantCode != "" {
				if body := decodeError(t, w); body.Code != string(tt.wantCode) {
					t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
				}
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter()
	rl.now = func() time.Time { return now }

	alice, bob := uuid.New(), uuid.New()
	r := gin.New()
	r.POST("/imports", func(c *gin.Context) {
		if c.GetHeader("X-User") == "bob" {
			c.Set(string(UserIDKey), bob)
		} else {
			c.Set(string(UserIDKey), alice)
		}
	}, rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	send := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/imports", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < defaultMaxAttempts; i++ {
		if w := send("alice"); w.Code != http.StatusCreated {
			t.Fatalf("request %d status = %d, want %d", i+1, w.Code, http.StatusCreated)
		}
	}

	w := send("alice")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status over limit = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if body := decodeError(t, w); body.Code != string(domainerror.ErrCodeImportRateLimited) {
		t.Errorf("code = %q, want %q", body.Code, domainerror.ErrCodeImportRateLimited)
	}

	if w := send("bob"); w.Code != http.StatusCreated {
		t.Errorf("other user status = %d, want %d", w.Code, http.StatusCreated)
	}

	now = now.Add(defaultWindowDuration + time.Second)
	if w := send("alice"); w.Code != http.StatusCreated {
		t.Errorf("status after window = %d, want %d", w.Code, http.StatusCreated)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiterWithConfig(0, time.Minute)
	r := gin.New()
	r.POST("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}
}
