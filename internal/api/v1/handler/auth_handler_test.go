package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nutrigenius/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type fakeUserService struct {
	user  *model.User
	isNew bool
	err   error
}

func (f *fakeUserService) Upsert(ctx context.Context, address string, p *model.ProfileUpdate) (*model.User, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.user, f.isNew, nil
}

func (f *fakeUserService) GetByAddress(ctx context.Context, address string) (*model.User, error) {
	return f.user, f.err
}

func newAuthMux(svc *fakeUserService) *http.ServeMux {
	h := NewAuthHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func TestAuthUpsert(t *testing.T) {
	svc := &fakeUserService{user: &model.User{ID: "user-1", OnchainAddress: "0xabc"}, isNew: true}
	mux := newAuthMux(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"walletAddress": "0xabc"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success   bool        `json:"success"`
		User      *model.User `json:"user"`
		IsNewUser bool        `json:"isNewUser"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || !body.IsNewUser || body.User == nil || body.User.ID != "user-1" {
		t.Fatalf("unexpected response: %+v", body)
	}
}

func TestAuthUpsertMissingWalletAddress(t *testing.T) {
	mux := newAuthMux(&fakeUserService{})

	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error != "Wallet address is required" {
		t.Fatalf("unexpected error message %q", body.Error)
	}
}

func TestAuthUpsertInvalidJSON(t *testing.T) {
	mux := newAuthMux(&fakeUserService{})

	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthGetUnknownAddressIsSuccess(t *testing.T) {
	mux := newAuthMux(&fakeUserService{user: nil})

	req := httptest.NewRequest(http.MethodGet, "/auth?address=0xmissing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(body["user"]) != "null" {
		t.Fatalf("expected null user, got %s", body["user"])
	}
}

func TestAuthGetMissingAddress(t *testing.T) {
	mux := newAuthMux(&fakeUserService{})

	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthMethodNotAllowed(t *testing.T) {
	mux := newAuthMux(&fakeUserService{})

	req := httptest.NewRequest(http.MethodDelete, "/auth", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
