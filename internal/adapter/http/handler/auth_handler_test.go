package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/auth"
	"github.com/iho/fundledger/internal/infrastructure/metrics"
	"github.com/iho/fundledger/internal/usecase"
)

type userServiceStub struct {
	users map[string]*domain.User
}

func (s *userServiceStub) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	if _, ok := s.users[input.Username]; ok {
		return nil, domain.ErrDuplicateUsername
	}
	user := &domain.User{ID: "user-" + input.Username, Username: input.Username, Email: input.Email, Role: input.Role, IsActive: true}
	s.users[input.Username] = user
	return user, nil
}

func (s *userServiceStub) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	user, ok := s.users[input.Username]
	if !ok || input.Password != "correct-horse" {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func (s *userServiceStub) GetUser(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type failingIssuer struct{}

func (failingIssuer) Generate(*domain.User) (string, error) { return "", errors.New("signing failed") }
func (failingIssuer) ExpiresIn() time.Duration              { return time.Hour }

func newAuthFixture() (*AuthHandler, *metrics.Metrics, *auth.JWTManager) {
	m := metrics.NewWith(prometheus.NewRegistry())
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	users := &userServiceStub{users: map[string]*domain.User{
		"finance": {ID: "user-finance", Username: "finance", Role: domain.RoleFinance, IsActive: true},
	}}
	return NewAuthHandler(users, jwtManager, m), m, jwtManager
}

func TestAuthHandler_Login(t *testing.T) {
	handler, m, jwtManager := newAuthFixture()

	rec := httptest.NewRecorder()
	handler.Login(rec, newRequest(http.MethodPost, "/auth/login", `{"username": "finance", "password": "correct-horse"}`, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp dto.LoginResponse
	decodeData(t, decodeEnvelope(t, rec), &resp)
	if resp.ExpiresIn != 3600 || resp.TokenType != "Bearer" || resp.User.Username != "finance" {
		t.Fatalf("unexpected response %+v", resp)
	}

	claims, err := jwtManager.Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != "user-finance" || claims.Role != domain.RoleFinance {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if got := testutil.ToFloat64(m.AuthAttempts.WithLabelValues("success")); got != 1 {
		t.Fatalf("expected one successful attempt, got %v", got)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	handler, m, _ := newAuthFixture()

	rec := httptest.NewRecorder()
	handler.Login(rec, newRequest(http.MethodPost, "/auth/login", `{"username": "finance", "password": "nope"}`, ""))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := testutil.ToFloat64(m.AuthAttempts.WithLabelValues("failure")); got != 1 {
		t.Fatalf("expected one failed attempt, got %v", got)
	}
}

func TestAuthHandler_Login_TokenFailure(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{users: map[string]*domain.User{
		"finance": {ID: "user-finance", Username: "finance"},
	}}, failingIssuer{}, nil)

	rec := httptest.NewRecorder()
	handler.Login(rec, newRequest(http.MethodPost, "/auth/login", `{"username": "finance", "password": "correct-horse"}`, ""))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuthHandler_RegisterAndMe(t *testing.T) {
	handler, _, _ := newAuthFixture()

	rec := httptest.NewRecorder()
	handler.Register(rec, newRequest(http.MethodPost, "/auth/register",
		`{"username": "ana", "email": "ana@example.com", "password": "long-enough", "role": "viewer"}`, ""))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.Register(rec, newRequest(http.MethodPost, "/auth/register",
		`{"username": "ana", "email": "ana@example.com", "password": "long-enough"}`, ""))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Me(rec, newRequest(http.MethodGet, "/auth/me", "", ""))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a user, got %d", rec.Code)
	}

	req := newRequest(http.MethodGet, "/auth/me", "", "")
	req = req.WithContext(domain.ContextWithUser(req.Context(), &domain.User{ID: "user-ana"}))
	rec = httptest.NewRecorder()
	handler.Me(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
