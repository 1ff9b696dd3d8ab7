package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/auth"
)

func TestJWTManagerGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)

	user := &domain.User{
		ID:       "user-123",
		Username: "alice",
		Role:     domain.RoleFinance,
	}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}

	if claims.UserID != user.ID || claims.Username != user.Username || claims.Role != user.Role {
		t.Fatalf("expected claims to match user, got %+v", claims)
	}

	principal := claims.User()
	if principal.ID != user.ID || !principal.Role.CanPost() {
		t.Fatalf("unexpected principal %+v", principal)
	}
}

func TestJWTManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		UserID:   "expired",
		Username: "expired",
		Role:     domain.RoleViewer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	})
	expiredToken, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	otherKey, err := auth.NewJWTManager("other-secret", time.Minute).Generate(&domain.User{ID: "u", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{UserID: "u"})
	noneToken, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "expired", token: expiredToken, want: domain.ErrExpiredToken},
		{name: "wrong key", token: otherKey, want: domain.ErrInvalidToken},
		{name: "unsigned", token: noneToken, want: domain.ErrInvalidToken},
		{name: "garbage", token: "not-a-token", want: domain.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Verify(tt.token); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
