package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/fundledger/internal/domain"
)

// UserUseCase handles user registration and authentication
type UserUseCase struct {
	userRepo UserRepository
	idGen    IDGenerator
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		idGen:    idGen,
	}
}

// RegisterInput represents input for registering a user
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// Register creates a new user with a hashed password
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, domain.NewValidationError("username is required", "username")
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, domain.NewValidationError(err.Error(), "email")
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, domain.NewValidationError(err.Error(), "password")
	}

	role := input.Role
	if role == "" {
		role = domain.RoleViewer
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("role must be admin, finance or viewer", "role")
	}

	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateUsername
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uc.idGen.Generate(),
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Don't return hashed password
	user.PasswordHash = ""
	return user, nil
}

// AuthenticateInput represents authentication input
type AuthenticateInput struct {
	Username string
	Password string
}

// Authenticate verifies user credentials
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	if err := verifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	user.PasswordHash = ""
	return user, nil
}

// GetUser retrieves a user by ID
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword verifies a password against a hash
func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
