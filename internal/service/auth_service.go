// Package service contains business logic between the HTTP layer and storage.
package service

import (
	"context"
	"errors"
	"strings"

	"trenai/internal/models"
	"trenai/internal/repository"
	"trenai/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Credential failures stay distinct internally for logging; the HTTP boundary
// collapses both into a generic "Invalid credentials" response so the API
// never discloses whether an email is registered.
var (
	ErrNoSuchUser      = errors.New("no account for email")
	ErrInvalidPassword = errors.New("password mismatch")
)

type AuthService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register validates and creates a new account. New accounts start on the
// free plan with onboarding pending.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	// Friendly pre-check; the case-insensitive unique index is the real
	// guarantee and the repository maps its violation to the same conflict
	// error. GetByEmail compares lowercase, so any casing collides here.
	existing, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	// Email keeps the casing the user typed; all lookups lowercase it.
	user := &models.User{
		Name:     in.Name,
		Email:    strings.TrimSpace(in.Email),
		Password: string(hash),
		Plan:     models.PlanFree,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Verify checks a credential pair against the stored hash. Callers must not
// expose which of the two sentinel errors occurred.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoSuchUser
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return user, nil
}
