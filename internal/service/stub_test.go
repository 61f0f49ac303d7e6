package service

import (
	"context"
	"testing"

	"trenai/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub implements repository.UserRepository with overridable
// function fields, shared across the service tests.
type userRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
	updateFn     func(ctx context.Context, user *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(context.Context, uint) (*models.User, error) { return nil, nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeValidation), "expected validation error, got %v", err)
}
