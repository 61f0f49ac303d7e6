package service

import (
	"context"

	"trenai/internal/models"
	"trenai/internal/repository"
	"trenai/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateSettingsInput struct {
	UserID    uint
	Name      string
	Niche     string
	Platforms []string
	Plan      models.Plan
}

type OnboardingInput struct {
	UserID    uint
	Niche     string
	Platforms []string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateSettings applies partial profile changes. Zero values leave the
// corresponding field untouched.
func (s *UserService) UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = in.Name
	}
	if in.Niche != "" {
		user.Niche = in.Niche
	}
	if in.Platforms != nil {
		user.Platforms = in.Platforms
	}
	if in.Plan != "" {
		if !models.ValidPlan(in.Plan) {
			return nil, models.NewValidationError("Unknown plan")
		}
		user.Plan = in.Plan
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// CompleteOnboarding records the creator's niche and platforms and marks the
// account as onboarded.
func (s *UserService) CompleteOnboarding(ctx context.Context, in OnboardingInput) (*models.User, error) {
	if in.Niche == "" {
		return nil, models.NewValidationError("Niche is required")
	}
	if len(in.Platforms) == 0 {
		return nil, models.NewValidationError("Pick at least one platform")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	user.Niche = in.Niche
	user.Platforms = in.Platforms
	user.OnboardingComplete = true

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
